package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = time.Hour

// Claims is the signed payload of a session token. UserID is the subject id
// every owner-scoped query filters on.
type Claims struct {
	Username string  `json:"username"`
	UserID   string  `json:"userid"`
	Email    *string `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) SubjectID() string {
	return c.UserID
}

// ClaimsInput is the identity a token is issued for.
type ClaimsInput struct {
	SubjectID string
	Username  string
	Email     *string
}

// TokenCodec issues and verifies HS256 session tokens. It holds no state
// besides the secret and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for iat, exp and the expiry check.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrSigningKey
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for in, valid from now until now+TTL.
func (c *TokenCodec) Issue(in ClaimsInput) (string, error) {
	iat := c.now().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: in.Username,
		UserID:   in.SubjectID,
		Email:    in.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(c.ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// A token is expired once the clock reaches exp.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	if claims.UserID == "" || claims.Username == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: identity claims missing", ErrTokenMalformed)
	}
	if claims.IssuedAt.After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: issued after expiry", ErrTokenMalformed)
	}

	return claims, nil
}
