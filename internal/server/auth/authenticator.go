package auth

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Authenticator turns a raw credential header into verified claims.
type Authenticator struct {
	verifier TokenVerifier
	logger   logging.Logger
}

func NewAuthenticator(verifier TokenVerifier, logger logging.Logger) *Authenticator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Authenticator{verifier: verifier, logger: logger}
}

// Authenticate returns claims for a well-formed header carrying a valid
// token. Header-shape problems are tagged KindBadRequest and token problems
// KindUnauthorized; the precise reason is only logged.
func (a *Authenticator) Authenticate(ctx context.Context, header *string) (*Claims, error) {
	raw, err := ExtractToken(header)
	if err != nil {
		a.logger.Debug(ctx, "credential header rejected", "reason", Reason(err))
		return nil, &Error{Kind: KindBadRequest, Err: err}
	}

	claims, err := a.verifier.Verify(raw)
	if err != nil {
		a.logger.Debug(ctx, "token rejected", "reason", Reason(err))
		return nil, &Error{Kind: KindUnauthorized, Err: err}
	}

	return claims, nil
}
