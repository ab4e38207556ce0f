package auth

import (
	"context"
)

// Gate is the single entry point protected operations call before touching
// any data. A handler that got claims from Require may trust SubjectID as
// the owner of everything it reads or writes.
type Gate struct {
	authn   *Authenticator
	metrics *Metrics
}

func NewGate(authn *Authenticator, metrics *Metrics) *Gate {
	return &Gate{authn: authn, metrics: metrics}
}

func (g *Gate) Require(ctx context.Context, header *string) (*Claims, error) {
	claims, err := g.authn.Authenticate(ctx, header)
	g.metrics.observe(err)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// SubjectFromContext returns the owner id placed by the gate.
func SubjectFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
