package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, secret string) (*Gate, *TokenCodec, *Metrics) {
	t.Helper()
	codec := newTestCodec(t, secret, &fakeClock{now: t0})
	metrics := NewMetrics(prometheus.NewRegistry())
	return NewGate(NewAuthenticator(codec, nil), metrics), codec, metrics
}

func TestGate_Require(t *testing.T) {
	t.Parallel()
	gate, codec, _ := newTestGate(t, "s3cret")

	tok, err := codec.Issue(ClaimsInput{SubjectID: "7", Username: "alice"})
	require.NoError(t, err)

	other, err := newTestCodec(t, "other", &fakeClock{now: t0}).Issue(ClaimsInput{SubjectID: "7", Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   *string
		wantKind Kind
		wantErr  error
	}{
		{name: "no header", header: nil, wantKind: KindBadRequest, wantErr: ErrMissingHeader},
		{name: "basic scheme", header: strptr("Basic xyz"), wantKind: KindBadRequest, wantErr: ErrMalformedScheme},
		{name: "empty token", header: strptr("Bearer  "), wantKind: KindBadRequest, wantErr: ErrEmptyToken},
		{name: "garbage token", header: strptr("Bearer nope"), wantKind: KindUnauthorized, wantErr: ErrTokenMalformed},
		{name: "foreign secret", header: strptr("Bearer " + other), wantKind: KindUnauthorized, wantErr: ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := gate.Require(context.Background(), tt.header)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, KindOf(err))

			var tagged *Error
			require.True(t, errors.As(err, &tagged))
		})
	}

	claims, err := gate.Require(context.Background(), strptr("Bearer "+tok))
	require.NoError(t, err)
	assert.Equal(t, "7", claims.SubjectID())
}

func TestGate_Metrics(t *testing.T) {
	t.Parallel()
	gate, codec, metrics := newTestGate(t, "s3cret")

	tok, err := codec.Issue(ClaimsInput{SubjectID: "7", Username: "alice"})
	require.NoError(t, err)

	_, _ = gate.Require(context.Background(), nil)
	_, _ = gate.Require(context.Background(), nil)
	_, _ = gate.Require(context.Background(), strptr("Bearer "+tok))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.decisions.WithLabelValues("bad request", "missing_header")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.decisions.WithLabelValues("allowed", "ok")))
}

func TestGate_NilMetrics(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "s3cret", &fakeClock{now: t0})
	gate := NewGate(NewAuthenticator(codec, nil), nil)

	_, err := gate.Require(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	_, ok := SubjectFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), &Claims{UserID: "9", Username: "z"})
	sub, ok := SubjectFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "9", sub)

	ctx = WithClaims(context.Background(), nil)
	_, ok = ClaimsFromContext(ctx)
	assert.False(t, ok)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindConflict, KindOf(common.ErrorAlreadyExists))
	assert.Equal(t, KindNotFound, KindOf(common.ErrorNotFound))
	assert.Equal(t, KindUnauthorized, KindOf(common.ErrorUnauthorized))
	assert.Equal(t, KindBadRequest, KindOf(common.ErrorValidation))
	assert.Equal(t, KindConfiguration, KindOf(common.ErrorMissingSecret))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindBadRequest, KindOf(&Error{Kind: KindBadRequest, Err: ErrTokenExpired}))
}
