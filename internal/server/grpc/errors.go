package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func codeFor(kind auth.Kind) codes.Code {
	switch kind {
	case auth.KindBadRequest:
		return codes.InvalidArgument
	case auth.KindUnauthorized:
		return codes.Unauthenticated
	case auth.KindConflict:
		return codes.AlreadyExists
	case auth.KindNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

// toStatus converts err to a status carrying only the generic kind text.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrorExportDisabled) {
		return status.Error(codes.Unimplemented, "export disabled")
	}

	kind := auth.KindOf(err)
	code := codeFor(kind)
	if code == codes.Internal {
		s.logger.Error(ctx, "rpc failed", "error", err)
	}
	return status.Error(code, kind.String())
}
