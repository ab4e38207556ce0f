package grpc

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// publicMethods run without credentials; every other method goes through
// the gate.
var publicMethods = map[string]bool{
	fullMethod("Ping"):     true,
	fullMethod("Register"): true,
	fullMethod("Login"):    true,
}

func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header *string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = &values[0]
		}
	}

	claims, err := s.gate.Require(ctx, header)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(auth.WithClaims(ctx, claims), req)
}
