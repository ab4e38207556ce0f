package ctl

import (
	"context"
	"fmt"
	"time"

	gs "github.com/dmitrijs2005/notekeeper/internal/server/grpc"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// dial is a test seam for connecting to the server.
var dial = func(addr string) (grpc.ClientConnInterface, func() error, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Close, nil
}

func loginCmd(opts *options) *cobra.Command {
	var (
		addr     string
		username string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a running server over gRPC and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.fromStdin)
			if err != nil {
				return err
			}

			cc, closeFn, err := dial(addr)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer func() { _ = closeFn() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			resp, err := gs.NewClient(cc).Login(ctx, &gs.LoginRequest{Username: username, Password: pw})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:50051", "server gRPC address")
	cmd.Flags().StringVar(&username, "username", "", "user name (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
