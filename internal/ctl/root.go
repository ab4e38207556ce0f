// Package ctl implements notekeeperctl, the operator tool for hashing
// passwords and issuing or inspecting session tokens with the server secret.
package ctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

type options struct {
	secret    string
	ttl       time.Duration
	cost      int
	fromStdin bool
}

// secretKey returns the --secret flag or, failing that, the server's secret
// environment variables.
func (o *options) secretKey() ([]byte, error) {
	if o.secret != "" {
		return []byte(o.secret), nil
	}
	for _, name := range []string{common.SecretEnvName, common.LegacySecretEnvName} {
		if v, ok := lookupEnv(name); ok && v != "" {
			return []byte(v), nil
		}
	}
	return nil, common.ErrorMissingSecret
}

func (o *options) codec() (*auth.TokenCodec, error) {
	secret, err := o.secretKey()
	if err != nil {
		return nil, err
	}
	return auth.NewTokenCodec(secret, o.ttl)
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "notekeeperctl",
		Short:         "Operator tool for the NoteKeeper server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.secret, "secret", "", "token signing secret (default: $"+common.SecretEnvName+")")
	cmd.PersistentFlags().DurationVar(&opts.ttl, "ttl", auth.DefaultTokenTTL, "token lifetime")
	cmd.PersistentFlags().IntVar(&opts.cost, "cost", config.MinBcryptCost, "bcrypt cost")
	cmd.PersistentFlags().BoolVar(&opts.fromStdin, "password-stdin", false, "read the password from stdin instead of the terminal")

	cmd.AddCommand(
		hashCmd(opts),
		verifyCmd(opts),
		tokenCmd(opts),
		loginCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "notekeeperctl version %s (build: %s)\n", Version, BuildTime)
			},
		},
	)

	return cmd
}

func hashCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Hash a password the way the server stores it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := auth.NewBcryptHasher(opts.cost)
			if err != nil {
				return err
			}
			pw, err := getPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.fromStdin)
			if err != nil {
				return err
			}
			digest, err := h.Hash(pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}

func verifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify DIGEST",
		Short: "Check a password against a stored digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := auth.NewBcryptHasher(opts.cost)
			if err != nil {
				return err
			}
			pw, err := getPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.fromStdin)
			if err != nil {
				return err
			}
			ok, err := h.Verify(pw, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("password does not match")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "match")
			return nil
		},
	}
}

func tokenCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue or inspect session tokens",
	}

	var (
		subject  string
		username string
		email    string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}
			in := auth.ClaimsInput{SubjectID: subject, Username: username}
			if email != "" {
				in.Email = &email
			}
			tok, err := codec.Issue(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().StringVar(&subject, "subject", "", "user id (required)")
	issue.Flags().StringVar(&username, "username", "", "user name (required)")
	issue.Flags().StringVar(&email, "email", "", "email address")
	_ = issue.MarkFlagRequired("subject")
	_ = issue.MarkFlagRequired("username")

	inspect := &cobra.Command{
		Use:   "inspect TOKEN",
		Short: "Verify a token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}
			claims, err := codec.Verify(args[0])
			if err != nil {
				return fmt.Errorf("token rejected (%s): %w", auth.Reason(err), err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(claims)
		},
	}

	cmd.AddCommand(issue, inspect)
	return cmd
}
