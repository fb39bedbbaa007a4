package cli

import (
	"context"
	"strings"
	"time"

	"ganboo/internal/bootstrap"
	"ganboo/internal/middleware"

	"github.com/spf13/cobra"
)

// NewProfileCommand creates the profile command.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "profile [user-id]",
		Short:         "Show a user's profile",
		Long:          "Show the profile of <user-id>, or of the acting user when omitted.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := rootOpts.As
			if len(args) == 1 {
				id, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				userID = id
			}
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				u, err := s.lookup.GetProfile(ctx, userID)
				if err != nil {
					return nil, err
				}
				return newProfileView(u), nil
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <code-fragment>",
		Short: "Find users by public code",
		Long: `Find users whose public code contains the fragment, ignoring case.

Each match is annotated with its relationship to the acting user.

Example:
  ganbooctl search ming --as 1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				found, err := s.lookup.FindByCode(ctx, rootOpts.As, query)
				if err != nil {
					return nil, err
				}
				return append(candidateList{}, found...), nil
			})
		},
	}
}

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	TTL time.Duration
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Mint an API access token",
		Long: `Mint a bearer token for <user-id>, or for the acting user when omitted.
The user must exist in the configured store.

Example:
  curl -H "Authorization: Bearer $(ganbooctl token 1)" localhost:8375/api/users/me`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := opts.As
			if len(args) == 1 {
				id, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				userID = id
			}
			if opts.TTL <= 0 {
				return NewExitError(ExitCommandError, "--ttl must be positive")
			}
			return opts.run(cmd, bootstrap.Options{SkipRedis: true}, func(ctx context.Context, s *session) (any, error) {
				if _, err := s.lookup.GetProfile(ctx, userID); err != nil {
					return nil, err
				}
				token, err := middleware.IssueToken(s.cfg.JWTSecret, userID, opts.TTL)
				if err != nil {
					return nil, err
				}
				return tokenView{UserID: userID, Token: token, ExpiresAt: time.Now().Add(opts.TTL)}, nil
			})
		},
	}

	cmd.Flags().DurationVar(&opts.TTL, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
