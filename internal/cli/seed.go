package cli

import (
	"context"
	"fmt"

	"ganboo/internal/bootstrap"
	"ganboo/internal/seed"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Demo        bool
	Users       int
	RequestRate float64
	AcceptRate  float64
	Seed        int64
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with demo and random users",
		Long: `Register the demo users, then create random users and a social mesh
between them. Every request and acceptance goes through the relationship
engine, so the resulting graph is consistent.

Example:
  ganbooctl seed --users 50 --request-rate 0.1 --accept-rate 0.6`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return opts.run(cmd, bootstrap.Options{SeedDemo: opts.Demo, SkipRedis: true}, func(ctx context.Context, s *session) (any, error) {
				return seedStore(ctx, opts, s)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Demo, "demo", true, "register the demo users")
	cmd.Flags().IntVar(&opts.Users, "users", 0, "number of random users to create")
	cmd.Flags().Float64Var(&opts.RequestRate, "request-rate", 0.1, "probability that a pair of random users gets a request")
	cmd.Flags().Float64Var(&opts.AcceptRate, "accept-rate", 0.5, "probability that a request is accepted")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}

func (o *SeedOptions) validate() error {
	if o.Users < 0 {
		return NewExitError(ExitCommandError, "--users must not be negative")
	}
	for name, rate := range map[string]float64{"--request-rate": o.RequestRate, "--accept-rate": o.AcceptRate} {
		if rate < 0 || rate > 1 {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s must be between 0 and 1", name))
		}
	}
	return nil
}

func seedStore(ctx context.Context, opts *SeedOptions, s *session) (seedReport, error) {
	report := seedReport{DemoUsers: opts.Demo}
	if opts.Users == 0 {
		return report, nil
	}

	factory := seed.NewFactory(opts.Seed)
	users, err := factory.Users(ctx, s.runtime.Store, opts.Users)
	if err != nil {
		return report, err
	}
	report.Users = len(users)

	stats, err := factory.SocialMesh(ctx, s.friends, users, opts.RequestRate, opts.AcceptRate)
	if err != nil {
		return report, err
	}
	report.Requests = stats.Requests
	report.Friendships = stats.Friendships
	return report, nil
}
