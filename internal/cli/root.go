// Package cli implements ganbooctl, the operator command line for the
// relationship core.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"ganboo/internal/config"
	"ganboo/internal/middleware"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Store   string // overrides STORE_BACKEND when set
	As      uint   // acting user id

	loadConfig func() (*config.Config, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for ganbooctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.LoadConfig)
}

func newRootCommand(load func() (*config.Config, error)) *cobra.Command {
	opts := &RootOptions{loadConfig: load}

	cmd := &cobra.Command{
		Use:   "ganbooctl",
		Short: "ganbooctl - friend graph operator tool",
		Long: `Inspect and drive the friend-request relationship core.

Commands run against the store configured by config.yml and the environment.
Use --store memory to work on a throwaway store holding only the demo users.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			middleware.Logger = middleware.NewLogger(cmd.ErrOrStderr(), level, opts.Format == "json")
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "store backend override (database|memory)")
	cmd.PersistentFlags().UintVar(&opts.As, "as", 1, "id of the acting user")

	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewRequestCommand(opts))
	cmd.AddCommand(NewAcceptCommand(opts))
	cmd.AddCommand(NewRejectCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewFriendsCommand(opts))
	cmd.AddCommand(NewPendingCommand(opts))
	cmd.AddCommand(NewSentCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}
