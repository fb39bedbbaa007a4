package cli

import (
	"context"
	"errors"
	"strconv"

	"ganboo/internal/bootstrap"
	"ganboo/internal/config"
	"ganboo/internal/models"
	"ganboo/internal/service"

	"github.com/spf13/cobra"
)

// session is the runtime a single command invocation works against.
type session struct {
	cfg     *config.Config
	runtime *bootstrap.Runtime
	friends *service.FriendService
	lookup  *service.LookupService
}

func (o *RootOptions) openSession(ctx context.Context, bootOpts bootstrap.Options) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if o.Store != "" {
		cfg.StoreBackend = o.Store
		if err := cfg.Validate(); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --store", err)
		}
	}

	rt, err := bootstrap.InitRuntime(ctx, cfg, bootOpts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to initialize runtime", err)
	}

	return &session{
		cfg:     cfg,
		runtime: rt,
		friends: service.NewFriendService(rt.Store, service.WithMaxAttempts(cfg.RelationshipMaxAttempts)),
		lookup:  service.NewLookupService(rt.Store),
	}, nil
}

// run opens a session, executes fn and writes its result or error to the
// command output.
func (o *RootOptions) run(cmd *cobra.Command, bootOpts bootstrap.Options, fn func(ctx context.Context, s *session) (any, error)) error {
	out := &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout(), Verbose: o.Verbose}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := o.openSession(ctx, bootOpts)
	if err != nil {
		return report(out, err)
	}
	defer func() { _ = s.runtime.Close() }()

	data, err := fn(ctx, s)
	if err != nil {
		return report(out, err)
	}
	return out.Success(data)
}

func report(out *OutputFormatter, err error) error {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			exitErr = WrapExitError(ExitFailure, appErr.Message, err)
		} else {
			exitErr = WrapExitError(ExitCommandError, "command failed", err)
		}
	}

	var details any
	if exitErr.Err != nil {
		details = exitErr.Err.Error()
	}
	if werr := out.Error(models.ErrorCode(err), exitErr.Message, details); werr != nil {
		return werr
	}
	exitErr.Reported = true
	return exitErr
}

// parseUserID parses a positional user id argument.
func parseUserID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, NewExitError(ExitCommandError, "invalid user id "+strconv.Quote(arg))
	}
	return uint(id), nil
}
