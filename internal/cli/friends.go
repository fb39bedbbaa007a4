package cli

import (
	"context"

	"ganboo/internal/bootstrap"
	"ganboo/internal/models"

	"github.com/spf13/cobra"
)

type transitionFunc func(ctx context.Context, s *session, actorID, otherID uint) (*models.RelationshipResult, error)

func newTransitionCommand(rootOpts *RootOptions, use, short, long string, fn transitionFunc) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			otherID, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				result, err := fn(ctx, s, rootOpts.As, otherID)
				if err != nil {
					return nil, err
				}
				return resultView(*result), nil
			})
		},
	}
}

// NewRequestCommand creates the request command.
func NewRequestCommand(rootOpts *RootOptions) *cobra.Command {
	return newTransitionCommand(rootOpts,
		"request <user-id>",
		"Send a friend request",
		`Send a friend request from the acting user to <user-id>.

If <user-id> already requested the acting user, both become friends.

Example:
  ganbooctl request 2 --as 1`,
		func(ctx context.Context, s *session, actorID, otherID uint) (*models.RelationshipResult, error) {
			return s.friends.SendRequest(ctx, actorID, otherID)
		})
}

// NewAcceptCommand creates the accept command.
func NewAcceptCommand(rootOpts *RootOptions) *cobra.Command {
	return newTransitionCommand(rootOpts,
		"accept <user-id>",
		"Accept a pending friend request",
		`Accept the request <user-id> sent to the acting user.

Example:
  ganbooctl accept 1 --as 2`,
		func(ctx context.Context, s *session, actorID, otherID uint) (*models.RelationshipResult, error) {
			return s.friends.AcceptRequest(ctx, actorID, otherID)
		})
}

// NewRejectCommand creates the reject command.
func NewRejectCommand(rootOpts *RootOptions) *cobra.Command {
	return newTransitionCommand(rootOpts,
		"reject <user-id>",
		"Reject a pending friend request",
		`Reject the request <user-id> sent to the acting user. The request is
removed from both users.

Example:
  ganbooctl reject 1 --as 2`,
		func(ctx context.Context, s *session, actorID, otherID uint) (*models.RelationshipResult, error) {
			return s.friends.RejectRequest(ctx, actorID, otherID)
		})
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status <user-id>",
		Short:         "Show the relationship with a user",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			otherID, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				status, err := s.friends.GetStatus(ctx, rootOpts.As, otherID)
				if err != nil {
					return nil, err
				}
				return statusView{UserID: rootOpts.As, OtherID: otherID, Status: status}, nil
			})
		},
	}
}

// NewFriendsCommand creates the friends command.
func NewFriendsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "friends",
		Short:         "List the acting user's friends",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				friends, err := s.friends.GetFriends(ctx, rootOpts.As)
				if err != nil {
					return nil, err
				}
				return append(summaryList{}, friends...), nil
			})
		},
	}
}

// NewPendingCommand creates the pending command.
func NewPendingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "pending",
		Short:         "List requests received by the acting user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				pending, err := s.friends.GetPendingRequests(ctx, rootOpts.As)
				if err != nil {
					return nil, err
				}
				return append(pendingList{}, pending...), nil
			})
		},
	}
}

// NewSentCommand creates the sent command.
func NewSentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "sent",
		Short:         "List requests sent by the acting user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, bootstrap.Options{}, func(ctx context.Context, s *session) (any, error) {
				sent, err := s.friends.GetSentRequests(ctx, rootOpts.As)
				if err != nil {
					return nil, err
				}
				return append(summaryList{}, sent...), nil
			})
		},
	}
}
