package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ganboo/internal/cache"
	"ganboo/internal/middleware"
	"ganboo/internal/models"
	"ganboo/internal/observability"
	"ganboo/internal/repository"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultMaxAttempts bounds how often a pair transaction is run when it keeps
// losing optimistic concurrency races.
const DefaultMaxAttempts = 3

// FriendService provides friend-request and friendship business logic.
// Every transition touches exactly two user records and commits them in a
// single PutMany.
type FriendService struct {
	store       repository.UserStore
	locks       *PairLocker
	now         func() time.Time
	maxAttempts uint
	newBackOff  func() backoff.BackOff
}

// FriendOption configures a FriendService.
type FriendOption func(*FriendService)

// WithClock overrides the time source used for request timestamps.
func WithClock(now func() time.Time) FriendOption {
	return func(s *FriendService) { s.now = now }
}

// WithMaxAttempts sets the number of attempts per transition. Values below 1 are ignored.
func WithMaxAttempts(n int) FriendOption {
	return func(s *FriendService) {
		if n >= 1 {
			s.maxAttempts = uint(n)
		}
	}
}

// WithBackOff overrides the delay policy between conflicting attempts.
func WithBackOff(fn func() backoff.BackOff) FriendOption {
	return func(s *FriendService) { s.newBackOff = fn }
}

// NewFriendService returns a new FriendService.
func NewFriendService(store repository.UserStore, opts ...FriendOption) *FriendService {
	s := &FriendService{
		store:       store,
		locks:       NewPairLocker(),
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: DefaultMaxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 5 * time.Millisecond
			b.MaxInterval = 50 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendRequest records a pending request from requesterID to targetID. When
// targetID has already requested requesterID the pair becomes friends instead.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID uint) (*models.RelationshipResult, error) {
	return s.transition(ctx, "send_request", requesterID, targetID,
		func(requester, target *models.User, now time.Time) (models.RelationshipStatus, error) {
			state, err := derivePair(requester, target)
			if err != nil {
				return "", err
			}
			switch state {
			case pairFriends:
				return "", models.NewAlreadyFriendsError()
			case pairPendingFromA:
				return "", models.NewDuplicateRequestError("Friend request already sent")
			case pairPendingFromB:
				befriend(requester, target, now)
				return models.RelationshipFriends, nil
			}
			requester.AddOutgoing(target.ID, now)
			target.AddIncoming(requester.ID, now)
			return models.RelationshipPendingSent, nil
		})
}

// AcceptRequest turns the pending request from requesterID to accepterID into a friendship.
func (s *FriendService) AcceptRequest(ctx context.Context, accepterID, requesterID uint) (*models.RelationshipResult, error) {
	return s.transition(ctx, "accept_request", accepterID, requesterID,
		func(accepter, requester *models.User, now time.Time) (models.RelationshipStatus, error) {
			state, err := derivePair(accepter, requester)
			if err != nil {
				return "", err
			}
			if state != pairPendingFromB {
				return "", models.NewNoSuchRequestError(requester.ID)
			}
			befriend(accepter, requester, now)
			return models.RelationshipFriends, nil
		})
}

// RejectRequest drops the pending request from requesterID on both records.
func (s *FriendService) RejectRequest(ctx context.Context, accepterID, requesterID uint) (*models.RelationshipResult, error) {
	return s.transition(ctx, "reject_request", accepterID, requesterID,
		func(accepter, requester *models.User, _ time.Time) (models.RelationshipStatus, error) {
			state, err := derivePair(accepter, requester)
			if err != nil {
				return "", err
			}
			if state != pairPendingFromB {
				return "", models.NewNoSuchRequestError(requester.ID)
			}
			clearPending(accepter, requester)
			return models.RelationshipNone, nil
		})
}

func befriend(a, b *models.User, now time.Time) {
	clearPending(a, b)
	a.AddFriend(b.ID, now)
	b.AddFriend(a.ID, now)
}

type applyFunc func(actor, other *models.User, now time.Time) (models.RelationshipStatus, error)

// transition runs apply as a pair transaction: lock both ids, load both
// records from one snapshot, mutate them and write both back. A lost version race is retried
// with the lock released and re-acquired between attempts.
func (s *FriendService) transition(ctx context.Context, op string, actorID, otherID uint, apply applyFunc) (*models.RelationshipResult, error) {
	ctx, span := observability.StartServiceSpan(ctx, "FriendService", op,
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("other.id", int64(otherID)),
	)
	defer span.End()

	if actorID == otherID {
		err := models.NewValidationError("Cannot form a relationship with yourself")
		observability.RecordTransition(op, err.Code)
		return nil, err
	}

	attempt := 0
	status, err := backoff.Retry(ctx, func() (models.RelationshipStatus, error) {
		attempt++
		status, err := s.attempt(ctx, actorID, otherID, apply)
		if err == nil {
			return status, nil
		}
		if models.HasCode(err, models.CodeStorageConflict) {
			observability.StoreConflicts.WithLabelValues(op).Inc()
			middleware.Logger.WarnContext(ctx, "Pair transaction conflict",
				slog.String("operation", op),
				slog.Uint64("user_id", uint64(actorID)),
				slog.Uint64("other_id", uint64(otherID)),
				slog.Int("attempt", attempt),
			)
			return "", err
		}
		return "", backoff.Permanent(err)
	},
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(s.maxAttempts),
	)
	if err != nil {
		span.SetError(err)
		observability.RecordTransition(op, models.ErrorCode(err))
		var appErr *models.AppError
		if !errors.As(err, &appErr) && ctx.Err() == nil {
			err = models.NewInternalError(err)
		}
		return nil, err
	}

	observability.RecordTransition(op, string(status))
	span.AddAttributes(attribute.String("relationship.status", string(status)))
	middleware.Logger.InfoContext(ctx, "Relationship updated",
		slog.String("operation", op),
		slog.Uint64("user_id", uint64(actorID)),
		slog.Uint64("other_id", uint64(otherID)),
		slog.String("status", string(status)),
		slog.Int("attempts", attempt),
	)
	return &models.RelationshipResult{UserID: actorID, OtherID: otherID, Status: status}, nil
}

func (s *FriendService) attempt(ctx context.Context, actorID, otherID uint, apply applyFunc) (models.RelationshipStatus, error) {
	unlock := s.locks.Lock(actorID, otherID)
	defer unlock()

	pair, err := s.store.GetMany(ctx, actorID, otherID)
	if err != nil {
		return "", err
	}
	actor, other := pair[0], pair[1]

	status, err := apply(actor, other, s.now())
	if err != nil {
		return "", err
	}
	if err := s.store.PutMany(ctx, actor, other); err != nil {
		return "", err
	}
	cache.InvalidateProfile(ctx, actorID)
	cache.InvalidateProfile(ctx, otherID)
	return status, nil
}

// GetStatus returns the relationship between userID and otherID from userID's side.
func (s *FriendService) GetStatus(ctx context.Context, userID, otherID uint) (models.RelationshipStatus, error) {
	if userID == otherID {
		return "", models.NewValidationError("Cannot query relationship with yourself")
	}
	pair, err := s.store.GetMany(ctx, userID, otherID)
	if err != nil {
		return "", err
	}
	state, err := derivePair(pair[0], pair[1])
	if err != nil {
		return "", err
	}
	return state.statusFor(), nil
}

// GetFriends returns the friends of the user in the order they were added.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return loadSummaries(ctx, s.store, user.FriendIDs())
}

// GetPendingRequests returns requests received by the user with each sender resolved.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.PendingRequestView, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PendingRequestView, 0, len(user.IncomingRequests))
	for _, r := range user.IncomingRequests {
		from, err := loadSummary(ctx, s.store, r.FromID)
		if err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, models.PendingRequestView{From: from, SentAt: r.SentAt})
	}
	return out, nil
}

// GetSentRequests returns the users the caller has requested.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return loadSummaries(ctx, s.store, user.OutgoingIDs())
}
