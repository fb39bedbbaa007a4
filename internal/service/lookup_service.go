package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ganboo/internal/models"
	"ganboo/internal/observability"
	"ganboo/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// MaxQueryLength is the longest code fragment FindByCode accepts, in runes.
const MaxQueryLength = 64

// LookupService resolves users by public code for discovery.
type LookupService struct {
	store repository.UserStore
}

// NewLookupService returns a new LookupService.
func NewLookupService(store repository.UserStore) *LookupService {
	return &LookupService{store: store}
}

// FindByCode returns every user other than the caller whose public code
// contains query, case-insensitively, annotated with the caller's view of
// the pair. Annotations come from the caller's record as read in one snapshot.
func (s *LookupService) FindByCode(ctx context.Context, callerID uint, query string) ([]models.CandidateView, error) {
	ctx, span := observability.StartServiceSpan(ctx, "LookupService", "find_by_code",
		attribute.Int64("user.id", int64(callerID)),
	)
	defer span.End()

	q := strings.TrimSpace(query)
	if q == "" {
		return nil, models.NewInvalidQueryError("Search code must not be empty")
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return nil, models.NewInvalidQueryError("Search code is too long")
	}

	caller, err := s.store.Get(ctx, callerID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	users, err := s.store.SearchByCode(ctx, q)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	out := make([]models.CandidateView, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.ID == caller.ID {
			continue
		}
		out = append(out, models.CandidateView{
			UserSummary:   u.Summary(),
			IsFriend:      caller.HasFriend(u.ID),
			RequestStatus: requestStatus(caller, u.ID),
		})
	}

	observability.LookupResults.Observe(float64(len(out)))
	span.AddAttributes(attribute.Int("lookup.results", len(out)))
	return out, nil
}

func requestStatus(caller *models.User, candidateID uint) models.RequestStatus {
	switch {
	case caller.HasOutgoingTo(candidateID):
		return models.RequestStatusSent
	case caller.HasIncomingFrom(candidateID):
		return models.RequestStatusReceived
	default:
		return models.RequestStatusNone
	}
}

// GetProfile returns the full record of the user, relationships included.
func (s *LookupService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.store.Get(ctx, userID)
}
