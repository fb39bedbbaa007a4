package service

import (
	"context"

	"ganboo/internal/cache"
	"ganboo/internal/models"
	"ganboo/internal/repository"
)

// loadSummary resolves the presentation attributes of a user, cache first.
// Relationship state is never read from the cache.
func loadSummary(ctx context.Context, store repository.UserStore, id uint) (models.UserSummary, error) {
	var summary models.UserSummary
	err := cache.Aside(ctx, cache.ProfileKey(id), &summary, cache.ProfileTTL, func() error {
		u, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		summary = u.Summary()
		return nil
	})
	return summary, err
}

// loadSummaries resolves ids in order. Ids that no longer resolve are skipped.
func loadSummaries(ctx context.Context, store repository.UserStore, ids []uint) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		s, err := loadSummary(ctx, store, id)
		if err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
