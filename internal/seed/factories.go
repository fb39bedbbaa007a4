package seed

import (
	"context"
	"fmt"
	"strings"

	"ganboo/internal/models"
	"ganboo/internal/repository"
	"ganboo/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	maxCodeAttempts = 5
	codeLength      = 6
	// codeAlphabet leaves out characters that read alike (0/O, 1/I).
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Factory builds random users and relationships.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// Code draws a public code in the GANBOO-XXXXXX shape. Factories with the
// same seed draw the same codes.
func (f *Factory) Code() string {
	var b strings.Builder
	b.WriteString("GANBOO-")
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[f.faker.Number(0, len(codeAlphabet)-1)])
	}
	return b.String()
}

// User builds an unsaved random user.
func (f *Factory) User() models.User {
	return models.User{
		DisplayName: f.faker.Name(),
		AvatarRef:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		Level:       f.faker.Number(1, 10),
		PublicCode:  f.Code(),
	}
}

// Users registers n random users, drawing a new code when one collides.
func (f *Factory) Users(ctx context.Context, store repository.UserStore, n int) ([]models.User, error) {
	out := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		u := f.User()
		var err error
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			if err = store.Create(ctx, &u); !models.HasCode(err, models.CodeCodeCollision) {
				break
			}
			u.PublicCode = f.Code()
		}
		if err != nil {
			return out, fmt.Errorf("create user %d of %d: %w", i+1, n, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// MeshStats summarises what SocialMesh created.
type MeshStats struct {
	Requests    int
	Friendships int
}

// SocialMesh walks every pair of users and, with the given probabilities,
// leaves a pending request or turns it into a friendship. All changes go
// through the friend service so both records stay consistent.
func (f *Factory) SocialMesh(ctx context.Context, friends *service.FriendService, users []models.User, requestRate, acceptRate float64) (MeshStats, error) {
	var stats MeshStats
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if f.faker.Float64Range(0, 1) >= requestRate {
				continue
			}
			from, to := users[i].ID, users[j].ID
			if f.faker.Bool() {
				from, to = to, from
			}
			if _, err := friends.SendRequest(ctx, from, to); err != nil {
				return stats, fmt.Errorf("request %d -> %d: %w", from, to, err)
			}
			if f.faker.Float64Range(0, 1) < acceptRate {
				if _, err := friends.AcceptRequest(ctx, to, from); err != nil {
					return stats, fmt.Errorf("accept %d -> %d: %w", from, to, err)
				}
				stats.Friendships++
				continue
			}
			stats.Requests++
		}
	}
	return stats, nil
}
