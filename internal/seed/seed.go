// Package seed provides store seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"ganboo/internal/middleware"
	"ganboo/internal/models"
	"ganboo/internal/repository"

	"gorm.io/gorm"
)

// DemoUsers returns the three accounts the client ships with.
func DemoUsers() []models.User {
	return []models.User{
		{ID: 1, DisplayName: "你自己", AvatarRef: "https://i.pravatar.cc/150?img=11", Level: 5, PublicCode: "GANBOO-A1B2"},
		{ID: 2, DisplayName: "小明", AvatarRef: "https://i.pravatar.cc/150?img=12", Level: 4, PublicCode: "GANBOO-MING88"},
		{ID: 3, DisplayName: "小美", AvatarRef: "https://i.pravatar.cc/150?img=13", Level: 6, PublicCode: "GANBOO-MEI99"},
	}
}

// Demo registers the demo users that are not present yet and returns how many were created.
func Demo(ctx context.Context, store repository.UserStore) (int, error) {
	created := 0
	for _, u := range DemoUsers() {
		if _, err := store.Get(ctx, u.ID); err == nil {
			continue
		} else if !models.HasCode(err, models.CodeNotFound) {
			return created, err
		}

		user := u
		if err := store.Create(ctx, &user); err != nil {
			if models.HasCode(err, models.CodeCodeCollision) {
				middleware.Logger.WarnContext(ctx, "Demo user code already taken",
					slog.String("code", u.PublicCode))
				continue
			}
			return created, fmt.Errorf("create demo user %d: %w", u.ID, err)
		}
		created++
	}
	return created, nil
}

// ResetSequence moves the PostgreSQL users id sequence past explicitly inserted ids.
func ResetSequence(db *gorm.DB) error {
	if db == nil || db.Dialector.Name() != "postgres" {
		return nil
	}
	err := db.Exec(`
		SELECT setval(
			pg_get_serial_sequence('users', 'id'),
			GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
			true
		)
	`).Error
	if err != nil {
		return fmt.Errorf("failed to reset users sequence: %w", err)
	}
	return nil
}
