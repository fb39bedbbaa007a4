// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"
	"strings"

	"ganboo/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// UserStore persists user records keyed by id with a unique index on public code.
//
// PutMany is the atomicity boundary for relationship changes: either every
// record in the call is written or none is. Each record must carry the
// Version it was read at; a stale version fails the whole call with a
// STORAGE_CONFLICT error. On success the passed records have their Version
// advanced to the stored value.
//
// GetMany reads several records from one snapshot, returned in the order of
// ids, so no write can land between them.
type UserStore interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	GetMany(ctx context.Context, ids ...uint) ([]*models.User, error)
	GetByCode(ctx context.Context, code string) (*models.User, error)
	SearchByCode(ctx context.Context, fragment string) ([]models.User, error)
	PutMany(ctx context.Context, users ...*models.User) error
	Create(ctx context.Context, user *models.User) error
}

// NormalizeCode folds a public code into its case-insensitive lookup key.
// Codes are NFC-normalized before case folding so equivalent spellings collide.
func NormalizeCode(code string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(code)))
}

// escapeLike escapes LIKE wildcards so a fragment matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// prepareNew validates a record for registration and derives its code key.
func prepareNew(user *models.User) error {
	if user == nil {
		return models.NewValidationError("User is required")
	}
	if strings.TrimSpace(user.DisplayName) == "" {
		return models.NewValidationError("Display name is required")
	}
	user.PublicCode = strings.TrimSpace(user.PublicCode)
	if user.PublicCode == "" {
		return models.NewValidationError("Public code is required")
	}
	user.CodeKey = NormalizeCode(user.PublicCode)
	user.Version = 0
	return nil
}

// checkDistinct rejects PutMany calls that name the same record twice.
func checkDistinct(users []*models.User) error {
	seen := make(map[uint]struct{}, len(users))
	for _, u := range users {
		if u == nil {
			return models.NewValidationError("User is required")
		}
		if _, dup := seen[u.ID]; dup {
			return models.NewValidationError(fmt.Sprintf("User %d appears twice in one write", u.ID))
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}

// checkDistinctIDs rejects reads that name the same record twice.
func checkDistinctIDs(ids []uint) error {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return models.NewValidationError(fmt.Sprintf("User %d requested twice", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// bindEdges stamps the owner id on every child row.
func bindEdges(u *models.User) {
	for i := range u.Friends {
		u.Friends[i].UserID = u.ID
	}
	for i := range u.IncomingRequests {
		u.IncomingRequests[i].UserID = u.ID
	}
	for i := range u.OutgoingRequests {
		u.OutgoingRequests[i].UserID = u.ID
	}
}
