package repository

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"ganboo/internal/models"
	"ganboo/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserStore backed by GORM.
func NewUserRepository(db *gorm.DB) UserStore {
	return &userRepository{db: db}
}

func withEdges(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Friends", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, friend_id ASC")
		}).
		Preload("IncomingRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC, from_id ASC")
		}).
		Preload("OutgoingRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, target_id ASC")
		})
}

// read runs fn in a transaction so a record and its edges come from one snapshot.
func (r *userRepository) read(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return db.Transaction(fn)
}

func (r *userRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "get", "users")
	defer span.End()
	defer observability.TrackQuery("get", "users")()

	var user models.User
	err := r.read(ctx, func(tx *gorm.DB) error {
		return withEdges(tx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetMany(ctx context.Context, ids ...uint) ([]*models.User, error) {
	if err := checkDistinctIDs(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "get_many", "users")
	defer span.End()
	defer observability.TrackQuery("get_many", "users")()

	var found []models.User
	err := r.read(ctx, func(tx *gorm.DB) error {
		return withEdges(tx).Where("id IN ?", ids).Find(&found).Error
	})
	if err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}

	byID := make(map[uint]*models.User, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			return nil, models.NewNotFoundError("User", id)
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepository) GetByCode(ctx context.Context, code string) (*models.User, error) {
	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "get_by_code", "users")
	defer span.End()
	defer observability.TrackQuery("get_by_code", "users")()

	var user models.User
	err := r.read(ctx, func(tx *gorm.DB) error {
		return withEdges(tx).Where("code_key = ?", NormalizeCode(code)).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewCodeNotFoundError(code)
		}
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) SearchByCode(ctx context.Context, fragment string) ([]models.User, error) {
	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "search_by_code", "users")
	defer span.End()
	defer observability.TrackQuery("search_by_code", "users")()

	pattern := "%" + escapeLike(NormalizeCode(fragment)) + "%"

	var users []models.User
	err := r.read(ctx, func(tx *gorm.DB) error {
		return withEdges(tx).
			Where(`code_key LIKE ? ESCAPE '\'`, pattern).
			Order("id ASC").
			Find(&users).Error
	})
	if err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) PutMany(ctx context.Context, users ...*models.User) error {
	if len(users) == 0 {
		return nil
	}
	if err := checkDistinct(users); err != nil {
		return err
	}

	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "put_many", "users")
	defer span.End()
	defer observability.TrackQuery("put_many", "users")()

	// Rows are locked in id order so concurrent pair writes cannot deadlock.
	ordered := slices.Clone(users)
	slices.SortFunc(ordered, func(a, b *models.User) int { return cmp.Compare(a.ID, b.ID) })

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range ordered {
			res := tx.Model(&models.User{}).
				Where("id = ? AND version = ?", u.ID, u.Version).
				Updates(map[string]any{
					"display_name": u.DisplayName,
					"avatar_ref":   u.AvatarRef,
					"level":        u.Level,
					"version":      u.Version + 1,
					"updated_at":   now,
				})
			if res.Error != nil {
				return models.NewInternalError(res.Error)
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.User{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
					return models.NewInternalError(err)
				}
				if count == 0 {
					return models.NewNotFoundError("User", u.ID)
				}
				return models.NewStorageConflictError(
					fmt.Errorf("user %d changed since version %d", u.ID, u.Version))
			}
			if err := replaceEdges(tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) {
			err = models.NewInternalError(err)
		}
		span.SetError(err)
		return err
	}

	for _, u := range users {
		u.Version++
		u.UpdatedAt = now
	}
	return nil
}

// replaceEdges rewrites every child row owned by u.
func replaceEdges(tx *gorm.DB, u *models.User) error {
	bindEdges(u)

	if err := tx.Where("user_id = ?", u.ID).Delete(&models.Friend{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("user_id = ?", u.ID).Delete(&models.IncomingRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("user_id = ?", u.ID).Delete(&models.OutgoingRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}

	if len(u.Friends) > 0 {
		if err := tx.Create(&u.Friends).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	if len(u.IncomingRequests) > 0 {
		if err := tx.Create(&u.IncomingRequests).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	if len(u.OutgoingRequests) > 0 {
		if err := tx.Create(&u.OutgoingRequests).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := prepareNew(user); err != nil {
		return err
	}

	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), "create", "users")
	defer span.End()
	defer observability.TrackQuery("create", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("code_key = ?", user.CodeKey).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewCodeCollisionError(user.PublicCode)
		}
		if user.ID != 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
				return models.NewInternalError(err)
			}
			if count > 0 {
				return models.NewValidationError(fmt.Sprintf("User %d already exists", user.ID))
			}
		}

		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewCodeCollisionError(user.PublicCode)
			}
			return models.NewInternalError(err)
		}
		return replaceEdges(tx, user)
	})
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) {
			err = models.NewInternalError(err)
		}
		span.SetError(err)
		return err
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
