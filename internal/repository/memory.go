package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ganboo/internal/models"
)

// memoryUserStore keeps records in process. Readers get deep copies taken
// under the read lock, so a record is never observed mid-write.
type memoryUserStore struct {
	mu     sync.RWMutex
	users  map[uint]*models.User
	codes  map[string]uint
	nextID uint
	now    func() time.Time
}

// NewMemoryUserStore returns an empty in-memory UserStore.
func NewMemoryUserStore() UserStore {
	return &memoryUserStore{
		users:  make(map[uint]*models.User),
		codes:  make(map[string]uint),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *memoryUserStore) Get(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return u.Clone(), nil
}

func (s *memoryUserStore) GetMany(_ context.Context, ids ...uint) ([]*models.User, error) {
	if err := checkDistinctIDs(ids); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u, ok := s.users[id]
		if !ok {
			return nil, models.NewNotFoundError("User", id)
		}
		out = append(out, u.Clone())
	}
	return out, nil
}

func (s *memoryUserStore) GetByCode(_ context.Context, code string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codes[NormalizeCode(code)]
	if !ok {
		return nil, models.NewCodeNotFoundError(code)
	}
	return s.users[id].Clone(), nil
}

func (s *memoryUserStore) SearchByCode(_ context.Context, fragment string) ([]models.User, error) {
	needle := NormalizeCode(fragment)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for key, id := range s.codes {
		if strings.Contains(key, needle) {
			out = append(out, *s.users[id].Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryUserStore) PutMany(_ context.Context, users ...*models.User) error {
	if len(users) == 0 {
		return nil
	}
	if err := checkDistinct(users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything before touching state so the write is all or nothing.
	for _, u := range users {
		stored, ok := s.users[u.ID]
		if !ok {
			return models.NewNotFoundError("User", u.ID)
		}
		if stored.Version != u.Version {
			return models.NewStorageConflictError(
				fmt.Errorf("user %d is at version %d, write was based on %d", u.ID, stored.Version, u.Version))
		}
	}

	now := s.now()
	for _, u := range users {
		stored := s.users[u.ID]
		next := u.Clone()
		bindEdges(next)
		next.PublicCode = stored.PublicCode
		next.CodeKey = stored.CodeKey
		next.CreatedAt = stored.CreatedAt
		next.Version = stored.Version + 1
		next.UpdatedAt = now
		s.users[u.ID] = next

		u.Version = next.Version
		u.UpdatedAt = now
	}
	return nil
}

func (s *memoryUserStore) Create(_ context.Context, user *models.User) error {
	if err := prepareNew(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codes[user.CodeKey]; taken {
		return models.NewCodeCollisionError(user.PublicCode)
	}
	if user.ID == 0 {
		for s.users[s.nextID] != nil {
			s.nextID++
		}
		user.ID = s.nextID
	} else if _, exists := s.users[user.ID]; exists {
		return models.NewValidationError(fmt.Sprintf("User %d already exists", user.ID))
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}

	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	bindEdges(user)

	s.users[user.ID] = user.Clone()
	s.codes[user.CodeKey] = user.ID
	return nil
}
