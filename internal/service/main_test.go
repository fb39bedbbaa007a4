package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ganboo/internal/config"
	"ganboo/internal/database"
	"ganboo/internal/models"
	"ganboo/internal/repository"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// newTestStore returns a memory store holding the three demo users plus extra ones.
func newTestStore(t *testing.T, extra ...models.User) repository.UserStore {
	t.Helper()
	return seedTestStore(t, repository.NewMemoryUserStore(), extra...)
}

// newSQLiteTestStore returns a GORM store on a SQLite file holding the demo
// users plus extra ones.
func newSQLiteTestStore(t *testing.T, extra ...models.User) repository.UserStore {
	t.Helper()
	db, err := database.Connect(&config.Config{
		Env:        "test",
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "ganboo.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return seedTestStore(t, repository.NewUserRepository(db), extra...)
}

var storeFactories = map[string]func(t *testing.T, extra ...models.User) repository.UserStore{
	"memory": newTestStore,
	"gorm":   newSQLiteTestStore,
}

// forEachStore runs fn once per UserStore backend.
func forEachStore(t *testing.T, fn func(t *testing.T, newStore func(extra ...models.User) repository.UserStore)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, func(extra ...models.User) repository.UserStore { return factory(t, extra...) })
		})
	}
}

func seedTestStore(t *testing.T, store repository.UserStore, extra ...models.User) repository.UserStore {
	t.Helper()
	users := append([]models.User{
		{ID: 1, DisplayName: "你自己", Level: 5, PublicCode: "GANBOO-A1B2"},
		{ID: 2, DisplayName: "小明", Level: 4, PublicCode: "GANBOO-MING88"},
		{ID: 3, DisplayName: "小美", Level: 6, PublicCode: "GANBOO-MEI99"},
	}, extra...)
	for i := range users {
		require.NoError(t, store.Create(context.Background(), &users[i]))
	}
	return store
}

func newTestFriendService(store repository.UserStore, opts ...FriendOption) *FriendService {
	opts = append([]FriendOption{
		WithClock(func() time.Time { return fixedNow }),
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}, opts...)
	return NewFriendService(store, opts...)
}

func mustGet(t *testing.T, store repository.UserStore, id uint) *models.User {
	t.Helper()
	u, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}
