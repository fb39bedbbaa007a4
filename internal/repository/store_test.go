package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ganboo/internal/config"
	"ganboo/internal/database"
	"ganboo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) UserStore {
	t.Helper()
	db, err := database.Connect(&config.Config{
		Env:        "test",
		DBDriver:   "sqlite",
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewUserRepository(db)
}

var storeFactories = map[string]func(t *testing.T) UserStore{
	"memory": func(*testing.T) UserStore { return NewMemoryUserStore() },
	"gorm":   newSQLiteStore,
}

func forEachStore(t *testing.T, fn func(t *testing.T, store UserStore)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func mustCreate(t *testing.T, store UserStore, id uint, name, code string) *models.User {
	t.Helper()
	u := &models.User{ID: id, DisplayName: name, Level: 3, PublicCode: code}
	require.NoError(t, store.Create(context.Background(), u))
	return u
}

func TestStore_CreateAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "小明", "GANBOO-MING88")

		got, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "小明", got.DisplayName)
		assert.Equal(t, "GANBOO-MING88", got.PublicCode)
		assert.Equal(t, 3, got.Level)
		assert.Empty(t, got.Friends)
		assert.Equal(t, uint(0), got.Version)

		_, err = store.Get(ctx, 99)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestStore_CreateAssignsID(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		u := &models.User{DisplayName: "auto", Level: 1, PublicCode: "AUTO-1"}
		require.NoError(t, store.Create(context.Background(), u))
		assert.NotZero(t, u.ID)

		got, err := store.Get(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, "auto", got.DisplayName)
	})
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		err := store.Create(ctx, &models.User{DisplayName: "", PublicCode: "X"})
		assert.True(t, models.HasCode(err, models.CodeValidation))

		err = store.Create(ctx, &models.User{DisplayName: "x", PublicCode: "   "})
		assert.True(t, models.HasCode(err, models.CodeValidation))

		mustCreate(t, store, 5, "five", "FIVE")
		err = store.Create(ctx, &models.User{ID: 5, DisplayName: "again", PublicCode: "OTHER"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})
}

func TestStore_CodeCollisionIsCaseInsensitive(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		mustCreate(t, store, 1, "a", "GANBOO-A1B2")

		err := store.Create(context.Background(), &models.User{ID: 2, DisplayName: "b", PublicCode: "ganboo-a1b2"})
		assert.True(t, models.HasCode(err, models.CodeCodeCollision))

		_, err = store.Get(context.Background(), 2)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestStore_GetByCode(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "a", "GANBOO-A1B2")

		got, err := store.GetByCode(ctx, "  ganboo-a1b2 ")
		require.NoError(t, err)
		assert.Equal(t, uint(1), got.ID)

		_, err = store.GetByCode(ctx, "GANBOO-NOPE")
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestStore_SearchByCode(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 3, "mei", "GANBOO-MEI99")
		mustCreate(t, store, 1, "me", "GANBOO-A1B2")
		mustCreate(t, store, 2, "ming", "GANBOO-MING88")
		mustCreate(t, store, 4, "pct", "100%_OFF")

		got, err := store.SearchByCode(ctx, "ganboo-m")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uint(2), got[0].ID)
		assert.Equal(t, uint(3), got[1].ID)

		got, err = store.SearchByCode(ctx, "Ganboo")
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = store.SearchByCode(ctx, "%_")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, uint(4), got[0].ID)

		got, err = store.SearchByCode(ctx, "ZZZ")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_PutManyWritesEdgesAndBumpsVersion(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "a", "A")
		mustCreate(t, store, 2, "b", "B")

		a, err := store.Get(ctx, 1)
		require.NoError(t, err)
		b, err := store.Get(ctx, 2)
		require.NoError(t, err)

		sentAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		a.AddOutgoing(2, sentAt)
		b.AddIncoming(1, sentAt)
		require.NoError(t, store.PutMany(ctx, a, b))
		assert.Equal(t, uint(1), a.Version)
		assert.Equal(t, uint(1), b.Version)

		a, err = store.Get(ctx, 1)
		require.NoError(t, err)
		b, err = store.Get(ctx, 2)
		require.NoError(t, err)
		assert.True(t, a.HasOutgoingTo(2))
		assert.True(t, b.HasIncomingFrom(1))
		require.Len(t, b.IncomingRequests, 1)
		assert.True(t, sentAt.Equal(b.IncomingRequests[0].SentAt))
		assert.Equal(t, uint(1), a.Version)

		a.RemoveOutgoing(2)
		b.RemoveIncoming(1)
		a.AddFriend(2, sentAt)
		b.AddFriend(1, sentAt)
		require.NoError(t, store.PutMany(ctx, a, b))

		a, err = store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, a.OutgoingRequests)
		assert.Equal(t, []uint{2}, a.FriendIDs())
		assert.Equal(t, uint(2), a.Version)
	})
}

func TestStore_PutManyStaleVersionWritesNothing(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "a", "A")
		mustCreate(t, store, 2, "b", "B")

		staleB, err := store.Get(ctx, 2)
		require.NoError(t, err)

		// Someone else writes b first.
		b, err := store.Get(ctx, 2)
		require.NoError(t, err)
		b.AddFriend(9, time.Now())
		require.NoError(t, store.PutMany(ctx, b))

		a, err := store.Get(ctx, 1)
		require.NoError(t, err)
		a.AddOutgoing(2, time.Now())
		staleB.AddIncoming(1, time.Now())

		err = store.PutMany(ctx, a, staleB)
		assert.True(t, models.HasCode(err, models.CodeStorageConflict))
		assert.Equal(t, uint(0), a.Version)

		a, err = store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, a.OutgoingRequests, "first record must not be written when the second conflicts")
		assert.Equal(t, uint(0), a.Version)

		b, err = store.Get(ctx, 2)
		require.NoError(t, err)
		assert.False(t, b.HasIncomingFrom(1))
		assert.Equal(t, []uint{9}, b.FriendIDs())
	})
}

func TestStore_PutManyUnknownAndDuplicate(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		a := mustCreate(t, store, 1, "a", "A")

		err := store.PutMany(ctx, &models.User{ID: 42, DisplayName: "ghost", PublicCode: "G"})
		assert.True(t, models.HasCode(err, models.CodeNotFound))

		err = store.PutMany(ctx, a, a)
		assert.True(t, models.HasCode(err, models.CodeValidation))

		assert.NoError(t, store.PutMany(ctx))
	})
}

func TestStore_GetMany(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "a", "A")
		mustCreate(t, store, 2, "b", "B")
		a, err := store.Get(ctx, 1)
		require.NoError(t, err)
		b, err := store.Get(ctx, 2)
		require.NoError(t, err)
		a.AddOutgoing(2, time.Now())
		b.AddIncoming(1, time.Now())
		require.NoError(t, store.PutMany(ctx, a, b))

		pair, err := store.GetMany(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, pair, 2)
		assert.Equal(t, uint(2), pair[0].ID)
		assert.Equal(t, uint(1), pair[1].ID)
		assert.True(t, pair[0].HasIncomingFrom(1))
		assert.True(t, pair[1].HasOutgoingTo(2))
		assert.Equal(t, b.Version, pair[0].Version)

		_, err = store.GetMany(ctx, 1, 42)
		assert.True(t, models.HasCode(err, models.CodeNotFound))

		_, err = store.GetMany(ctx, 1, 1)
		assert.True(t, models.HasCode(err, models.CodeValidation))

		none, err := store.GetMany(ctx)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestStore_ReadsAreIsolatedCopies(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		mustCreate(t, store, 1, "a", "A")

		got, err := store.Get(ctx, 1)
		require.NoError(t, err)
		got.AddFriend(7, time.Now())
		got.DisplayName = "changed"

		again, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, again.Friends)
		assert.Equal(t, "a", again.DisplayName)
	})
}

func TestNormalizeCodeAndEscape(t *testing.T) {
	assert.Equal(t, "ganboo-a1b2", NormalizeCode("  GANBOO-A1B2\t"))
	assert.Equal(t, NormalizeCode("caf\u00e9"), NormalizeCode("CAFE\u0301"))
	assert.Equal(t, "strasse", NormalizeCode("Straße"))
	assert.Equal(t, `100\%\_\\`, escapeLike(`100%_\`))
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			errs <- store.Create(ctx, &models.User{DisplayName: "u", PublicCode: fmt.Sprintf("C-%d", i%10)})
		}(i)
	}
	var collisions int
	for i := 0; i < 20; i++ {
		if err := <-errs; err != nil {
			require.True(t, models.HasCode(err, models.CodeCodeCollision))
			collisions++
		}
	}
	assert.Equal(t, 10, collisions)
}
