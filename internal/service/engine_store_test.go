package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"ganboo/internal/models"
	"ganboo/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertRelationshipInvariants checks every pair among ids: friendship and
// pending edges are mirrored, and a pair is never both friends and pending
// or pending in both directions.
func assertRelationshipInvariants(t *testing.T, store repository.UserStore, ids ...uint) {
	t.Helper()
	users, err := store.GetMany(context.Background(), ids...)
	require.NoError(t, err)

	for i, a := range users {
		assert.False(t, a.HasFriend(a.ID), "user %d befriends itself", a.ID)
		assert.False(t, a.HasOutgoingTo(a.ID), "user %d requests itself", a.ID)
		for _, b := range users[i+1:] {
			pair := fmt.Sprintf("users %d and %d", a.ID, b.ID)
			assert.Equal(t, a.HasFriend(b.ID), b.HasFriend(a.ID), pair)
			assert.Equal(t, a.HasOutgoingTo(b.ID), b.HasIncomingFrom(a.ID), pair)
			assert.Equal(t, b.HasOutgoingTo(a.ID), a.HasIncomingFrom(b.ID), pair)
			pending := a.HasOutgoingTo(b.ID) || b.HasOutgoingTo(a.ID)
			assert.False(t, a.HasFriend(b.ID) && pending, pair)
			assert.False(t, a.HasOutgoingTo(b.ID) && b.HasOutgoingTo(a.ID), pair)
		}
	}
}

func TestEngine_TransitionsOnEachStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore func(...models.User) repository.UserStore) {
		store := newStore()
		svc := newTestFriendService(store)
		ctx := context.Background()

		res, err := svc.SendRequest(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipPendingSent, res.Status)
		status, err := svc.GetStatus(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipPendingReceived, status)

		_, err = svc.SendRequest(ctx, 1, 2)
		assert.True(t, models.HasCode(err, models.CodeDuplicateRequest))

		res, err = svc.AcceptRequest(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipFriends, res.Status)
		_, err = svc.SendRequest(ctx, 2, 1)
		assert.True(t, models.HasCode(err, models.CodeAlreadyFriends))

		_, err = svc.SendRequest(ctx, 3, 1)
		require.NoError(t, err)
		res, err = svc.RejectRequest(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipNone, res.Status)
		_, err = svc.RejectRequest(ctx, 1, 3)
		assert.True(t, models.HasCode(err, models.CodeNoSuchRequest))

		a, c := mustGet(t, store, 1), mustGet(t, store, 3)
		assertNoPending(t, a, c)
		assertRelationshipInvariants(t, store, 1, 2, 3)
	})
}

// racingStore lets a rival instance commit to the pair just before the
// engine reads it. The rival fires on the first pair read, or on a single
// read of triggerID.
type racingStore struct {
	repository.UserStore
	triggerID uint
	rival     func()
	once      sync.Once
}

func (s *racingStore) Get(ctx context.Context, id uint) (*models.User, error) {
	if id == s.triggerID {
		s.once.Do(s.rival)
	}
	return s.UserStore.Get(ctx, id)
}

func (s *racingStore) GetMany(ctx context.Context, ids ...uint) ([]*models.User, error) {
	s.once.Do(s.rival)
	return s.UserStore.GetMany(ctx, ids...)
}

func TestSendRequest_ReadsPairFromOneSnapshot(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore func(...models.User) repository.UserStore) {
		inner := newStore()
		rival := newTestFriendService(inner)
		ctx := context.Background()

		_, err := rival.SendRequest(ctx, 1, 2)
		require.NoError(t, err)

		var rivalErr error
		store := &racingStore{UserStore: inner, triggerID: 2, rival: func() {
			_, rivalErr = rival.AcceptRequest(ctx, 2, 1)
		}}
		svc := newTestFriendService(store)

		_, err = svc.SendRequest(ctx, 1, 2)
		require.NoError(t, rivalErr)
		assert.True(t, models.HasCode(err, models.CodeAlreadyFriends), "got %v", err)

		a, b := mustGet(t, inner, 1), mustGet(t, inner, 2)
		assert.True(t, a.HasFriend(2))
		assert.True(t, b.HasFriend(1))
		assertNoPending(t, a, b)
	})
}

func TestGetStatus_ReadsPairFromOneSnapshot(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore func(...models.User) repository.UserStore) {
		inner := newStore()
		rival := newTestFriendService(inner)
		ctx := context.Background()

		_, err := rival.SendRequest(ctx, 1, 2)
		require.NoError(t, err)

		var rivalErr error
		store := &racingStore{UserStore: inner, triggerID: 2, rival: func() {
			_, rivalErr = rival.AcceptRequest(ctx, 2, 1)
		}}
		svc := newTestFriendService(store)

		status, err := svc.GetStatus(ctx, 1, 2)
		require.NoError(t, rivalErr)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipFriends, status)
	})
}

func TestSendRequest_ReciprocalRaceAcrossInstancesOnEachStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore func(...models.User) repository.UserStore) {
		for i := 0; i < 10; i++ {
			store := newStore()
			left := newTestFriendService(store)
			right := newTestFriendService(store)

			var wg sync.WaitGroup
			errs := make([]error, 2)
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, errs[0] = left.SendRequest(context.Background(), 1, 2)
			}()
			go func() {
				defer wg.Done()
				_, errs[1] = right.SendRequest(context.Background(), 2, 1)
			}()
			wg.Wait()

			require.NoError(t, errs[0])
			require.NoError(t, errs[1])

			a, b := mustGet(t, store, 1), mustGet(t, store, 2)
			require.True(t, a.HasFriend(2))
			require.True(t, b.HasFriend(1))
			assertNoPending(t, a, b)
		}
	})
}

func TestEngine_RandomConcurrentOpsKeepInvariants(t *testing.T) {
	const (
		workers = 8
		ops     = 20
		users   = 6
	)

	forEachStore(t, func(t *testing.T, newStore func(...models.User) repository.UserStore) {
		var extra []models.User
		for id := uint(4); id <= users; id++ {
			extra = append(extra, models.User{ID: id, DisplayName: "u", Level: 1, PublicCode: fmt.Sprintf("CODE-%d", id)})
		}
		store := newStore(extra...)
		instances := []*FriendService{
			newTestFriendService(store, WithMaxAttempts(10)),
			newTestFriendService(store, WithMaxAttempts(10)),
		}

		expected := map[string]bool{
			models.CodeAlreadyFriends:   true,
			models.CodeDuplicateRequest: true,
			models.CodeNoSuchRequest:    true,
			models.CodeStorageConflict:  true,
		}

		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			unexpected []error
		)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				rng := rand.New(rand.NewPCG(uint64(w), 42))
				svc := instances[w%len(instances)]
				for i := 0; i < ops; i++ {
					a := uint(rng.IntN(users)) + 1
					b := uint(rng.IntN(users-1)) + 1
					if b >= a {
						b++
					}

					var err error
					switch rng.IntN(3) {
					case 0:
						_, err = svc.SendRequest(context.Background(), a, b)
					case 1:
						_, err = svc.AcceptRequest(context.Background(), a, b)
					default:
						_, err = svc.RejectRequest(context.Background(), a, b)
					}
					if err != nil && !expected[models.ErrorCode(err)] {
						mu.Lock()
						unexpected = append(unexpected, err)
						mu.Unlock()
					}
				}
			}(w)
		}
		wg.Wait()

		assert.Empty(t, unexpected)
		ids := make([]uint, 0, users)
		for id := uint(1); id <= users; id++ {
			ids = append(ids, id)
		}
		assertRelationshipInvariants(t, store, ids...)
	})
}
