package service

import (
	"context"
	"strings"
	"testing"

	"ganboo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByCode_Scenario(t *testing.T) {
	store := newTestStore(t)
	lookup := NewLookupService(store)
	friends := newTestFriendService(store)
	ctx := context.Background()

	got, err := lookup.FindByCode(ctx, 1, "ming88")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, "小明", got[0].DisplayName)
	assert.Equal(t, models.RequestStatusNone, got[0].RequestStatus)
	assert.False(t, got[0].IsFriend)

	_, err = friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	got, err = lookup.FindByCode(ctx, 1, "ming88")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.RequestStatusSent, got[0].RequestStatus)

	got, err = lookup.FindByCode(ctx, 2, "A1B2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.RequestStatusReceived, got[0].RequestStatus)

	_, err = friends.AcceptRequest(ctx, 2, 1)
	require.NoError(t, err)

	got, err = lookup.FindByCode(ctx, 1, "ming88")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsFriend)
	assert.Equal(t, models.RequestStatusNone, got[0].RequestStatus)
	assert.True(t, mustGet(t, store, 1).HasFriend(2))
	assert.True(t, mustGet(t, store, 2).HasFriend(1))
}

func TestFindByCode_ExcludesCaller(t *testing.T) {
	lookup := NewLookupService(newTestStore(t))

	got, err := lookup.FindByCode(context.Background(), 1, "ganboo")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)

	got, err = lookup.FindByCode(context.Background(), 1, "GANBOO-A1B2")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFindByCode_StatusMatchesEngine(t *testing.T) {
	store := newTestStore(t)
	lookup := NewLookupService(store)
	friends := newTestFriendService(store)
	ctx := context.Background()

	_, err := friends.SendRequest(ctx, 2, 1)
	require.NoError(t, err)
	_, err = friends.SendRequest(ctx, 1, 3)
	require.NoError(t, err)

	got, err := lookup.FindByCode(ctx, 1, "ganboo")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		status, err := friends.GetStatus(ctx, 1, c.ID)
		require.NoError(t, err)
		switch status {
		case models.RelationshipPendingSent:
			assert.Equal(t, models.RequestStatusSent, c.RequestStatus)
		case models.RelationshipPendingReceived:
			assert.Equal(t, models.RequestStatusReceived, c.RequestStatus)
		default:
			assert.Equal(t, models.RequestStatusNone, c.RequestStatus)
		}
	}
}

func TestFindByCode_InvalidInput(t *testing.T) {
	lookup := NewLookupService(newTestStore(t))
	ctx := context.Background()

	for _, q := range []string{"", "   ", strings.Repeat("码", MaxQueryLength+1)} {
		_, err := lookup.FindByCode(ctx, 1, q)
		assert.True(t, models.HasCode(err, models.CodeInvalidQuery), "query %q", q)
	}

	_, err := lookup.FindByCode(ctx, 1, strings.Repeat("码", MaxQueryLength))
	assert.NoError(t, err)

	_, err = lookup.FindByCode(ctx, 404, "ganboo")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestGetProfile(t *testing.T) {
	lookup := NewLookupService(newTestStore(t))

	u, err := lookup.GetProfile(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "GANBOO-MEI99", u.PublicCode)

	_, err = lookup.GetProfile(context.Background(), 404)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
