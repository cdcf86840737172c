package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
)

func newTestBasketRepo(t *testing.T) BasketRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewBasketRepository(rdb)
}

func TestBasketUpsertPreservesIdentityOnRehold(t *testing.T) {
	repo := newTestBasketRepo(t)
	ctx := context.Background()

	customer := uuid.New()
	flat := uuid.New()

	first := &models.SoftHold{
		ID:         uuid.New(),
		FlatID:     flat,
		CustomerID: customer,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	_, err := repo.Upsert(ctx, first)
	require.NoError(t, err)

	start := time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Second)
	end := start.AddDate(0, 1, 0)
	second := &models.SoftHold{
		ID:         uuid.New(), // fresh ID loses to the stored one
		FlatID:     flat,
		CustomerID: customer,
		StartDate:  &start,
		EndDate:    &end,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := repo.Upsert(ctx, second)
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID)
	require.Equal(t, first.CreatedAt, stored.CreatedAt)

	holds, err := repo.ListByCustomer(ctx, customer)
	require.NoError(t, err)
	require.Len(t, holds, 1)
	require.True(t, holds[0].HasRange())
}

func TestBasketHoldsAreScopedPerCustomer(t *testing.T) {
	repo := newTestBasketRepo(t)
	ctx := context.Background()

	flat := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	for _, customer := range []uuid.UUID{alice, bob} {
		_, err := repo.Upsert(ctx, &models.SoftHold{
			ID:         uuid.New(),
			FlatID:     flat,
			CustomerID: customer,
			CreatedAt:  time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteByFlat(ctx, alice, flat))

	aliceHolds, err := repo.ListByCustomer(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, aliceHolds)

	bobHolds, err := repo.ListByCustomer(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobHolds, 1)
}

func TestBasketDeleteByHoldID(t *testing.T) {
	repo := newTestBasketRepo(t)
	ctx := context.Background()

	customer := uuid.New()
	hold := &models.SoftHold{
		ID:         uuid.New(),
		FlatID:     uuid.New(),
		CustomerID: customer,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := repo.Upsert(ctx, hold)
	require.NoError(t, err)

	removed, err := repo.DeleteByHoldID(ctx, customer, hold.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.DeleteByHoldID(ctx, customer, hold.ID)
	require.NoError(t, err)
	require.False(t, removed)

	fetched, err := repo.GetByHoldID(ctx, customer, hold.ID)
	require.NoError(t, err)
	require.Nil(t, fetched)
}
