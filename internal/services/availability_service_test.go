package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

func TestIsBookable(t *testing.T) {
	flats := newFakeFlatRepo()
	tenancies := newFakeTenancyRepo(flats)
	svc := NewAvailabilityService(flats, tenancies)

	today := utils.Today()
	flat := &models.Flat{ID: uuid.New(), OwnerID: uuid.New(), Status: models.FlatStatusApproved}
	require.NoError(t, flats.Create(context.Background(), flat))

	tenancies.tenancies = append(tenancies.tenancies, &models.Tenancy{
		ID: uuid.New(), FlatID: flat.ID, CustomerID: uuid.New(),
		StartDate: today.AddDate(0, 0, 10), EndDate: today.AddDate(0, 0, 40),
		Status: models.TenancyStatusConfirmed,
	})

	ok, err := svc.IsBookable(context.Background(), flat.ID, today.AddDate(0, 0, 1), today.AddDate(0, 0, 9))
	require.NoError(t, err)
	require.True(t, ok)

	// Touching the occupied range on its boundary day conflicts.
	ok, err = svc.IsBookable(context.Background(), flat.ID, today.AddDate(0, 0, 40), today.AddDate(0, 0, 60))
	require.NoError(t, err)
	require.False(t, ok)

	// A cancelled tenancy frees its range.
	tenancies.tenancies[0].Status = models.TenancyStatusCancelled
	ok, err = svc.IsBookable(context.Background(), flat.ID, today.AddDate(0, 0, 10), today.AddDate(0, 0, 40))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsBookableRequiresApprovedFlat(t *testing.T) {
	flats := newFakeFlatRepo()
	tenancies := newFakeTenancyRepo(flats)
	svc := NewAvailabilityService(flats, tenancies)

	today := utils.Today()

	pending := &models.Flat{ID: uuid.New(), OwnerID: uuid.New(), Status: models.FlatStatusPendingReview}
	require.NoError(t, flats.Create(context.Background(), pending))

	ok, err := svc.IsBookable(context.Background(), pending.ID, today, today.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.IsBookable(context.Background(), uuid.New(), today, today.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsOccupiedOn(t *testing.T) {
	flats := newFakeFlatRepo()
	tenancies := newFakeTenancyRepo(flats)
	svc := NewAvailabilityService(flats, tenancies)

	today := utils.Today()
	flatID := uuid.New()
	tenancies.tenancies = append(tenancies.tenancies, &models.Tenancy{
		ID: uuid.New(), FlatID: flatID, CustomerID: uuid.New(),
		StartDate: today, EndDate: today.AddDate(0, 0, 5),
		Status: models.TenancyStatusActive,
	})

	occupied, err := svc.IsOccupiedOn(context.Background(), flatID, today.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.True(t, occupied)

	occupied, err = svc.IsOccupiedOn(context.Background(), flatID, today.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.False(t, occupied)
}
