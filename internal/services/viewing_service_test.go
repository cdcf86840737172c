package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

func newViewingFixture(t *testing.T) (*ViewingService, *fakeFlatRepo, *fakeSlotRepo) {
	t.Helper()
	flats := newFakeFlatRepo()
	slots := newFakeSlotRepo()
	svc := NewViewingService(flats, slots, &fakeNotifier{}, testMetrics)
	return svc, flats, slots
}

func openSlot(t *testing.T, slots *fakeSlotRepo, flatID uuid.UUID, daysAhead int) *models.ViewingSlot {
	t.Helper()
	slot := &models.ViewingSlot{
		ID:            uuid.New(),
		FlatID:        flatID,
		SlotDate:      utils.Today().AddDate(0, 0, daysAhead),
		SlotTime:      "14:00",
		ContactNumber: "0590000000",
		ClaimState:    models.SlotOpen,
	}
	require.NoError(t, slots.CreateBulk(context.Background(), []*models.ViewingSlot{slot}))
	return slot
}

func TestClaimExactlyOneWinner(t *testing.T) {
	svc, _, slots := newViewingFixture(t)
	slot := openSlot(t, slots, uuid.New(), 3)

	const contenders = 20
	var wg sync.WaitGroup
	won := make(chan uuid.UUID, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			customer := uuid.New()
			resp, err := svc.Claim(context.Background(), customer.String(), slot.ID)
			require.NoError(t, err)
			if resp.Claimed {
				won <- customer
			}
		}()
	}
	wg.Wait()
	close(won)

	var winners []uuid.UUID
	for w := range won {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	stored, err := slots.GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	require.Equal(t, models.SlotClaimed, stored.ClaimState)
	require.Equal(t, winners[0], *stored.ClaimedBy)
}

func TestClaimPastSlotIsLost(t *testing.T) {
	svc, _, slots := newViewingFixture(t)
	slot := openSlot(t, slots, uuid.New(), -1)

	resp, err := svc.Claim(context.Background(), uuid.New().String(), slot.ID)
	require.NoError(t, err)
	require.False(t, resp.Claimed)
	require.Nil(t, resp.Slot)
}

func TestClaimUnknownSlotIsLostNotError(t *testing.T) {
	svc, _, _ := newViewingFixture(t)

	resp, err := svc.Claim(context.Background(), uuid.New().String(), uuid.New())
	require.NoError(t, err)
	require.False(t, resp.Claimed)
}

func TestClaimedSlotKeepsContactVisible(t *testing.T) {
	svc, _, slots := newViewingFixture(t)
	flatID := uuid.New()
	slot := openSlot(t, slots, flatID, 2)

	resp, err := svc.Claim(context.Background(), uuid.New().String(), slot.ID)
	require.NoError(t, err)
	require.True(t, resp.Claimed)
	require.Equal(t, "0590000000", resp.Slot.ContactNumber)

	// Claimed slots still appear in the flat listing, marked as taken.
	listing, err := svc.ListOpenByFlat(context.Background(), flatID)
	require.NoError(t, err)
	require.Equal(t, 1, listing.Total)
	require.Equal(t, string(models.SlotClaimed), listing.Results[0].ClaimState)
}

func TestListClaimsByCustomer(t *testing.T) {
	svc, _, slots := newViewingFixture(t)
	customer := uuid.New()

	first := openSlot(t, slots, uuid.New(), 1)
	second := openSlot(t, slots, uuid.New(), 2)
	openSlot(t, slots, uuid.New(), 3) // unclaimed

	for _, s := range []*models.ViewingSlot{first, second} {
		resp, err := svc.Claim(context.Background(), customer.String(), s.ID)
		require.NoError(t, err)
		require.True(t, resp.Claimed)
	}

	mine, err := svc.ListClaimsByCustomer(context.Background(), customer.String())
	require.NoError(t, err)
	require.Equal(t, 2, mine.Total)
}
