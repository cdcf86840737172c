package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

func validDraft() dtos.SubmitFlatRequest {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	nextYear := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	return dtos.SubmitFlatRequest{
		Location:      "Nablus",
		Address:       "3 Rafidia Main Street",
		MonthlyCost:   800,
		AvailableFrom: tomorrow,
		AvailableTo:   nextYear,
		Bedrooms:      2,
		Bathrooms:     1,
		SizeSqm:       80,
		PhotoCount:    4,
		ViewingSlots: []dtos.ViewingSlotDraft{
			{Date: tomorrow, Time: "11:00", Contact: "0599876543"},
		},
	}
}

func newListingFixture() (*ListingService, *fakeFlatRepo, *fakeSlotRepo, *fakeNotifier) {
	flats := newFakeFlatRepo()
	slots := newFakeSlotRepo()
	notifier := &fakeNotifier{}
	return NewListingService(flats, slots, notifier, testMetrics), flats, slots, notifier
}

func TestSubmitCreatesPendingFlatWithSlots(t *testing.T) {
	svc, flats, slots, _ := newListingFixture()
	ownerID := uuid.New()

	flatID, err := svc.Submit(context.Background(), ownerID.String(), validDraft())
	require.NoError(t, err)

	flat, err := flats.GetByID(context.Background(), flatID)
	require.NoError(t, err)
	require.NotNil(t, flat)
	require.Equal(t, models.FlatStatusPendingReview, flat.Status)
	require.Nil(t, flat.FlatReference)
	require.Equal(t, ownerID, flat.OwnerID)

	upcoming, err := slots.ListUpcomingByFlat(context.Background(), flatID, utils.Today())
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, models.SlotOpen, upcoming[0].ClaimState)
}

func TestSubmitRejectsBadDrafts(t *testing.T) {
	svc, _, _, _ := newListingFixture()
	ownerID := uuid.New().String()

	cases := []struct {
		name   string
		mutate func(*dtos.SubmitFlatRequest)
	}{
		{"too few photos", func(r *dtos.SubmitFlatRequest) { r.PhotoCount = 2 }},
		{"too many photos", func(r *dtos.SubmitFlatRequest) { r.PhotoCount = 11 }},
		{"missing location", func(r *dtos.SubmitFlatRequest) { r.Location = "  " }},
		{"zero cost", func(r *dtos.SubmitFlatRequest) { r.MonthlyCost = 0 }},
		{"availability inverted", func(r *dtos.SubmitFlatRequest) {
			r.AvailableFrom, r.AvailableTo = r.AvailableTo, r.AvailableFrom
		}},
		{"bad slot contact", func(r *dtos.SubmitFlatRequest) { r.ViewingSlots[0].Contact = "1234567890" }},
		{"slot in the past", func(r *dtos.SubmitFlatRequest) { r.ViewingSlots[0].Date = "2020-01-01" }},
		{"no slots", func(r *dtos.SubmitFlatRequest) { r.ViewingSlots = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			_, err := svc.Submit(context.Background(), ownerID, draft)
			var valErr *utils.ValidationError
			require.ErrorAs(t, err, &valErr)
		})
	}
}

func TestApproveAssignsSixDigitReference(t *testing.T) {
	svc, flats, _, _ := newListingFixture()
	ownerID := uuid.New()

	flatID, err := svc.Submit(context.Background(), ownerID.String(), validDraft())
	require.NoError(t, err)

	ref, err := svc.Approve(context.Background(), flatID, uuid.New().String())
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, ref)

	flat, _ := flats.GetByID(context.Background(), flatID)
	require.Equal(t, models.FlatStatusApproved, flat.Status)
	require.NotNil(t, flat.FlatReference)
	require.Equal(t, ref, *flat.FlatReference)
}

func TestApproveIsFirstTransitionWins(t *testing.T) {
	svc, _, _, _ := newListingFixture()

	flatID, err := svc.Submit(context.Background(), uuid.New().String(), validDraft())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), flatID, uuid.New().String())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), flatID, uuid.New().String())
	require.ErrorIs(t, err, utils.ErrInvalidTransition)

	err = svc.Reject(context.Background(), flatID, uuid.New().String(), "late review")
	require.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestApproveRedrawsOnReferenceCollision(t *testing.T) {
	svc, flats, _, _ := newListingFixture()

	flatID, err := svc.Submit(context.Background(), uuid.New().String(), validDraft())
	require.NoError(t, err)

	// The first two draws lose the unique-index race; the third sticks.
	flats.failApprovals = 2

	ref, err := svc.Approve(context.Background(), flatID, uuid.New().String())
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, ref)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, flats, _, _ := newListingFixture()

	flatID, err := svc.Submit(context.Background(), uuid.New().String(), validDraft())
	require.NoError(t, err)

	err = svc.Reject(context.Background(), flatID, uuid.New().String(), "   ")
	var valErr *utils.ValidationError
	require.True(t, errors.As(err, &valErr))

	err = svc.Reject(context.Background(), flatID, uuid.New().String(), "photos do not match the address")
	require.NoError(t, err)

	flat, _ := flats.GetByID(context.Background(), flatID)
	require.Equal(t, models.FlatStatusRejected, flat.Status)
	require.NotNil(t, flat.RejectionReason)
	require.Equal(t, "photos do not match the address", *flat.RejectionReason)
}

func TestApproveUnknownFlat(t *testing.T) {
	svc, _, _, _ := newListingFixture()

	_, err := svc.Approve(context.Background(), uuid.New(), uuid.New().String())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListPendingAndByOwner(t *testing.T) {
	svc, _, _, _ := newListingFixture()
	owner := uuid.New()

	flatID, err := svc.Submit(context.Background(), owner.String(), validDraft())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), uuid.New().String(), validDraft())
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, pending.Total)

	mine, err := svc.ListByOwner(context.Background(), owner.String())
	require.NoError(t, err)
	require.Equal(t, 1, mine.Total)
	require.Equal(t, flatID, mine.Results[0].FlatID)
}
