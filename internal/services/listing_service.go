package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/constants"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/metrics"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

const dateLayout = "2006-01-02"

// Legacy mobile format: 05 followed by 8 digits.
var contactNumberRe = regexp.MustCompile(`^05\d{8}$`)

/*
   ListingService drives the approval state machine:

       submit -> PENDING_REVIEW -> approve -> APPROVED (reference assigned)
                                -> reject  -> REJECTED (reason recorded)

   APPROVED and REJECTED are terminal; re-submission creates a new flat.
*/
type ListingService struct {
	flatRepo repositories.FlatRepository
	slotRepo repositories.ViewingSlotRepository
	notifier Notifier
	metrics  *metrics.RentalMetrics
}

func NewListingService(
	flatRepo repositories.FlatRepository,
	slotRepo repositories.ViewingSlotRepository,
	notifier Notifier,
	m *metrics.RentalMetrics,
) *ListingService {
	return &ListingService{
		flatRepo: flatRepo,
		slotRepo: slotRepo,
		notifier: notifier,
		metrics:  m,
	}
}

// Submit validates an owner's draft and creates the flat in
// PENDING_REVIEW, along with its viewing slots.
func (s *ListingService) Submit(ctx context.Context, ownerID string, req dtos.SubmitFlatRequest) (uuid.UUID, error) {
	oUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid owner ID format: %w", err)
	}

	flat, slots, valErr := buildFlatDraft(oUUID, req)
	if valErr != nil {
		return uuid.Nil, valErr
	}

	if err := s.flatRepo.Create(ctx, flat); err != nil {
		return uuid.Nil, fmt.Errorf("creating flat: %w", err)
	}
	if err := s.slotRepo.CreateBulk(ctx, slots); err != nil {
		return uuid.Nil, fmt.Errorf("creating viewing slots: %w", err)
	}

	return flat.ID, nil
}

func buildFlatDraft(ownerID uuid.UUID, req dtos.SubmitFlatRequest) (*models.Flat, []*models.ViewingSlot, error) {
	var fields []utils.FieldError
	addErr := func(field, msg string) {
		fields = append(fields, utils.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(req.Location) == "" {
		addErr("location", "is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		addErr("address", "is required")
	}
	if req.MonthlyCost <= 0 {
		addErr("monthly_cost", "must be greater than zero")
	}
	if req.PhotoCount < constants.MinFlatPhotos {
		addErr("photo_count", fmt.Sprintf("at least %d photos are required", constants.MinFlatPhotos))
	} else if req.PhotoCount > constants.MaxFlatPhotos {
		addErr("photo_count", fmt.Sprintf("at most %d photos are allowed", constants.MaxFlatPhotos))
	}

	var availFrom, availTo time.Time
	var err error
	if availFrom, err = time.Parse(dateLayout, req.AvailableFrom); err != nil {
		addErr("available_from", "must be a date in YYYY-MM-DD format")
	}
	if availTo, err = time.Parse(dateLayout, req.AvailableTo); err != nil {
		addErr("available_to", "must be a date in YYYY-MM-DD format")
	} else if !availFrom.IsZero() && !availTo.After(availFrom) {
		addErr("available_to", "must be after available_from")
	}

	today := utils.Today()
	var slots []*models.ViewingSlot
	for i, draft := range req.ViewingSlots {
		if draft.Date == "" && draft.Time == "" && draft.Contact == "" {
			continue // blank rows from the form are ignored
		}
		slotDate, err := time.Parse(dateLayout, draft.Date)
		if err != nil {
			addErr(fmt.Sprintf("viewing_slots[%d].date", i), "must be a date in YYYY-MM-DD format")
			continue
		}
		if slotDate.Before(today) {
			addErr(fmt.Sprintf("viewing_slots[%d].date", i), "must not be in the past")
			continue
		}
		if strings.TrimSpace(draft.Time) == "" {
			addErr(fmt.Sprintf("viewing_slots[%d].time", i), "is required")
			continue
		}
		if !contactNumberRe.MatchString(draft.Contact) {
			addErr(fmt.Sprintf("viewing_slots[%d].contact", i), "must be a valid 10-digit mobile number starting with 05")
			continue
		}
		slots = append(slots, &models.ViewingSlot{
			ID:            uuid.New(),
			SlotDate:      slotDate,
			SlotTime:      draft.Time,
			ContactNumber: draft.Contact,
			ClaimState:    models.SlotOpen,
		})
	}
	if len(slots) == 0 && len(fields) == 0 {
		addErr("viewing_slots", "at least one complete preview time slot is required")
	}

	if len(fields) > 0 {
		return nil, nil, &utils.ValidationError{Fields: fields}
	}

	flat := &models.Flat{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Location:           req.Location,
		Address:            req.Address,
		MonthlyCost:        req.MonthlyCost,
		AvailableFrom:      availFrom,
		AvailableTo:        availTo,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		SizeSqm:            req.SizeSqm,
		Furnished:          req.Furnished,
		HasHeating:         req.HasHeating,
		HasAirConditioning: req.HasAirConditioning,
		HasAccessControl:   req.HasAccessControl,
		HasParking:         req.HasParking,
		HasPlayground:      req.HasPlayground,
		HasStorage:         req.HasStorage,
		HasBackyard:        req.HasBackyard,
		RentalConditions:   req.RentalConditions,
		PhotoCount:         req.PhotoCount,
		Status:             models.FlatStatusPendingReview,
	}
	for _, sl := range slots {
		sl.FlatID = flat.ID
	}
	return flat, slots, nil
}

/*
Approve moves a pending flat to APPROVED and assigns its public
reference. Six digits collide often enough that the generator draws,
checks, and falls back to the unique index; every path that loses a
race redraws until the attempt budget runs out.
*/
func (s *ListingService) Approve(ctx context.Context, flatID uuid.UUID, reviewerID string) (string, error) {
	rUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return "", fmt.Errorf("invalid reviewer ID format: %w", err)
	}

	for attempt := 0; attempt < constants.MaxReferenceDrawAttempts; attempt++ {
		reference := utils.RandomNumericString(constants.FlatReferenceLength)

		exists, err := s.flatRepo.ReferenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}

		flat, err := s.flatRepo.ApproveAtomic(ctx, flatID, rUUID, reference)
		if errors.Is(err, utils.ErrReferenceTaken) {
			continue
		}
		if err != nil {
			return "", err
		}

		s.metrics.ApprovalsTotal.WithLabelValues("approved").Inc()
		go s.notifier.Notify(context.Background(), flat.OwnerID,
			"Flat Listing Approved",
			fmt.Sprintf("Your flat listing at %s has been approved and is now available for rent. Reference number: %s",
				flat.Location, reference),
		)
		return reference, nil
	}

	return "", utils.ErrReferenceSpaceExhausted
}

// Reject moves a pending flat to REJECTED. The reason is mandatory and
// is relayed to the owner.
func (s *ListingService) Reject(ctx context.Context, flatID uuid.UUID, reviewerID, reason string) error {
	rUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return fmt.Errorf("invalid reviewer ID format: %w", err)
	}
	if strings.TrimSpace(reason) == "" {
		return utils.NewValidationError("reason", "is required")
	}

	flat, err := s.flatRepo.RejectAtomic(ctx, flatID, rUUID, reason)
	if err != nil {
		return err
	}

	s.metrics.ApprovalsTotal.WithLabelValues("rejected").Inc()
	go s.notifier.Notify(context.Background(), flat.OwnerID,
		"Flat Listing Rejected",
		fmt.Sprintf("Your flat listing at %s has been rejected.\n\nReason: %s\n\nYou can submit a new listing with the required changes.",
			flat.Location, reason),
	)
	return nil
}

// ListPending returns the manager review queue, oldest first.
func (s *ListingService) ListPending(ctx context.Context) (*dtos.ListFlatsResponse, error) {
	flats, err := s.flatRepo.ListPendingReview(ctx)
	if err != nil {
		return nil, err
	}
	return buildFlatListResponse(flats), nil
}

// ListByOwner returns all of an owner's listings, newest first.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) (*dtos.ListFlatsResponse, error) {
	oUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format: %w", err)
	}
	flats, err := s.flatRepo.ListByOwner(ctx, oUUID)
	if err != nil {
		return nil, err
	}
	return buildFlatListResponse(flats), nil
}

func buildFlatListResponse(flats []*models.Flat) *dtos.ListFlatsResponse {
	results := make([]dtos.FlatDTO, 0, len(flats))
	for _, f := range flats {
		results = append(results, dtos.FlatDTO{
			FlatID:          f.ID,
			OwnerID:         f.OwnerID,
			Location:        f.Location,
			Address:         f.Address,
			MonthlyCost:     f.MonthlyCost,
			AvailableFrom:   f.AvailableFrom.Format(dateLayout),
			AvailableTo:     f.AvailableTo.Format(dateLayout),
			Bedrooms:        f.Bedrooms,
			Bathrooms:       f.Bathrooms,
			SizeSqm:         f.SizeSqm,
			Furnished:       f.Furnished,
			Status:          string(f.Status),
			FlatReference:   f.FlatReference,
			RejectionReason: f.RejectionReason,
			PhotoCount:      f.PhotoCount,
			CreatedAt:       f.CreatedAt,
		})
	}
	return &dtos.ListFlatsResponse{Results: results, Total: len(results)}
}
