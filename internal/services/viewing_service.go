package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/metrics"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

/*
   ViewingService handles preview slot claims. The claim itself is a
   single conditional UPDATE in the repository, so this layer only
   interprets the outcome: won -> notify both parties, lost -> tell the
   caller someone else got there first.
*/
type ViewingService struct {
	flatRepo repositories.FlatRepository
	slotRepo repositories.ViewingSlotRepository
	notifier Notifier
	metrics  *metrics.RentalMetrics
}

func NewViewingService(
	flatRepo repositories.FlatRepository,
	slotRepo repositories.ViewingSlotRepository,
	notifier Notifier,
	m *metrics.RentalMetrics,
) *ViewingService {
	return &ViewingService{
		flatRepo: flatRepo,
		slotRepo: slotRepo,
		notifier: notifier,
		metrics:  m,
	}
}

// Claim attempts to take the slot for the customer. Claimed=false with
// a nil error means the slot was already taken, is in the past, or does
// not exist; callers treat that as a normal outcome.
func (s *ViewingService) Claim(ctx context.Context, customerID string, slotID uuid.UUID) (*dtos.ClaimSlotResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	slot, won, err := s.slotRepo.ClaimAtomic(ctx, slotID, cUUID, utils.Today())
	if err != nil {
		return nil, err
	}
	if !won {
		s.metrics.SlotClaimsTotal.WithLabelValues("lost").Inc()
		return &dtos.ClaimSlotResponse{Claimed: false}, nil
	}
	s.metrics.SlotClaimsTotal.WithLabelValues("won").Inc()

	dto := slotToDTO(slot)

	flat, flatErr := s.flatRepo.GetByID(ctx, slot.FlatID)
	if flatErr == nil && flat != nil {
		when := fmt.Sprintf("%s at %s", slot.SlotDate.Format(dateLayout), slot.SlotTime)
		go s.notifier.Notify(context.Background(), cUUID,
			"Viewing Booked",
			fmt.Sprintf("Your viewing of the flat at %s is booked for %s. Contact: %s.",
				flat.Location, when, slot.ContactNumber),
		)
		go s.notifier.Notify(context.Background(), flat.OwnerID,
			"Viewing Slot Claimed",
			fmt.Sprintf("A customer booked the %s viewing slot for your flat at %s.",
				when, flat.Location),
		)
	}

	return &dtos.ClaimSlotResponse{Claimed: true, Slot: &dto}, nil
}

// ListOpenByFlat returns the flat's upcoming slots. Claimed slots stay
// in the listing so customers can see which windows are gone.
func (s *ViewingService) ListOpenByFlat(ctx context.Context, flatID uuid.UUID) (*dtos.ListViewingSlotsResponse, error) {
	slots, err := s.slotRepo.ListUpcomingByFlat(ctx, flatID, utils.Today())
	if err != nil {
		return nil, err
	}
	return buildSlotListResponse(slots), nil
}

// ListClaimsByCustomer returns every slot the customer has claimed.
func (s *ViewingService) ListClaimsByCustomer(ctx context.Context, customerID string) (*dtos.ListViewingSlotsResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}
	slots, err := s.slotRepo.ListClaimedByCustomer(ctx, cUUID)
	if err != nil {
		return nil, err
	}
	return buildSlotListResponse(slots), nil
}

func slotToDTO(s *models.ViewingSlot) dtos.ViewingSlotDTO {
	return dtos.ViewingSlotDTO{
		SlotID:        s.ID,
		FlatID:        s.FlatID,
		Date:          s.SlotDate.Format(dateLayout),
		Time:          s.SlotTime,
		ContactNumber: s.ContactNumber,
		ClaimState:    string(s.ClaimState),
		ClaimedBy:     s.ClaimedBy,
	}
}

func buildSlotListResponse(slots []*models.ViewingSlot) *dtos.ListViewingSlotsResponse {
	results := make([]dtos.ViewingSlotDTO, 0, len(slots))
	for _, sl := range slots {
		results = append(results, slotToDTO(sl))
	}
	return &dtos.ListViewingSlotsResponse{Results: results, Total: len(results)}
}
