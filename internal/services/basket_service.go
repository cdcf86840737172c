package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

/*
   BasketService manages soft holds. Holds are advisory only: they are
   never consulted during booking, any number of customers may hold the
   same flat, and a hold can sit in the basket while someone else rents
   the flat out from under it. Booking-time enforcement is the only
   enforcement.
*/
type BasketService struct {
	basketRepo repositories.BasketRepository
	flatRepo   repositories.FlatRepository
	booking    *BookingService
}

func NewBasketService(
	basketRepo repositories.BasketRepository,
	flatRepo   repositories.FlatRepository,
	booking *BookingService,
) *BasketService {
	return &BasketService{
		basketRepo: basketRepo,
		flatRepo:   flatRepo,
		booking:    booking,
	}
}

// Hold saves the flat to the customer's basket. Holding a flat the
// customer already holds updates the range on the existing entry and
// returns its ID, so the operation is safe to retry.
func (s *BasketService) Hold(ctx context.Context, customerID string, req dtos.HoldFlatRequest) (*dtos.HoldFlatResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	flat, err := s.flatRepo.GetByID(ctx, req.FlatID)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, utils.ErrNotFound
	}
	if flat.Status != models.FlatStatusApproved {
		return nil, utils.ErrFlatNotRentable
	}

	hold := &models.SoftHold{
		ID:         uuid.New(),
		FlatID:     req.FlatID,
		CustomerID: cUUID,
		CreatedAt:  time.Now().UTC(),
	}
	if req.StartDate != "" || req.EndDate != "" {
		start, end, valErr := parseRentalRange(req.StartDate, req.EndDate)
		if valErr != nil {
			return nil, valErr
		}
		hold.StartDate = &start
		hold.EndDate = &end
	}

	stored, err := s.basketRepo.Upsert(ctx, hold)
	if err != nil {
		return nil, err
	}
	return &dtos.HoldFlatResponse{HoldID: stored.ID}, nil
}

// List returns the basket with a cost preview per item. Estimates use
// current listing prices; a flat that has since been rented still shows
// here, priced as if it were free.
func (s *BasketService) List(ctx context.Context, customerID string) (*dtos.ListBasketResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	holds, err := s.basketRepo.ListByCustomer(ctx, cUUID)
	if err != nil {
		return nil, err
	}

	resp := &dtos.ListBasketResponse{Items: make([]dtos.BasketItemDTO, 0, len(holds))}
	for _, h := range holds {
		item := dtos.BasketItemDTO{
			HoldID: h.ID,
			FlatID: h.FlatID,
		}
		flat, err := s.flatRepo.GetByID(ctx, h.FlatID)
		if err != nil {
			return nil, err
		}
		if flat != nil {
			item.FlatReference = flat.FlatReference
			item.Location = flat.Location
			item.MonthlyCost = flat.MonthlyCost
		}
		if h.HasRange() {
			item.StartDate = h.StartDate.Format(dateLayout)
			item.EndDate = h.EndDate.Format(dateLayout)
			if flat != nil {
				cost := utils.RentalCost(flat.MonthlyCost, *h.StartDate, *h.EndDate)
				item.EstimatedCost = &cost
				resp.TotalEstimated += cost
			}
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

// Release drops a hold from the basket. Releasing a hold that is
// already gone is a no-op.
func (s *BasketService) Release(ctx context.Context, customerID string, holdID uuid.UUID) error {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return fmt.Errorf("invalid customer ID format: %w", err)
	}
	_, err = s.basketRepo.DeleteByHoldID(ctx, cUUID, holdID)
	return err
}

// Checkout converts a hold into a binding tenancy using the period
// stored on the hold. The booking path is exactly the direct one; the
// hold contributes nothing but the flat and range.
func (s *BasketService) Checkout(ctx context.Context, customerID string, holdID uuid.UUID, req dtos.CheckoutHoldRequest) (*dtos.BookRentalResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	hold, err := s.basketRepo.GetByHoldID(ctx, cUUID, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, utils.ErrNotFound
	}
	if !hold.HasRange() {
		return nil, utils.NewValidationError("hold", "has no rental period; set one before checkout")
	}

	return s.booking.Book(ctx, customerID, dtos.BookRentalRequest{
		FlatID:     hold.FlatID,
		StartDate:  hold.StartDate.Format(dateLayout),
		EndDate:    hold.EndDate.Format(dateLayout),
		CardNumber: req.CardNumber,
	})
}
