package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/constants"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/metrics"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

var cardNumberRe = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, constants.CardNumberLength))

/*
   BookingService creates tenancies. The check-then-insert race lives in
   the repository (BookAtomic holds the flat row lock); this layer owns
   validation, pricing, and the post-commit side effects. Side effects
   never fail a booking: a tenancy that committed is booked, full stop.
*/
type BookingService struct {
	flatRepo    repositories.FlatRepository
	tenancyRepo repositories.TenancyRepository
	basketRepo  repositories.BasketRepository
	notifier    Notifier
	metrics     *metrics.RentalMetrics
}

func NewBookingService(
	flatRepo repositories.FlatRepository,
	tenancyRepo repositories.TenancyRepository,
	basketRepo repositories.BasketRepository,
	notifier Notifier,
	m *metrics.RentalMetrics,
) *BookingService {
	return &BookingService{
		flatRepo:    flatRepo,
		tenancyRepo: tenancyRepo,
		basketRepo:  basketRepo,
		notifier:    notifier,
		metrics:     m,
	}
}

// Book validates the request, prices the range, and attempts the
// atomic reservation. On success it clears any basket hold for the
// flat and notifies both parties; both are best-effort.
func (s *BookingService) Book(ctx context.Context, customerID string, req dtos.BookRentalRequest) (*dtos.BookRentalResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	start, end, valErr := parseRentalRange(req.StartDate, req.EndDate)
	if valErr != nil {
		return nil, valErr
	}
	if !cardNumberRe.MatchString(req.CardNumber) {
		return nil, utils.NewValidationError("card_number",
			fmt.Sprintf("must be exactly %d digits", constants.CardNumberLength))
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

	months := utils.BillableMonths(start, end)
	tenancy := &models.Tenancy{
		ID:           uuid.New(),
		FlatID:       flat.ID,
		CustomerID:   cUUID,
		StartDate:    start,
		EndDate:      end,
		Status:       models.TenancyStatusConfirmed,
		TotalCost:    utils.RentalCost(flat.MonthlyCost, start, end),
		PaymentToken: tokenizeCard(req.CardNumber),
	}

	if err := s.tenancyRepo.BookAtomic(ctx, tenancy); err != nil {
		if errors.Is(err, utils.ErrRangeUnavailable) {
			s.metrics.BookingConflicts.Inc()
		}
		return nil, err
	}
	s.metrics.BookingsTotal.Inc()

	// Post-commit cleanup: the hold is advisory, so a failed delete is
	// logged and forgotten rather than surfaced.
	if delErr := s.basketRepo.DeleteByFlat(ctx, cUUID, flat.ID); delErr != nil {
		utils.Logger.WithError(delErr).
			WithField("flat_id", flat.ID).
			Warn("failed to clear basket hold after booking")
	}

	period := fmt.Sprintf("%s to %s", start.Format(dateLayout), end.Format(dateLayout))
	go s.notifier.Notify(context.Background(), cUUID,
		"Rental Confirmed",
		fmt.Sprintf("Your rental of the flat at %s is confirmed for %s. Total cost: %.2f.",
			flat.Location, period, tenancy.TotalCost),
	)
	go s.notifier.Notify(context.Background(), flat.OwnerID,
		"Your Flat Has Been Rented",
		fmt.Sprintf("Your flat at %s has been rented for %s.", flat.Location, period),
	)

	return &dtos.BookRentalResponse{
		TenancyID: tenancy.ID,
		TotalCost: tenancy.TotalCost,
		Months:    months,
	}, nil
}

func parseRentalRange(startStr, endStr string) (time.Time, time.Time, error) {
	var fields []utils.FieldError

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		fields = append(fields, utils.FieldError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		fields = append(fields, utils.FieldError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &utils.ValidationError{Fields: fields}
	}

	if start.Before(utils.Today()) {
		fields = append(fields, utils.FieldError{Field: "start_date", Message: "must not be in the past"})
	}
	if !end.After(start) {
		fields = append(fields, utils.FieldError{Field: "end_date", Message: "must be after start_date"})
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &utils.ValidationError{Fields: fields}
	}
	return start, end, nil
}

// tokenizeCard wraps the card number in an opaque token. The raw number
// never reaches storage and there is no way back from the token.
func tokenizeCard(cardNumber string) string {
	sum := sha256.Sum256([]byte(cardNumber))
	return "tok_" + hex.EncodeToString(sum[:])
}

// ListByCustomer returns the customer's rental history, newest first,
// with a derived display phase alongside the stored status.
func (s *BookingService) ListByCustomer(ctx context.Context, customerID string) (*dtos.ListRentalsResponse, error) {
	cUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", err)
	}

	tenancies, err := s.tenancyRepo.ListByCustomer(ctx, cUUID)
	if err != nil {
		return nil, err
	}

	today := utils.Today()
	results := make([]dtos.RentalDTO, 0, len(tenancies))
	for _, t := range tenancies {
		dto := dtos.RentalDTO{
			TenancyID: t.ID,
			FlatID:    t.FlatID,
			StartDate: t.StartDate.Format(dateLayout),
			EndDate:   t.EndDate.Format(dateLayout),
			Status:    string(t.Status),
			Phase:     rentalPhase(t, today),
			TotalCost: t.TotalCost,
		}
		if flat, err := s.flatRepo.GetByID(ctx, t.FlatID); err == nil && flat != nil {
			dto.FlatReference = flat.FlatReference
			dto.Location = flat.Location
			dto.MonthlyCost = flat.MonthlyCost
		}
		results = append(results, dto)
	}
	return &dtos.ListRentalsResponse{Results: results, Total: len(results)}, nil
}

func rentalPhase(t *models.Tenancy, today time.Time) string {
	switch {
	case today.Before(t.StartDate):
		return "upcoming"
	case t.Covers(today):
		return "current"
	default:
		return "past"
	}
}
