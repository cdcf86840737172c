package dtos

import (
	"github.com/google/uuid"
)

/*
BookRentalRequest creates a binding tenancy. The card number is kept
only as an opaque token; no settlement happens in this service.
*/
type BookRentalRequest struct {
	FlatID     uuid.UUID `json:"flat_id" validate:"required"`
	StartDate  string    `json:"start_date" validate:"required"`
	EndDate    string    `json:"end_date" validate:"required"`
	CardNumber string    `json:"card_number" validate:"required"`
}

type BookRentalResponse struct {
	TenancyID uuid.UUID `json:"tenancy_id"`
	TotalCost float64   `json:"total_cost"`
	Months    int       `json:"months"`
}

/*
RentalDTO is one tenancy in the customer's my-rentals view. Phase is a
derived display hint (upcoming/current/past), distinct from the stored
lifecycle status.
*/
type RentalDTO struct {
	TenancyID uuid.UUID `json:"tenancy_id"`
	FlatID    uuid.UUID `json:"flat_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	Phase     string    `json:"phase"`
	TotalCost float64   `json:"total_cost"`

	FlatReference *string `json:"flat_reference,omitempty"`
	Location      string  `json:"location,omitempty"`
	MonthlyCost   float64 `json:"monthly_cost,omitempty"`
}

type ListRentalsResponse struct {
	Results []RentalDTO `json:"results"`
	Total   int         `json:"total"`
}

type AvailabilityResponse struct {
	FlatID   uuid.UUID `json:"flat_id"`
	Bookable bool      `json:"bookable"`
}

type OverlapQueryResponse struct {
	FlatID   uuid.UUID `json:"flat_id"`
	Overlaps bool      `json:"overlaps"`
}
