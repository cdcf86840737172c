package dtos

import (
	"github.com/google/uuid"
)

/*
HoldFlatRequest saves a flat to the customer's basket, optionally with a
proposed rental period for the cost preview. Re-holding the same flat
updates the existing entry.
*/
type HoldFlatRequest struct {
	FlatID    uuid.UUID `json:"flat_id" validate:"required"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
}

type HoldFlatResponse struct {
	HoldID uuid.UUID `json:"hold_id"`
}

type BasketItemDTO struct {
	HoldID uuid.UUID `json:"hold_id"`
	FlatID uuid.UUID `json:"flat_id"`

	FlatReference *string `json:"flat_reference,omitempty"`
	Location      string  `json:"location"`
	MonthlyCost   float64 `json:"monthly_cost"`

	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// Present only when the hold carries a proposed period.
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
}

type ListBasketResponse struct {
	Items          []BasketItemDTO `json:"items"`
	TotalEstimated float64         `json:"total_estimated"`
}

/*
CheckoutHoldRequest converts a hold into a binding tenancy using the
period stored on the hold.
*/
type CheckoutHoldRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
}
