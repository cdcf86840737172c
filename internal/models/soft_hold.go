package models

import (
	"time"

	"github.com/google/uuid"
)

// SoftHold is a non-binding basket entry: a customer saving a flat,
// optionally with a proposed rental range, for a later cost preview.
// Holds are never consulted for overlap enforcement and several
// customers may hold the same flat at once.
type SoftHold struct {
	ID         uuid.UUID `json:"id"`
	FlatID     uuid.UUID `json:"flat_id"`
	CustomerID uuid.UUID `json:"customer_id"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HasRange reports whether the hold carries a proposed rental period.
func (h *SoftHold) HasRange() bool {
	return h.StartDate != nil && h.EndDate != nil
}
