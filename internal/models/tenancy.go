package models

import (
	"time"

	"github.com/google/uuid"
)

type TenancyStatusType string

const (
	TenancyStatusConfirmed TenancyStatusType = "CONFIRMED"
	TenancyStatusActive    TenancyStatusType = "ACTIVE"
	TenancyStatusCompleted TenancyStatusType = "COMPLETED"
	TenancyStatusCancelled TenancyStatusType = "CANCELLED"
)

// BlocksAvailability reports whether a tenancy in this status counts
// toward the no-overlap invariant.
func (s TenancyStatusType) BlocksAvailability() bool {
	return s == TenancyStatusConfirmed || s == TenancyStatusActive
}

// Tenancy is a binding rental of one flat over a date range. The range
// is immutable after creation; there is no reschedule operation.
type Tenancy struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	FlatID     uuid.UUID `json:"flat_id"`
	CustomerID uuid.UUID `json:"customer_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Status    TenancyStatusType `json:"status"`
	TotalCost float64           `json:"total_cost"`

	// Opaque token wrapping the card number; no settlement logic exists.
	PaymentToken string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenancy) GetID() string {
	return t.ID.String()
}

// Covers reports whether day falls inside the tenancy's closed interval.
func (t *Tenancy) Covers(day time.Time) bool {
	return !day.Before(t.StartDate) && !day.After(t.EndDate)
}
