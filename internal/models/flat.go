package models

import (
	"time"

	"github.com/google/uuid"
)

type FlatStatusType string

const (
	FlatStatusPendingReview FlatStatusType = "PENDING_REVIEW"
	FlatStatusApproved      FlatStatusType = "APPROVED"
	FlatStatusRejected      FlatStatusType = "REJECTED"
)

// Flat is a rentable listing. Rows are never deleted; a flat only ever
// moves through the approval state machine, and a rejected flat stays
// rejected (re-submission creates a new row).
type Flat struct {
	Versioned

	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	Location    string  `json:"location"`
	Address     string  `json:"address"`
	MonthlyCost float64 `json:"monthly_cost"`

	AvailableFrom time.Time `json:"available_from"`
	AvailableTo   time.Time `json:"available_to"`

	Bedrooms int     `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
	SizeSqm  float64 `json:"size_sqm"`
	Furnished bool   `json:"furnished"`

	HasHeating         bool `json:"has_heating"`
	HasAirConditioning bool `json:"has_air_conditioning"`
	HasAccessControl   bool `json:"has_access_control"`
	HasParking         bool `json:"has_parking"`
	HasPlayground      bool `json:"has_playground"`
	HasStorage         bool `json:"has_storage"`
	HasBackyard        bool `json:"has_backyard"`

	RentalConditions string `json:"rental_conditions"`
	PhotoCount       int    `json:"photo_count"`

	Status FlatStatusType `json:"status"`

	// Assigned exactly once, on first approval. Six digits, globally unique.
	FlatReference *string `json:"flat_reference,omitempty"`

	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ApprovedBy      *uuid.UUID `json:"approved_by,omitempty"`
	RejectedBy      *uuid.UUID `json:"rejected_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Flat) GetID() string {
	return f.ID.String()
}
