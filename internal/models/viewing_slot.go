package models

import (
	"time"

	"github.com/google/uuid"
)

type SlotClaimState string

const (
	SlotOpen    SlotClaimState = "OPEN"
	SlotClaimed SlotClaimState = "CLAIMED"
)

// ViewingSlot is one owner-offered time window for an in-person preview.
// Slots are created in bulk when a flat is submitted. OPEN -> CLAIMED is
// a one-way transition taken by exactly one customer; there is no
// release path.
type ViewingSlot struct {
	Versioned

	ID     uuid.UUID `json:"id"`
	FlatID uuid.UUID `json:"flat_id"`

	SlotDate      time.Time `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
	ContactNumber string    `json:"contact_number"`

	ClaimState SlotClaimState `json:"claim_state"`
	ClaimedBy  *uuid.UUID     `json:"claimed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ViewingSlot) GetID() string {
	return s.ID.String()
}
