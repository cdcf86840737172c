package dtos

import (
	"github.com/google/uuid"
)

type ClaimSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" validate:"required"`
}

/*
ClaimSlotResponse reports the claim outcome. Claimed=false is the normal
"someone got there first" answer, not an error.
*/
type ClaimSlotResponse struct {
	Claimed bool            `json:"claimed"`
	Slot    *ViewingSlotDTO `json:"slot,omitempty"`
}

type ViewingSlotDTO struct {
	SlotID        uuid.UUID  `json:"slot_id"`
	FlatID        uuid.UUID  `json:"flat_id"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	ContactNumber string     `json:"contact_number"`
	ClaimState    string     `json:"claim_state"`
	ClaimedBy     *uuid.UUID `json:"claimed_by,omitempty"`
}

type ListViewingSlotsResponse struct {
	Results []ViewingSlotDTO `json:"results"`
	Total   int              `json:"total"`
}
