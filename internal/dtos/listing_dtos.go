package dtos

import (
	"time"

	"github.com/google/uuid"
)

/*
ViewingSlotDraft is one proposed preview window inside a submission.
Contact numbers keep the legacy mobile format: 05 followed by 8 digits.
*/
type ViewingSlotDraft struct {
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

/*
SubmitFlatRequest is the strongly typed draft a page handler sends when
an owner offers a flat. All multi-step accumulation happens client-side;
the core sees one complete draft.
*/
type SubmitFlatRequest struct {
	Location    string  `json:"location" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	MonthlyCost float64 `json:"monthly_cost" validate:"required"`

	AvailableFrom string `json:"available_from" validate:"required"`
	AvailableTo   string `json:"available_to" validate:"required"`

	Bedrooms  int     `json:"bedrooms" validate:"min=0"`
	Bathrooms int     `json:"bathrooms" validate:"min=0"`
	SizeSqm   float64 `json:"size_sqm" validate:"min=0"`
	Furnished bool    `json:"furnished"`

	HasHeating         bool `json:"has_heating"`
	HasAirConditioning bool `json:"has_air_conditioning"`
	HasAccessControl   bool `json:"has_access_control"`
	HasParking         bool `json:"has_parking"`
	HasPlayground      bool `json:"has_playground"`
	HasStorage         bool `json:"has_storage"`
	HasBackyard        bool `json:"has_backyard"`

	RentalConditions string `json:"rental_conditions"`

	// Photo uploads live outside the core; the handler reports how many
	// were attached so the draft can be bounds-checked.
	PhotoCount int `json:"photo_count"`

	ViewingSlots []ViewingSlotDraft `json:"viewing_slots"`
}

type SubmitFlatResponse struct {
	FlatID uuid.UUID `json:"flat_id"`
	Status string    `json:"status"`
}

type ApproveFlatRequest struct {
	FlatID uuid.UUID `json:"flat_id" validate:"required"`
}

type ApproveFlatResponse struct {
	FlatID        uuid.UUID `json:"flat_id"`
	FlatReference string    `json:"flat_reference"`
}

type RejectFlatRequest struct {
	FlatID uuid.UUID `json:"flat_id" validate:"required"`
	Reason string    `json:"reason"`
}

/*
FlatDTO is the listing shape returned to owners and managers.
*/
type FlatDTO struct {
	FlatID        uuid.UUID `json:"flat_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Location      string    `json:"location"`
	Address       string    `json:"address"`
	MonthlyCost   float64   `json:"monthly_cost"`
	AvailableFrom string    `json:"available_from"`
	AvailableTo   string    `json:"available_to"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	SizeSqm       float64   `json:"size_sqm"`
	Furnished     bool      `json:"furnished"`

	Status          string  `json:"status"`
	FlatReference   *string `json:"flat_reference,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	PhotoCount      int     `json:"photo_count"`

	CreatedAt time.Time `json:"created_at"`
}

type ListFlatsResponse struct {
	Results []FlatDTO `json:"results"`
	Total   int       `json:"total"`
}
