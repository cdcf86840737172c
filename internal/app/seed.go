package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

// Fixed IDs so repeated seeding and manual testing stay predictable.
var (
	SeedManagerID  = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	SeedOwnerID    = uuid.MustParse("00000000-0000-4000-8000-000000000002")
	SeedCustomerID = uuid.MustParse("00000000-0000-4000-8000-000000000003")
)

// SeedTestData inserts a minimal fixture set: one user per role and a
// pending flat with viewing slots, ready for the review workflow.
// Existing rows are left alone, so seeding twice is harmless.
func SeedTestData(
	ctx context.Context,
	userRepo repositories.UserRepository,
	flatRepo repositories.FlatRepository,
	slotRepo repositories.ViewingSlotRepository,
) error {
	users := []*models.User{
		{ID: SeedManagerID, Role: models.RoleManager, Name: "Seed Manager", Email: "manager@example.com"},
		{ID: SeedOwnerID, Role: models.RoleOwner, Name: "Seed Owner", Email: "owner@example.com"},
		{ID: SeedCustomerID, Role: models.RoleCustomer, Name: "Seed Customer", Email: "customer@example.com"},
	}
	for _, u := range users {
		existing, err := userRepo.GetByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := userRepo.Create(ctx, u); err != nil {
			return err
		}
	}

	flatID := uuid.MustParse("00000000-0000-4000-8000-000000000010")
	existing, err := flatRepo.GetByID(ctx, flatID)
	if err != nil {
		return err
	}
	if existing != nil {
		utils.Logger.Info("Seed flat already present, skipping")
		return nil
	}

	today := utils.Today()
	flat := &models.Flat{
		ID:            flatID,
		OwnerID:       SeedOwnerID,
		Location:      "Ramallah",
		Address:       "12 Al-Tireh Street",
		MonthlyCost:   650,
		AvailableFrom: today,
		AvailableTo:   today.AddDate(1, 0, 0),
		Bedrooms:      2,
		Bathrooms:     1,
		SizeSqm:       95,
		Furnished:     true,
		HasHeating:    true,
		HasParking:    true,
		PhotoCount:    4,
		Status:        models.FlatStatusPendingReview,
	}
	if err := flatRepo.Create(ctx, flat); err != nil {
		return err
	}

	slots := []*models.ViewingSlot{
		{
			ID:            uuid.New(),
			FlatID:        flatID,
			SlotDate:      today.Add(72 * time.Hour),
			SlotTime:      "10:00",
			ContactNumber: "0591234567",
			ClaimState:    models.SlotOpen,
		},
		{
			ID:            uuid.New(),
			FlatID:        flatID,
			SlotDate:      today.Add(96 * time.Hour),
			SlotTime:      "16:30",
			ContactNumber: "0591234567",
			ClaimState:    models.SlotOpen,
		},
	}
	return slotRepo.CreateBulk(ctx, slots)
}
