package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
)

/*
   AvailabilityService answers the two read-side questions around the
   no-overlap invariant. Answers are advisory snapshots only: the
   authoritative check re-runs inside the booking transaction, so a
   "bookable" answer here can still lose to a concurrent booking.
*/
type AvailabilityService struct {
	flatRepo    repositories.FlatRepository
	tenancyRepo repositories.TenancyRepository
}

func NewAvailabilityService(
	flatRepo repositories.FlatRepository,
	tenancyRepo repositories.TenancyRepository,
) *AvailabilityService {
	return &AvailabilityService{flatRepo: flatRepo, tenancyRepo: tenancyRepo}
}

// IsBookable reports whether [start, end] could currently be booked:
// the flat is APPROVED and no CONFIRMED/ACTIVE tenancy intersects the
// range.
func (s *AvailabilityService) IsBookable(ctx context.Context, flatID uuid.UUID, start, end time.Time) (bool, error) {
	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		return false, err
	}
	if flat == nil || flat.Status != models.FlatStatusApproved {
		return false, nil
	}

	overlapping, err := s.tenancyRepo.HasBlockingOverlap(ctx, flatID, start, end)
	if err != nil {
		return false, err
	}
	return !overlapping, nil
}

// Overlaps reports whether any blocking tenancy intersects [start, end].
// Unlike IsBookable it ignores the flat's approval state.
func (s *AvailabilityService) Overlaps(ctx context.Context, flatID uuid.UUID, start, end time.Time) (bool, error) {
	return s.tenancyRepo.HasBlockingOverlap(ctx, flatID, start, end)
}

// IsOccupiedOn reports whether a blocking tenancy covers the given day.
func (s *AvailabilityService) IsOccupiedOn(ctx context.Context, flatID uuid.UUID, day time.Time) (bool, error) {
	return s.tenancyRepo.ExistsCoveringDay(ctx, flatID, day)
}
