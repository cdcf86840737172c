package services

import (
	"context"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

/*
   TenancySchedulerService runs the nightly roll-over: tenancies whose
   range has begun move CONFIRMED -> ACTIVE, and tenancies whose range
   has ended move to COMPLETED. Both updates are idempotent, so a missed
   night heals on the next run.
*/
type TenancySchedulerService struct {
	tenancyRepo repositories.TenancyRepository
}

func NewTenancySchedulerService(tenancyRepo repositories.TenancyRepository) *TenancySchedulerService {
	return &TenancySchedulerService{tenancyRepo: tenancyRepo}
}

func (s *TenancySchedulerService) RunDailyRollover(ctx context.Context) error {
	today := utils.Today()

	// Completion runs first so a tenancy that both started and ended
	// while the scheduler was down goes straight to COMPLETED.
	completed, err := s.tenancyRepo.CompleteExpired(ctx, today)
	if err != nil {
		utils.Logger.WithError(err).Error("tenancy roll-over: completing expired tenancies failed")
		return err
	}

	activated, err := s.tenancyRepo.ActivateDue(ctx, today)
	if err != nil {
		utils.Logger.WithError(err).Error("tenancy roll-over: activating due tenancies failed")
		return err
	}

	utils.Logger.
		WithField("activated", activated).
		WithField("completed", completed).
		Info("tenancy roll-over finished")
	return nil
}
