package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

/*
   Notifier is the sink the reservation engine reports into. It is
   fire-and-forget: implementations log failures and never propagate
   them, so a broken mail provider can never roll back a booking.
*/
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, body string)
}

type NotifyService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository

	sendgridClient *sendgrid.Client
	fromEmail      string
}

// NewNotifyService builds the notification sink. sendgridClient may be
// nil, in which case only the in-app message leg is written.
func NewNotifyService(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	sendgridClient *sendgrid.Client,
	fromEmail string,
) *NotifyService {
	return &NotifyService{
		notifRepo:      notifRepo,
		userRepo:       userRepo,
		sendgridClient: sendgridClient,
		fromEmail:      fromEmail,
	}
}

func (s *NotifyService) Notify(ctx context.Context, userID uuid.UUID, title, body string) {
	n := &models.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Body:       body,
		SenderType: models.SenderSystem,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to store notification for user %s", userID)
	}

	if s.sendgridClient == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil || user.Email == "" {
		utils.Logger.Warnf("Skipping notification email for user %s: no address", userID)
		return
	}

	from := mail.NewEmail("Flat Rentals", s.fromEmail)
	to := mail.NewEmail(user.Name, user.Email)
	msg := mail.NewSingleEmail(from, title, to, body, "")
	if _, err := s.sendgridClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send notification email to user %s", userID)
	}
}

func (s *NotifyService) ListForUser(ctx context.Context, userID string) (*dtos.ListNotificationsResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewValidationError("user_id", "must be a valid UUID")
	}

	notifs, err := s.notifRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	results := make([]dtos.NotificationDTO, 0, len(notifs))
	for _, n := range notifs {
		results = append(results, dtos.NotificationDTO{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return &dtos.ListNotificationsResponse{Results: results, Total: len(results)}, nil
}

func (s *NotifyService) MarkRead(ctx context.Context, userID string, notificationID uuid.UUID) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return utils.NewValidationError("user_id", "must be a valid UUID")
	}
	return s.notifRepo.MarkRead(ctx, notificationID, uid)
}
