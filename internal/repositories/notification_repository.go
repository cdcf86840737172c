package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO notifications (
            id, user_id, title, body, sender_type, is_read, created_at
        ) VALUES ($1,$2,$3,$4,$5,FALSE,NOW())
    `,
		n.ID,
		n.UserID,
		n.Title,
		n.Body,
		n.SenderType,
	)
	return err
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, title, body, sender_type, is_read, created_at
        FROM notifications
        WHERE user_id=$1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Body,
		&n.SenderType,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE notifications SET is_read=TRUE
        WHERE id=$1 AND user_id=$2
    `, notificationID, userID)
	return err
}
