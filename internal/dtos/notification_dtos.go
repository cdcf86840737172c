package dtos

import (
	"time"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListNotificationsResponse struct {
	Results []NotificationDTO `json:"results"`
	Total   int               `json:"total"`
}

type MarkNotificationReadRequest struct {
	NotificationID uuid.UUID `json:"notification_id" validate:"required"`
}
