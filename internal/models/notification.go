package models

import (
	"time"

	"github.com/google/uuid"
)

type SenderType string

const (
	SenderSystem  SenderType = "system"
	SenderManager SenderType = "manager"
)

// Notification is the in-app message leg of the notification sink.
type Notification struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	Title string `json:"title"`
	Body  string `json:"body"`

	SenderType SenderType `json:"sender_type"`
	IsRead     bool       `json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
