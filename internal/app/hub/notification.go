package hub

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is an ad-hoc announcement pushed by an admin to every
// connected client. Unlike messages it never enters the rolling history.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNotification builds a notification record with a fresh id.
func NewNotification(title, text string) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
}
