package model

import "time"

// Notification is an admin facing message.
type Notification struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Shown     bool      `json:"shown"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
