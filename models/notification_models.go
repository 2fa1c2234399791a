package models

import "time"

// Notification is one in-app notification row; dispatch to external channels
// happens through the message queue, not here
type Notification struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Body        string    `json:"body" db:"body"`
	ReferenceID string    `json:"reference_id,omitempty" db:"reference_id"`
	ActionURL   string    `json:"action_url,omitempty" db:"action_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
