package model

import "time"

// Reminder represents a time-triggered reminder in the database.
// Delivered is monotonic: once a notification has been attempted it never
// reverts to false.
type Reminder struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	RemindAt    time.Time
	Delivered   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReminderRequest represents a reminder create/update request.
type ReminderRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RemindAt    time.Time `json:"remind_at"`
}

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	RemindAt    time.Time `json:"remind_at"`
	Delivered   bool      `json:"delivered"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReminderStats aggregates reminder counts for one user.
// TotalReminders is always pending + delivered.
type ReminderStats struct {
	TotalReminders     int64 `json:"total_reminders"`
	PendingReminders   int64 `json:"pending_reminders"`
	DeliveredReminders int64 `json:"delivered_reminders"`
}
