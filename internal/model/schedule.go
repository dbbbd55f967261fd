package model

import "time"

// Schedule represents a calendar entry in the database.
type Schedule struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduleRequest represents a schedule create/update request.
type ScheduleRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
}

// ScheduleResponse represents a schedule in API responses.
type ScheduleResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduleStats aggregates schedule counts for one user.
type ScheduleStats struct {
	TotalSchedules int64 `json:"total_schedules"`
	TodaySchedules int64 `json:"today_schedules"`
	WeekSchedules  int64 `json:"week_schedules"`
}
