package model

// DashboardSummary holds the per-entity counters shown on the today dashboard.
type DashboardSummary struct {
	TaskStats
	ScheduleStats
	ReminderStats
}

// DashboardResponse is the today view: summary counters plus today's items.
type DashboardResponse struct {
	Date      string             `json:"date"`
	Summary   DashboardSummary   `json:"summary"`
	Tasks     []TaskResponse     `json:"tasks"`
	Schedules []ScheduleResponse `json:"schedules"`
	Reminders []ReminderResponse `json:"reminders"`
}

// DayData is one day bucket of the weekly dashboard.
type DayData struct {
	Date          string             `json:"date"`
	TaskCount     int                `json:"task_count"`
	ScheduleCount int                `json:"schedule_count"`
	ReminderCount int                `json:"reminder_count"`
	Tasks         []TaskResponse     `json:"tasks"`
	Schedules     []ScheduleResponse `json:"schedules"`
	Reminders     []ReminderResponse `json:"reminders"`
}

// WeeklySummary totals the weekly dashboard items.
type WeeklySummary struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	TotalSchedules int `json:"total_schedules"`
	TotalReminders int `json:"total_reminders"`
}

// WeeklyDashboardResponse is the week view: seven day buckets plus a summary.
type WeeklyDashboardResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []DayData     `json:"days"`
	Summary   WeeklySummary `json:"summary"`
}

// OverallStats is the cross-entity completion block of the stats view.
type OverallStats struct {
	TotalItems     int64   `json:"total_items"`
	CompletedItems int64   `json:"completed_items"`
	PendingItems   int64   `json:"pending_items"`
	CompletionRate float64 `json:"completion_rate"`
}

// ProductivityStatsResponse is the full stats view.
type ProductivityStatsResponse struct {
	TaskStats     TaskStats     `json:"task_stats"`
	ScheduleStats ScheduleStats `json:"schedule_stats"`
	ReminderStats ReminderStats `json:"reminder_stats"`
	OverallStats  OverallStats  `json:"overall_stats"`
}
