package models

// AssigneeWorkload is one row of the dashboard workload leaderboard.
type AssigneeWorkload struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	Count  int      `json:"count"`
}

// DashboardStats is the aggregate payload behind the dashboard endpoint.
type DashboardStats struct {
	StatusDistribution   map[JobStatus]int   `json:"status_distribution"`
	PriorityDistribution map[JobPriority]int `json:"priority_distribution"`
	ActiveJobs           int                 `json:"active_jobs"`
	CompletedJobs        int                 `json:"completed_jobs"`
	CancelledJobs        int                 `json:"cancelled_jobs"`
	OverdueJobs          int                 `json:"overdue_jobs"`
	DueSoonJobs          int                 `json:"due_soon_jobs"`
	TopWorkloads         []AssigneeWorkload  `json:"top_workloads"`
}
