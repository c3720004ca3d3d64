package domain

// TroopSummary aggregates headline counts for the statistics page.
type TroopSummary struct {
	TotalScouts     int64 `json:"total_scouts"`
	TotalLeaders    int64 `json:"total_leaders"`
	TotalBadges     int64 `json:"total_badges"`
	EarnedBadges    int64 `json:"earned_badges"`
	ActiveNotices   int64 `json:"active_notices"`
	TotalActivities int64 `json:"total_activities"`
}

// ScoutAttendanceRate is one scout's attendance across recorded activities.
type ScoutAttendanceRate struct {
	ScoutID  uint    `json:"scout_id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email,omitempty"`
	Attended int64   `json:"attended"`
	Total    int64   `json:"total"`
	Percent  float64 `json:"percent"`
}
