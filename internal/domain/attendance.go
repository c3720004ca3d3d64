package domain

import "time"

// Known activity types. "Other" carries a custom activity name alongside.
const (
	ActivityTroopNight = "Troop Night"
	ActivityHike       = "Hike"
	ActivityCamp       = "Camp"
	ActivityCommunity  = "Community Service"
	ActivityOther      = "Other"
)

type AttendanceRecord struct {
	ID                 uint      `json:"id"`
	Date               time.Time `json:"date"`
	ActivityType       string    `json:"activity_type"`
	CustomActivityName string    `json:"custom_activity_name,omitempty"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	ScoutIDs           []uint    `json:"scout_ids"`
}

// DisplayActivity is the name shown for a record, resolving "Other" to its
// custom name.
func (r AttendanceRecord) DisplayActivity() string {
	if r.ActivityType == ActivityOther && r.CustomActivityName != "" {
		return r.CustomActivityName
	}

	return r.ActivityType
}
