package domain

import "time"

const (
	BadgeTypeProficiency = "Proficiency"
	BadgeTypeActivity    = "Activity"
	BadgeTypeSpecial     = "Special"
)

type Badge struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	BadgeType    string    `json:"badge_type"`
	Requirements string    `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
}

// BadgeAward links a scout to a badge they earned.
type BadgeAward struct {
	ID                 uint      `json:"id"`
	ScoutID            uint      `json:"scout_id"`
	BadgeID            uint      `json:"badge_id"`
	DateEarned         time.Time `json:"date_earned"`
	PhysicallyObtained bool      `json:"physically_obtained"`
	AwardedBy          string    `json:"awarded_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	Badge              *Badge    `json:"badge,omitempty"`
}
