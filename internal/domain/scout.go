package domain

import "time"

type Scout struct {
	ID        uint      `json:"id"`
	AccountID string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Rank      string    `json:"rank"`
	Crew      string    `json:"crew"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// History entry change types.
const (
	ChangeTypeRank = "rank_change"
	ChangeTypeCrew = "crew_change"
)

// ScoutHistoryEntry is an append-only audit record of a rank or crew change.
type ScoutHistoryEntry struct {
	ID         uint      `json:"id"`
	ScoutID    uint      `json:"scout_id"`
	ChangeType string    `json:"change_type"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	ChangedAt  time.Time `json:"changed_at"`
}

// ScoutProfile is the detailed view a leader sees: the profile row plus its
// audit trail and earned badges.
type ScoutProfile struct {
	Scout   Scout               `json:"scout"`
	History []ScoutHistoryEntry `json:"history"`
	Badges  []BadgeAward        `json:"badges"`
}
