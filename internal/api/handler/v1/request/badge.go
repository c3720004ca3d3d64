package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/tobscouts/troop-api/internal/domain"
)

type CreateBadgeRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	BadgeType    string `json:"badge_type"`
	Requirements string `json:"requirements"`
}

func (req *CreateBadgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.BadgeType, validation.Required,
			validation.In(domain.BadgeTypeProficiency, domain.BadgeTypeActivity, domain.BadgeTypeSpecial)),
	)
}

type UpdateBadgeRequest struct {
	CreateBadgeRequest
}

type AwardBadgeRequest struct {
	ScoutID            uint   `json:"scout_id"`
	BadgeID            uint   `json:"badge_id"`
	DateEarned         string `json:"date_earned"`
	PhysicallyObtained bool   `json:"physically_obtained"`
}

func (req *AwardBadgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ScoutID, validation.Required),
		validation.Field(&req.BadgeID, validation.Required),
		validation.Field(&req.DateEarned, validation.Required, validation.Date("2006-01-02")),
	)
}

// ParsedDateEarned is only safe after Validate.
func (req *AwardBadgeRequest) ParsedDateEarned() time.Time {
	date, _ := time.Parse("2006-01-02", req.DateEarned)

	return date
}
