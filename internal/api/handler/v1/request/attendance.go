package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/tobscouts/troop-api/internal/domain"
)

var (
	errMissingCustomActivity = errors.New("custom_activity_name is required when activity_type is Other")
	errNoAttendees           = errors.New("scout_ids must contain at least one scout")
)

var activityTypes = []any{
	domain.ActivityTroopNight,
	domain.ActivityHike,
	domain.ActivityCamp,
	domain.ActivityCommunity,
	domain.ActivityOther,
}

type CreateAttendanceRequest struct {
	Date               string `json:"date"`
	ActivityType       string `json:"activity_type"`
	CustomActivityName string `json:"custom_activity_name"`
	ScoutIDs           []uint `json:"scout_ids"`
}

func (req *CreateAttendanceRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.ActivityType, validation.Required, validation.In(activityTypes...)),
	); err != nil {
		return err
	}

	if req.ActivityType == domain.ActivityOther && req.CustomActivityName == "" {
		return errMissingCustomActivity
	}

	if len(req.ScoutIDs) == 0 {
		return errNoAttendees
	}

	return nil
}

// ParsedDate is only safe after Validate.
func (req *CreateAttendanceRequest) ParsedDate() time.Time {
	date, _ := time.Parse("2006-01-02", req.Date)

	return date
}

type UpdateAttendanceRequest struct {
	CreateAttendanceRequest
}
