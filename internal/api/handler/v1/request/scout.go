package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/tobscouts/troop-api/internal/domain"
)

// AddScoutRequest is the scout-management variant of the invite body.
type AddScoutRequest struct {
	Email        string             `json:"email"`
	UserMetadata InviteUserMetadata `json:"user_metadata"`
}

func (req *AddScoutRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	); err != nil {
		return err
	}

	// Scout management only provisions scouts; a missing role defaults to
	// scout in the handler.
	return validation.ValidateStruct(
		&req.UserMetadata,
		validation.Field(&req.UserMetadata.UserRole, validation.In(domain.RoleScout)),
	)
}

type UpdateScoutRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Rank     string `json:"rank"`
	Crew     string `json:"crew"`
}

func (req *UpdateScoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Rank, validation.Required),
		validation.Field(&req.Crew, validation.Required),
	)
}

type PromoteLeaderRequest struct {
	UserID string `json:"userId"`
}

func (req *PromoteLeaderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, is.UUIDv4),
	)
}
