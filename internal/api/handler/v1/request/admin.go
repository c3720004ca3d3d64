package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dlclark/regexp2"

	"github.com/tobscouts/troop-api/internal/domain"
)

// Lookahead pattern, so dlclark/regexp2 instead of the stdlib engine.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain a letter and a number")
)

// InviteUserMetadata mirrors the identity provider's user_metadata shape.
type InviteUserMetadata struct {
	UserRole string `json:"userrole"`
	Name     string `json:"name"`
	Rank     string `json:"rank"`
	Crew     string `json:"crew"`
}

type InviteUserRequest struct {
	Email        string             `json:"email"`
	UserMetadata InviteUserMetadata `json:"user_metadata"`
}

func (req *InviteUserRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(
		&req.UserMetadata,
		validation.Field(&req.UserMetadata.UserRole, validation.Required, validation.In(domain.RoleScout, domain.RoleLeader)),
	)
}

type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

func (req *DeleteUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, is.UUIDv4),
	)
}

type ConfirmUserEmailRequest struct {
	UserID string `json:"userId"`
}

func (req *ConfirmUserEmailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, is.UUIDv4),
	)
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *SignInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (req *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (req *UpdatePasswordRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.NewPassword, validation.Required),
	); err != nil {
		return err
	}

	ok, err := passwordExp.MatchString(req.NewPassword)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
