package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateNoticeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (req *CreateNoticeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	)
}

type UpdateNoticeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (req *UpdateNoticeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Active, validation.NotNil),
	)
}
