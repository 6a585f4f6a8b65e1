package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateClubRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type PromoteManagerRequest struct {
	UserID uint `json:"user_id"`
}

func (req *PromoteManagerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
	)
}
