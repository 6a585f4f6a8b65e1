package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEventEndsBeforeStart = errors.New("event must end after it starts")

type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.EndsAt.After(req.StartsAt) {
		return errEventEndsBeforeStart
	}

	return nil
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Capacity, validation.NotNil, validation.Min(0)),
	)
}

type SetCategoryCapacityRequest struct {
	// Pointer so zero is both representable and required-checkable.
	Capacity *int `json:"capacity"`
}

func (req *SetCategoryCapacityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Capacity, validation.NotNil, validation.Min(0)),
	)
}
