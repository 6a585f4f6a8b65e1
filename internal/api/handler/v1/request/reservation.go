package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateReservationRequest struct {
	EventID    uint `json:"event_id"`
	CategoryID uint `json:"category_id"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

type CheckInRequest struct {
	Token string `json:"token"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required),
	)
}

// NormalizedToken strips the "uuid:" prefix scanners read off the printed
// QR payload.
func (req *CheckInRequest) NormalizedToken() string {
	return strings.TrimPrefix(req.Token, "uuid:")
}
