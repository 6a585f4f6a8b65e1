package domain

import "time"

type ReservationStatus string

const (
	// ReservationConfirmed is the only non-terminal status.
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationUsed      ReservationStatus = "USED"
)

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCancelled || s == ReservationUsed
}

type Reservation struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	EventID    uint              `json:"event_id"`
	CategoryID uint              `json:"category_id"`
	Status     ReservationStatus `json:"status"`

	// Token is the opaque identifier presented at check-in. It is a random
	// UUID so creation order cannot be inferred from it.
	Token string `json:"token"`

	// ClubID is the organizing club, denormalized from the event so that
	// manager checks need no extra fetch.
	ClubID uint `json:"club_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QRPayload renders the token in the form printed as a QR code. A missing
// token degrades to a fixed literal instead of failing.
func (r Reservation) QRPayload() string {
	if r.Token == "" {
		return "error:uuid-missing"
	}

	return "uuid:" + r.Token
}
