package response

import "github.com/clubseats/clubseats-api/internal/domain"

// ReservationResponse is a reservation plus the QR payload printed for
// check-in.
type ReservationResponse struct {
	domain.Reservation
	QRPayload string `json:"qr_payload"`
}

func NewReservationResponse(r domain.Reservation) ReservationResponse {
	return ReservationResponse{
		Reservation: r,
		QRPayload:   r.QRPayload(),
	}
}

func NewReservationListResponse(reservations []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, NewReservationResponse(r))
	}

	return out
}
