package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, ReservationConfirmed.IsTerminal())
	assert.True(t, ReservationCancelled.IsTerminal())
	assert.True(t, ReservationUsed.IsTerminal())
}

func TestReservation_QRPayload(t *testing.T) {
	withToken := Reservation{Token: "6e8bc430-9c3a-11d9-9669-0800200c9a66"}
	assert.Equal(t, "uuid:6e8bc430-9c3a-11d9-9669-0800200c9a66", withToken.QRPayload())

	assert.Equal(t, "error:uuid-missing", Reservation{}.QRPayload())
}

func TestRole_IsManagerial(t *testing.T) {
	assert.False(t, RoleMember.IsManagerial())
	assert.True(t, RoleManager.IsManagerial())
	assert.True(t, RoleAdmin.IsManagerial())
}

func TestAccessDeniedError_MatchesMarker(t *testing.T) {
	err := AccessDenied("no entry")

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, err.Error(), "no entry")
}
