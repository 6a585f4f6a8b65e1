package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "jo@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Jo",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{"valid", func(r *SignupRequest) {}, false},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, true},
		{"malformed email", func(r *SignupRequest) { r.Email = "not-an-email" }, true},
		{"short password", func(r *SignupRequest) { r.Password = "pw1"; r.ConfirmPassword = "pw1" }, true},
		{"password without digits", func(r *SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }, true},
		{"password without letters", func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }, true},
		{"confirmation mismatch", func(r *SignupRequest) { r.ConfirmPassword = "password2" }, true},
		{"missing name", func(r *SignupRequest) { r.Name = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateEventRequest_Validate(t *testing.T) {
	now := time.Now()

	valid := CreateEventRequest{
		Name:     "season opener",
		StartsAt: now,
		EndsAt:   now.Add(2 * time.Hour),
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("ends before it starts", func(t *testing.T) {
		req := valid
		req.EndsAt = now.Add(-time.Hour)
		assert.ErrorIs(t, req.Validate(), errEventEndsBeforeStart)
	})

	t.Run("zero-length event", func(t *testing.T) {
		req := valid
		req.EndsAt = req.StartsAt
		assert.ErrorIs(t, req.Validate(), errEventEndsBeforeStart)
	})
}

func TestCreateCategoryRequest_Validate(t *testing.T) {
	capacity := func(n int) *int { return &n }

	t.Run("valid", func(t *testing.T) {
		req := CreateCategoryRequest{Name: "front row", Capacity: capacity(10)}
		assert.NoError(t, req.Validate())
	})

	t.Run("zero capacity is allowed", func(t *testing.T) {
		req := CreateCategoryRequest{Name: "front row", Capacity: capacity(0)}
		assert.NoError(t, req.Validate())
	})

	t.Run("negative capacity", func(t *testing.T) {
		req := CreateCategoryRequest{Name: "front row", Capacity: capacity(-1)}
		assert.Error(t, req.Validate())
	})

	t.Run("capacity is required", func(t *testing.T) {
		req := CreateCategoryRequest{Name: "front row"}
		assert.Error(t, req.Validate())
	})
}

func TestCheckInRequest_NormalizedToken(t *testing.T) {
	req := CheckInRequest{Token: "uuid:6e8bc430-9c3a-11d9-9669-0800200c9a66"}
	assert.Equal(t, "6e8bc430-9c3a-11d9-9669-0800200c9a66", req.NormalizedToken())

	bare := CheckInRequest{Token: "6e8bc430-9c3a-11d9-9669-0800200c9a66"}
	assert.Equal(t, "6e8bc430-9c3a-11d9-9669-0800200c9a66", bare.NormalizedToken())
}
