package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

type fakePrincipalStore struct {
	users        map[uint]domain.User
	affiliations map[uint][]domain.Affiliation
}

func (f *fakePrincipalStore) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakePrincipalStore) FindFirstAffiliation(_ context.Context, userID uint) (domain.Affiliation, error) {
	affiliations := f.affiliations[userID]
	if len(affiliations) == 0 {
		return domain.Affiliation{}, repository.ErrAffiliationMissing
	}

	return affiliations[0], nil
}

func TestPrincipalService_Resolve(t *testing.T) {
	ctx := context.Background()

	store := &fakePrincipalStore{
		users: map[uint]domain.User{
			1: {ID: 1, Role: domain.RoleMember, Enabled: true},
			2: {ID: 2, Role: domain.RoleManager, Enabled: true},
			3: {ID: 3, Role: domain.RoleAdmin, Enabled: true},
			4: {ID: 4, Role: domain.RoleMember, Enabled: false},
			5: {ID: 5, Role: domain.RoleManager, Enabled: true},
		},
		affiliations: map[uint][]domain.Affiliation{
			2: {{ID: 10, UserID: 2, ClubID: 7}, {ID: 11, UserID: 2, ClubID: 8}},
			3: {{ID: 12, UserID: 3, ClubID: 9}},
		},
	}
	svc := NewPrincipalService(store)

	t.Run("member resolves without a managed club", func(t *testing.T) {
		principal, err := svc.Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, principal.Role)
		assert.Zero(t, principal.ManagedClubID)
	})

	t.Run("manager carries its first affiliation's club", func(t *testing.T) {
		principal, err := svc.Resolve(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, principal.Role)
		assert.Equal(t, uint(7), principal.ManagedClubID)
	})

	t.Run("admin carries its first affiliation's club", func(t *testing.T) {
		principal, err := svc.Resolve(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, uint(9), principal.ManagedClubID)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := svc.Resolve(ctx, 99)

		assert.ErrorIs(t, err, ErrIdentityNotFound)
	})

	t.Run("disabled account", func(t *testing.T) {
		_, err := svc.Resolve(ctx, 4)

		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("manager without affiliation resolves with zero scope", func(t *testing.T) {
		principal, err := svc.Resolve(ctx, 5)

		require.NoError(t, err)
		assert.Zero(t, principal.ManagedClubID)
	})
}
