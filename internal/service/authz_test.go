package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubseats/clubseats-api/internal/domain"
)

func TestAuthzService_IsOwner(t *testing.T) {
	svc := NewAuthzService(newFakeStore())

	assert.True(t, svc.IsOwner(member(1), 1))
	assert.False(t, svc.IsOwner(member(1), 2))
	assert.False(t, svc.IsOwner(domain.Principal{}, 0))
}

func TestAuthzService_MembershipPredicates(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addMember(1, 1, domain.RoleMember)
	store.addMember(2, 1, domain.RoleManager)
	store.addMember(3, 1, domain.RoleAdmin)
	store.addMember(4, 2, domain.RoleManager)
	svc := NewAuthzService(store)

	admin := domain.Principal{ID: 3, Role: domain.RoleAdmin, Enabled: true, ManagedClubID: 1}

	tests := []struct {
		name      string
		principal domain.Principal
		clubID    uint
		isMember  bool
		isManager bool
		isAdmin   bool
	}{
		{
			name:      "member of the club",
			principal: member(1),
			clubID:    1,
			isMember:  true,
		},
		{
			name:      "manager of the club",
			principal: manager(2, 1),
			clubID:    1,
			isMember:  true,
			isManager: true,
		},
		{
			name:      "admin of the club",
			principal: admin,
			clubID:    1,
			isMember:  true,
			isManager: true,
			isAdmin:   true,
		},
		{
			name:      "manager of a different club",
			principal: manager(4, 2),
			clubID:    1,
		},
		{
			name:      "manager without a managed club fails closed",
			principal: domain.Principal{ID: 2, Role: domain.RoleManager, Enabled: true},
			clubID:    1,
			isMember:  true,
		},
		{
			name:      "unaffiliated user",
			principal: member(99),
			clubID:    1,
		},
		{
			name:      "zero principal",
			principal: domain.Principal{},
			clubID:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isMember, err := svc.IsClubMember(ctx, tt.principal, tt.clubID)
			require.NoError(t, err)
			assert.Equal(t, tt.isMember, isMember)

			isManager, err := svc.IsClubManager(ctx, tt.principal, tt.clubID)
			require.NoError(t, err)
			assert.Equal(t, tt.isManager, isManager)

			isAdmin, err := svc.IsClubAdmin(ctx, tt.principal, tt.clubID)
			require.NoError(t, err)
			assert.Equal(t, tt.isAdmin, isAdmin)
		})
	}
}

// A manager predicate can only narrow when the club changes, never widen:
// holding a role in one club grants nothing in another.
func TestAuthzService_ManagerScopeDoesNotCross(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addMember(2, 1, domain.RoleManager)
	store.addMember(2, 2, domain.RoleManager)
	svc := NewAuthzService(store)

	// Even affiliated with both clubs, the principal manages only the one
	// its scope points at.
	ok, err := svc.IsClubManager(ctx, manager(2, 1), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsClubManager(ctx, manager(2, 1), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthzService_RoleMismatchBetweenSnapshotAndStore(t *testing.T) {
	ctx := context.Background()

	// The snapshot claims MANAGER but the store says MEMBER; committed
	// state wins.
	store := newFakeStore()
	store.addMember(2, 1, domain.RoleMember)
	svc := NewAuthzService(store)

	ok, err := svc.IsClubManager(ctx, manager(2, 1), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthzService_RequireVariants(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addMember(1, 1, domain.RoleMember)
	svc := NewAuthzService(store)

	t.Run("zero principal is unauthenticated everywhere", func(t *testing.T) {
		zero := domain.Principal{}

		assert.ErrorIs(t, svc.RequireOwner(zero, 1), domain.ErrUnauthenticated)
		assert.ErrorIs(t, svc.RequireClubMember(ctx, zero, 1), domain.ErrUnauthenticated)
		assert.ErrorIs(t, svc.RequireClubManager(ctx, zero, 1), domain.ErrUnauthenticated)
		assert.ErrorIs(t, svc.RequireClubAdmin(ctx, zero, 1), domain.ErrUnauthenticated)
		assert.ErrorIs(t, svc.RequireActOnReservation(ctx, zero, domain.Reservation{}), domain.ErrUnauthenticated)
	})

	t.Run("denials carry a reason and match the marker", func(t *testing.T) {
		err := svc.RequireClubManager(ctx, member(1), 1)

		require.ErrorIs(t, err, domain.ErrAccessDenied)

		var denied *domain.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.NotEmpty(t, denied.Reason)
	})

	t.Run("satisfied requirement returns nil", func(t *testing.T) {
		assert.NoError(t, svc.RequireClubMember(ctx, member(1), 1))
		assert.NoError(t, svc.RequireOwner(member(1), 1))
	})
}

func TestAuthzService_CanActOnReservation(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addMember(1, 1, domain.RoleMember)
	store.addMember(2, 1, domain.RoleMember)
	store.addMember(9, 1, domain.RoleManager)
	svc := NewAuthzService(store)

	reservation := domain.Reservation{ID: 7, UserID: 1, ClubID: 1}

	tests := []struct {
		name      string
		principal domain.Principal
		want      bool
	}{
		{"owner", member(1), true},
		{"club manager", manager(9, 1), true},
		{"other member", member(2), false},
		{"manager of another club", manager(9, 2), false},
		{"zero principal", domain.Principal{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.CanActOnReservation(ctx, tt.principal, reservation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
