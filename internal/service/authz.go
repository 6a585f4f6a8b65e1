package service

import (
	"context"
	"fmt"

	"github.com/clubseats/clubseats-api/internal/domain"
)

type MembershipRepository interface {
	FindMembership(ctx context.Context, userID, clubID uint) (domain.Membership, error)
}

// AuthzService evaluates ownership, membership and role predicates for a
// resolved principal. Every predicate reads committed state through a
// single membership lookup; nothing is cached across requests. A zero
// principal (no authenticated caller) evaluates every predicate to false
// and every Require variant to ErrUnauthenticated.
type AuthzService struct {
	repo MembershipRepository
}

func NewAuthzService(repo MembershipRepository) *AuthzService {
	return &AuthzService{
		repo: repo,
	}
}

func (s *AuthzService) IsOwner(principal domain.Principal, ownerID uint) bool {
	return principal.ID != 0 && principal.ID == ownerID
}

func (s *AuthzService) IsClubMember(ctx context.Context, principal domain.Principal, clubID uint) (bool, error) {
	if principal.ID == 0 {
		return false, nil
	}

	membership, err := s.repo.FindMembership(ctx, principal.ID, clubID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	return membership.Affiliated, nil
}

func (s *AuthzService) IsClubManager(ctx context.Context, principal domain.Principal, clubID uint) (bool, error) {
	if principal.ID == 0 || !principal.Role.IsManagerial() {
		return false, nil
	}
	// Managerial roles are scoped to exactly one club; a zero
	// ManagedClubID fails closed.
	if principal.ManagedClubID == 0 || principal.ManagedClubID != clubID {
		return false, nil
	}

	membership, err := s.repo.FindMembership(ctx, principal.ID, clubID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	return membership.Affiliated && membership.Role.IsManagerial(), nil
}

func (s *AuthzService) IsClubAdmin(ctx context.Context, principal domain.Principal, clubID uint) (bool, error) {
	if principal.ID == 0 || principal.Role != domain.RoleAdmin {
		return false, nil
	}
	if principal.ManagedClubID == 0 || principal.ManagedClubID != clubID {
		return false, nil
	}

	membership, err := s.repo.FindMembership(ctx, principal.ID, clubID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	return membership.Affiliated && membership.Role == domain.RoleAdmin, nil
}

// CanActOnReservation holds for the reservation's owner and for managers
// of the organizing club.
func (s *AuthzService) CanActOnReservation(ctx context.Context, principal domain.Principal, reservation domain.Reservation) (bool, error) {
	if s.IsOwner(principal, reservation.UserID) {
		return true, nil
	}

	return s.IsClubManager(ctx, principal, reservation.ClubID)
}

func (s *AuthzService) RequireOwner(principal domain.Principal, ownerID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}
	if !s.IsOwner(principal, ownerID) {
		return domain.AccessDenied("caller does not own this resource")
	}

	return nil
}

func (s *AuthzService) RequireClubMember(ctx context.Context, principal domain.Principal, clubID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	ok, err := s.IsClubMember(ctx, principal, clubID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.AccessDenied(fmt.Sprintf("caller is not a member of club %d", clubID))
	}

	return nil
}

func (s *AuthzService) RequireClubManager(ctx context.Context, principal domain.Principal, clubID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	ok, err := s.IsClubManager(ctx, principal, clubID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.AccessDenied(fmt.Sprintf("caller does not manage club %d", clubID))
	}

	return nil
}

func (s *AuthzService) RequireClubAdmin(ctx context.Context, principal domain.Principal, clubID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	ok, err := s.IsClubAdmin(ctx, principal, clubID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.AccessDenied(fmt.Sprintf("caller is not an admin of club %d", clubID))
	}

	return nil
}

// RequireActOnReservation rejects with the same denial shape regardless of
// why access fails, so a caller cannot probe reservations of other clubs.
func (s *AuthzService) RequireActOnReservation(ctx context.Context, principal domain.Principal, reservation domain.Reservation) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	ok, err := s.CanActOnReservation(ctx, principal, reservation)
	if err != nil {
		return err
	}
	if !ok {
		return domain.AccessDenied("reservation is not accessible to the caller")
	}

	return nil
}
