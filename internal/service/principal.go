package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

var (
	ErrIdentityNotFound = errors.New("identity has no backing principal")
	ErrAccountDisabled  = errors.New("account is disabled")
)

type PrincipalRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindFirstAffiliation(ctx context.Context, userID uint) (domain.Affiliation, error)
}

// PrincipalService maps an authenticated identity to a fresh Principal
// snapshot. Nothing is cached between requests; roles and affiliations are
// read from committed state on every call.
type PrincipalService struct {
	repo PrincipalRepository
}

func NewPrincipalService(repo PrincipalRepository) *PrincipalService {
	return &PrincipalService{
		repo: repo,
	}
}

// Resolve returns the principal behind the identity. A MANAGER/ADMIN
// principal carries the club it manages, taken from its first affiliation;
// when that affiliation is missing the managed-club field stays zero and
// every manager-scoped check fails closed.
func (s *PrincipalService) Resolve(ctx context.Context, identityID uint) (domain.Principal, error) {
	user, err := s.repo.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Principal{}, ErrIdentityNotFound
		}

		return domain.Principal{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !user.Enabled {
		return domain.Principal{}, ErrAccountDisabled
	}

	principal := domain.Principal{
		ID:      user.ID,
		Role:    user.Role,
		Enabled: user.Enabled,
	}

	if user.Role.IsManagerial() {
		affiliation, err := s.repo.FindFirstAffiliation(ctx, user.ID)
		if err != nil {
			if !errors.Is(err, repository.ErrAffiliationMissing) {
				return domain.Principal{}, fmt.Errorf("s.repo.FindFirstAffiliation -> %w", err)
			}
			// No affiliation: resolution still succeeds, manager checks
			// fail closed on the zero ManagedClubID.
		} else {
			principal.ManagedClubID = affiliation.ClubID
		}
	}

	return principal, nil
}
