package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

var (
	ErrClubNotFound         = repository.ErrClubNotFound
	ErrAlreadyAffiliated    = repository.ErrAlreadyAffiliated
	ErrClubInactive         = errors.New("club is inactive")
	ErrAlreadyManagesClub   = errors.New("principal already manages a club")
	ErrManagerScopeConflict = errors.New("user cannot be scoped as manager of this club")
)

type ClubRepository interface {
	Create(ctx context.Context, club domain.Club) (domain.Club, error)
	FindByID(ctx context.Context, id uint) (domain.Club, error)
}

type ClubUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateRole(ctx context.Context, userID uint, role domain.Role) error
	CreateAffiliation(ctx context.Context, userID, clubID uint) (domain.Affiliation, error)
	FindFirstAffiliation(ctx context.Context, userID uint) (domain.Affiliation, error)
	FindMembership(ctx context.Context, userID, clubID uint) (domain.Membership, error)
}

type ClubService struct {
	repo     ClubRepository
	userRepo ClubUserRepository
	authz    *AuthzService
}

func NewClubService(repo ClubRepository, userRepo ClubUserRepository, authz *AuthzService) *ClubService {
	return &ClubService{
		repo:     repo,
		userRepo: userRepo,
		authz:    authz,
	}
}

// CreateClub creates a club and makes the caller its admin. Managerial
// roles are scoped to one club, so a principal that already manages a
// club cannot create another.
func (s *ClubService) CreateClub(ctx context.Context, principal domain.Principal, club domain.Club) (domain.Club, error) {
	if principal.ID == 0 {
		return domain.Club{}, domain.ErrUnauthenticated
	}
	if principal.Role.IsManagerial() {
		return domain.Club{}, ErrAlreadyManagesClub
	}

	created, err := s.repo.Create(ctx, club)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	// The creator's affiliation to the new club must become its first so
	// that manager scoping resolves to this club. A freshly promoted
	// MEMBER may already hold member affiliations elsewhere; scope
	// resolution takes the first one, which is the documented single
	// managed club limitation.
	if _, err = s.userRepo.CreateAffiliation(ctx, principal.ID, created.ID); err != nil {
		return domain.Club{}, fmt.Errorf("s.userRepo.CreateAffiliation -> %w", err)
	}

	if err = s.userRepo.UpdateRole(ctx, principal.ID, domain.RoleAdmin); err != nil {
		return domain.Club{}, fmt.Errorf("s.userRepo.UpdateRole -> %w", err)
	}

	return created, nil
}

func (s *ClubService) GetClub(ctx context.Context, id uint) (domain.Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClubNotFound) {
			return domain.Club{}, ErrClubNotFound
		}

		return domain.Club{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return club, nil
}

// JoinClub affiliates the caller with the club as a MEMBER.
func (s *ClubService) JoinClub(ctx context.Context, principal domain.Principal, clubID uint) (domain.Affiliation, error) {
	if principal.ID == 0 {
		return domain.Affiliation{}, domain.ErrUnauthenticated
	}

	club, err := s.repo.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repository.ErrClubNotFound) {
			return domain.Affiliation{}, ErrClubNotFound
		}

		return domain.Affiliation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !club.Active {
		return domain.Affiliation{}, ErrClubInactive
	}

	affiliation, err := s.userRepo.CreateAffiliation(ctx, principal.ID, club.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyAffiliated) {
			return domain.Affiliation{}, ErrAlreadyAffiliated
		}

		return domain.Affiliation{}, fmt.Errorf("s.userRepo.CreateAffiliation -> %w", err)
	}

	return affiliation, nil
}

// PromoteManager raises a MEMBER of the club to MANAGER. Only the club's
// admin may promote, and the target's managed-club scope must resolve to
// this club.
func (s *ClubService) PromoteManager(ctx context.Context, principal domain.Principal, clubID, userID uint) error {
	if err := s.authz.RequireClubAdmin(ctx, principal, clubID); err != nil {
		return err
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if target.Role.IsManagerial() {
		return ErrAlreadyManagesClub
	}

	membership, err := s.userRepo.FindMembership(ctx, userID, clubID)
	if err != nil {
		return fmt.Errorf("s.userRepo.FindMembership -> %w", err)
	}
	if !membership.Affiliated {
		return ErrManagerScopeConflict
	}

	// Scope is taken from the first affiliation; promoting a user whose
	// first affiliation is a different club would scope them there.
	first, err := s.userRepo.FindFirstAffiliation(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.userRepo.FindFirstAffiliation -> %w", err)
	}
	if first.ClubID != clubID {
		return ErrManagerScopeConflict
	}

	if err := s.userRepo.UpdateRole(ctx, userID, domain.RoleManager); err != nil {
		return fmt.Errorf("s.userRepo.UpdateRole -> %w", err)
	}

	return nil
}
