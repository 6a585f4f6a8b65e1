package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository/dao"
)

var (
	ErrUserEmailExists    = dao.ErrUserEmailExists
	ErrUserNotFound       = dao.ErrUserNotFound
	ErrAlreadyAffiliated  = dao.ErrAlreadyAffiliated
	ErrAffiliationMissing = dao.ErrAffiliationMissing
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdateRole(ctx context.Context, userID uint, role string) error
	InsertAffiliation(ctx context.Context, affiliation dao.Affiliation) (dao.Affiliation, error)
	FindFirstAffiliation(ctx context.Context, userID uint) (dao.Affiliation, error)
	FindMembershipRole(ctx context.Context, userID, clubID uint) (string, bool, error)
}

type UserRepository struct {
	dao     UserDAO
	timeout time.Duration
}

func NewUserRepository(dao UserDAO, timeout time.Duration) *UserRepository {
	return &UserRepository{
		dao:     dao,
		timeout: timeout,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     string(user.Role),
		Enabled:  true,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uint, role domain.Role) error {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.dao.UpdateRole(ctx, userID, string(role)); err != nil {
		return fmt.Errorf("r.dao.UpdateRole -> %w", mapStoreErr(err))
	}

	return nil
}

func (r *UserRepository) CreateAffiliation(ctx context.Context, userID, clubID uint) (domain.Affiliation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.dao.InsertAffiliation(ctx, dao.Affiliation{
		UserID: userID,
		ClubID: clubID,
	})
	if err != nil {
		return domain.Affiliation{}, fmt.Errorf("r.dao.InsertAffiliation -> %w", mapStoreErr(err))
	}

	return domain.Affiliation{
		ID:        created.ID,
		UserID:    created.UserID,
		ClubID:    created.ClubID,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (r *UserRepository) FindFirstAffiliation(ctx context.Context, userID uint) (domain.Affiliation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindFirstAffiliation(ctx, userID)
	if err != nil {
		return domain.Affiliation{}, fmt.Errorf("r.dao.FindFirstAffiliation -> %w", mapStoreErr(err))
	}

	return domain.Affiliation{
		ID:        found.ID,
		UserID:    found.UserID,
		ClubID:    found.ClubID,
		CreatedAt: found.CreatedAt,
	}, nil
}

// FindMembership reports whether the user is affiliated with the club and
// the role it holds there, resolved in one query.
func (r *UserRepository) FindMembership(ctx context.Context, userID, clubID uint) (domain.Membership, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	role, affiliated, err := r.dao.FindMembershipRole(ctx, userID, clubID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("r.dao.FindMembershipRole -> %w", mapStoreErr(err))
	}

	return domain.Membership{
		Affiliated: affiliated,
		Role:       domain.Role(role),
	}, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
