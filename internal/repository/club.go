package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository/dao"
)

var (
	ErrClubNotFound = dao.ErrClubNotFound
)

type ClubDAO interface {
	Insert(ctx context.Context, club dao.Club) (dao.Club, error)
	FindByID(ctx context.Context, id uint) (dao.Club, error)
}

type ClubRepository struct {
	dao     ClubDAO
	timeout time.Duration
}

func NewClubRepository(dao ClubDAO, timeout time.Duration) *ClubRepository {
	return &ClubRepository{
		dao:     dao,
		timeout: timeout,
	}
}

func (r *ClubRepository) Create(ctx context.Context, club domain.Club) (domain.Club, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.dao.Insert(ctx, dao.Club{
		Name:        club.Name,
		Description: club.Description,
		Active:      true,
	})
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.Insert -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(created), nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint) (domain.Club, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.FindByID -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *ClubRepository) daoToDomain(c dao.Club) domain.Club {
	return domain.Club{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
