package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrCategoryNotFound = dao.ErrCategoryNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByClubID(ctx context.Context, clubID uint) ([]dao.Event, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
}

type EventRepository struct {
	dao     EventDAO
	timeout time.Duration
}

func NewEventRepository(dao EventDAO, timeout time.Duration) *EventRepository {
	return &EventRepository{
		dao:     dao,
		timeout: timeout,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.dao.Insert(ctx, dao.Event{
		ClubID:      event.ClubID,
		Name:        event.Name,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		Active:      true,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindByClubID(ctx context.Context, clubID uint) ([]domain.Event, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByClubID -> %w", mapStoreErr(err))
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.dao.InsertCategory(ctx, dao.Category{
		EventID:  category.EventID,
		Name:     category.Name,
		Capacity: category.Capacity,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", mapStoreErr(err))
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *EventRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", mapStoreErr(err))
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	categories := make([]domain.Category, 0, len(e.Categories))
	for _, c := range e.Categories {
		categories = append(categories, r.categoryDaoToDomain(c))
	}

	return domain.Event{
		ID:          e.ID,
		ClubID:      e.ClubID,
		Name:        e.Name,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Active:      e.Active,
		Categories:  categories,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) categoryDaoToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:       c.ID,
		EventID:  c.EventID,
		Name:     c.Name,
		Capacity: c.Capacity,
	}
}
