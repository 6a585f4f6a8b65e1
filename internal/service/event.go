package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindByClubID(ctx context.Context, clubID uint) ([]domain.Event, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
}

type EventService struct {
	repo  EventRepository
	authz *AuthzService
}

func NewEventService(repo EventRepository, authz *AuthzService) *EventService {
	return &EventService{
		repo:  repo,
		authz: authz,
	}
}

// CreateEvent creates an event under the club the caller manages.
func (s *EventService) CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error) {
	if err := s.authz.RequireClubManager(ctx, principal, event.ClubID); err != nil {
		return domain.Event{}, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// ListClubEvents lists a club's events for its members.
func (s *EventService) ListClubEvents(ctx context.Context, principal domain.Principal, clubID uint) ([]domain.Event, error) {
	if err := s.authz.RequireClubMember(ctx, principal, clubID); err != nil {
		return nil, err
	}

	events, err := s.repo.FindByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByClubID -> %w", err)
	}

	return events, nil
}

// CreateCategory adds a bookable category with a bounded capacity to an
// event the caller manages.
func (s *EventService) CreateCategory(ctx context.Context, principal domain.Principal, eventID uint, name string, capacity int) (domain.Category, error) {
	if capacity < 0 {
		return domain.Category{}, ErrInvalidCapacity
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Category{}, ErrEventNotFound
		}

		return domain.Category{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.authz.RequireClubManager(ctx, principal, event.ClubID); err != nil {
		return domain.Category{}, err
	}

	category, err := s.repo.CreateCategory(ctx, domain.Category{
		EventID:  event.ID,
		Name:     name,
		Capacity: capacity,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return category, nil
}
