package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubseats/clubseats-api/internal/config"
	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

var (
	ErrEventClosed            = repository.ErrEventClosed
	ErrCategoryFull           = repository.ErrCategoryFull
	ErrDuplicateReservation   = repository.ErrDuplicateReservation
	ErrTokenNotFound          = repository.ErrTokenNotFound
	ErrAlreadyTerminal        = repository.ErrAlreadyTerminal
	ErrCapacityBelowOccupancy = repository.ErrCapacityBelowOccupancy
	ErrHasActiveReservations  = repository.ErrHasActiveReservations
	ErrEventNotFound          = repository.ErrEventNotFound
	ErrCategoryNotFound       = repository.ErrCategoryNotFound

	// ErrAlreadyUsed and ErrAlreadyCancelled narrow ErrAlreadyTerminal for
	// check-in; both still match ErrAlreadyTerminal via errors.Is.
	ErrAlreadyUsed      = fmt.Errorf("%w: already used", ErrAlreadyTerminal)
	ErrAlreadyCancelled = fmt.Errorf("%w: already cancelled", ErrAlreadyTerminal)

	ErrInvalidCapacity = errors.New("capacity must not be negative")
)

type AdmissionReservationRepository interface {
	Admit(ctx context.Context, userID, categoryID uint, now time.Time, allowDuplicates bool) (domain.Reservation, error)
	Transition(ctx context.Context, id uint, to domain.ReservationStatus) (bool, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindByToken(ctx context.Context, token string) (domain.Reservation, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Reservation, error)
	SetCategoryCapacity(ctx context.Context, categoryID uint, capacity int) error
	DeleteCategory(ctx context.Context, categoryID uint) error
	DeleteEvent(ctx context.Context, eventID uint) error
}

type AdmissionEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
}

// AdmissionService owns the reservation state machine
// (CONFIRMED -> CANCELLED | USED) and the capacity invariant. Every
// operation authorizes through the evaluator first and then commits
// through conditional, per-category-serialized store operations.
type AdmissionService struct {
	repo      AdmissionReservationRepository
	eventRepo AdmissionEventRepository
	authz     *AuthzService
	conf      config.ReservationsConfig

	now func() time.Time
}

func NewAdmissionService(repo AdmissionReservationRepository, eventRepo AdmissionEventRepository, authz *AuthzService, conf config.ReservationsConfig) *AdmissionService {
	return &AdmissionService{
		repo:      repo,
		eventRepo: eventRepo,
		authz:     authz,
		conf:      conf,
		now:       time.Now,
	}
}

// CreateReservation admits the principal into the category. The capacity
// check and the insert run atomically in the store; this method only
// settles identity, authorization and referential questions first.
func (s *AdmissionService) CreateReservation(ctx context.Context, principal domain.Principal, eventID, categoryID uint) (domain.Reservation, error) {
	if principal.ID == 0 {
		return domain.Reservation{}, domain.ErrUnauthenticated
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Reservation{}, ErrEventNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	category, err := s.eventRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domain.Reservation{}, ErrCategoryNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.eventRepo.FindCategoryByID -> %w", err)
	}
	if category.EventID != event.ID {
		return domain.Reservation{}, ErrCategoryNotFound
	}

	if err := s.authz.RequireClubMember(ctx, principal, event.ClubID); err != nil {
		return domain.Reservation{}, err
	}

	reservation, err := s.repo.Admit(ctx, principal.ID, categoryID, s.now(), s.conf.AllowDuplicates)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Admit -> %w", err)
	}

	return reservation, nil
}

// CancelReservation transitions a CONFIRMED reservation to CANCELLED,
// releasing its capacity slot. A missing reservation yields the same
// denial as an inaccessible one.
func (s *AdmissionService) CancelReservation(ctx context.Context, principal domain.Principal, reservationID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.AccessDenied("reservation is not accessible to the caller")
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.authz.RequireActOnReservation(ctx, principal, reservation); err != nil {
		return err
	}

	if reservation.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}

	won, err := s.repo.Transition(ctx, reservation.ID, domain.ReservationCancelled)
	if err != nil {
		return fmt.Errorf("s.repo.Transition -> %w", err)
	}
	if !won {
		// Another transition committed between our read and the update.
		return ErrAlreadyTerminal
	}

	return nil
}

// CheckIn transitions the reservation behind the token to USED. Only
// managers of the organizing club may check in; the conditional update
// guarantees a token is honored exactly once.
func (s *AdmissionService) CheckIn(ctx context.Context, principal domain.Principal, token string) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	reservation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrTokenNotFound
		}

		return fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	if err := s.authz.RequireClubManager(ctx, principal, reservation.ClubID); err != nil {
		return err
	}

	switch reservation.Status {
	case domain.ReservationUsed:
		return ErrAlreadyUsed
	case domain.ReservationCancelled:
		return ErrAlreadyCancelled
	}

	won, err := s.repo.Transition(ctx, reservation.ID, domain.ReservationUsed)
	if err != nil {
		return fmt.Errorf("s.repo.Transition -> %w", err)
	}
	if !won {
		return s.terminalErr(ctx, reservation.ID)
	}

	return nil
}

// terminalErr rereads a reservation that lost a transition race to report
// which terminal state beat it.
func (s *AdmissionService) terminalErr(ctx context.Context, reservationID uint) error {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return ErrAlreadyTerminal
	}
	if reservation.Status == domain.ReservationCancelled {
		return ErrAlreadyCancelled
	}

	return ErrAlreadyUsed
}

// SetCategoryCapacity changes a category's capacity. The floor check
// against the live confirmed count happens under the category row lock.
func (s *AdmissionService) SetCategoryCapacity(ctx context.Context, principal domain.Principal, categoryID uint, capacity int) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}
	if capacity < 0 {
		return ErrInvalidCapacity
	}

	event, err := s.findCategoryEvent(ctx, categoryID)
	if err != nil {
		return err
	}

	if err := s.authz.RequireClubManager(ctx, principal, event.ClubID); err != nil {
		return err
	}

	if err := s.repo.SetCategoryCapacity(ctx, categoryID, capacity); err != nil {
		return fmt.Errorf("s.repo.SetCategoryCapacity -> %w", err)
	}

	return nil
}

func (s *AdmissionService) DeleteCategory(ctx context.Context, principal domain.Principal, categoryID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	event, err := s.findCategoryEvent(ctx, categoryID)
	if err != nil {
		return err
	}

	if err := s.authz.RequireClubAdmin(ctx, principal, event.ClubID); err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}

	return nil
}

func (s *AdmissionService) DeleteEvent(ctx context.Context, principal domain.Principal, eventID uint) error {
	if principal.ID == 0 {
		return domain.ErrUnauthenticated
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if err := s.authz.RequireClubAdmin(ctx, principal, event.ClubID); err != nil {
		return err
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.DeleteEvent -> %w", err)
	}

	return nil
}

// GetReservation returns a reservation to its owner or to a manager of
// the organizing club. A missing reservation yields the same denial as an
// inaccessible one.
func (s *AdmissionService) GetReservation(ctx context.Context, principal domain.Principal, reservationID uint) (domain.Reservation, error) {
	if principal.ID == 0 {
		return domain.Reservation{}, domain.ErrUnauthenticated
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.Reservation{}, domain.AccessDenied("reservation is not accessible to the caller")
		}

		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.authz.RequireActOnReservation(ctx, principal, reservation); err != nil {
		return domain.Reservation{}, err
	}

	return reservation, nil
}

func (s *AdmissionService) ListOwnReservations(ctx context.Context, principal domain.Principal) ([]domain.Reservation, error) {
	if principal.ID == 0 {
		return nil, domain.ErrUnauthenticated
	}

	reservations, err := s.repo.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return reservations, nil
}

func (s *AdmissionService) findCategoryEvent(ctx context.Context, categoryID uint) (domain.Event, error) {
	category, err := s.eventRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domain.Event{}, ErrCategoryNotFound
		}

		return domain.Event{}, fmt.Errorf("s.eventRepo.FindCategoryByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, category.EventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	return event, nil
}
