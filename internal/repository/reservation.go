package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository/dao"
)

var (
	ErrEventClosed            = dao.ErrEventClosed
	ErrCategoryFull           = dao.ErrCategoryFull
	ErrDuplicateReservation   = dao.ErrDuplicateReservation
	ErrReservationNotFound    = dao.ErrReservationNotFound
	ErrTokenNotFound          = dao.ErrTokenNotFound
	ErrAlreadyTerminal        = dao.ErrAlreadyTerminal
	ErrCapacityBelowOccupancy = dao.ErrCapacityBelowOccupancy
	ErrHasActiveReservations  = dao.ErrHasActiveReservations
)

type ReservationDAO interface {
	InsertAdmitted(ctx context.Context, userID, categoryID uint, now time.Time, allowDuplicates bool) (dao.Reservation, error)
	TransitionIfConfirmed(ctx context.Context, id uint, to string) (bool, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	FindByToken(ctx context.Context, token string) (dao.Reservation, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Reservation, error)
	CountConfirmed(ctx context.Context, categoryID uint) (int, error)
	UpdateCategoryCapacity(ctx context.Context, categoryID uint, capacity int) error
	DeleteCategoryIfVacant(ctx context.Context, categoryID uint) error
	DeleteEventIfVacant(ctx context.Context, eventID uint) error
}

type ReservationRepository struct {
	dao     ReservationDAO
	timeout time.Duration
}

func NewReservationRepository(dao ReservationDAO, timeout time.Duration) *ReservationRepository {
	return &ReservationRepository{
		dao:     dao,
		timeout: timeout,
	}
}

// Admit decides and records the reservation atomically; see
// dao.ReservationDAO.InsertAdmitted for the locking discipline.
func (r *ReservationRepository) Admit(ctx context.Context, userID, categoryID uint, now time.Time, allowDuplicates bool) (domain.Reservation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	admitted, err := r.dao.InsertAdmitted(ctx, userID, categoryID, now, allowDuplicates)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.InsertAdmitted -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(admitted), nil
}

// Transition conditionally moves a CONFIRMED reservation to a terminal
// status. The bool reports whether this call won the transition.
func (r *ReservationRepository) Transition(ctx context.Context, id uint, to domain.ReservationStatus) (bool, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	won, err := r.dao.TransitionIfConfirmed(ctx, id, string(to))
	if err != nil {
		return false, fmt.Errorf("r.dao.TransitionIfConfirmed -> %w", mapStoreErr(err))
	}

	return won, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *ReservationRepository) FindByToken(ctx context.Context, token string) (domain.Reservation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByToken -> %w", mapStoreErr(err))
	}

	return r.daoToDomain(found), nil
}

func (r *ReservationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Reservation, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", mapStoreErr(err))
	}

	reservations := make([]domain.Reservation, 0, len(found))
	for _, res := range found {
		reservations = append(reservations, r.daoToDomain(res))
	}

	return reservations, nil
}

func (r *ReservationRepository) CountConfirmed(ctx context.Context, categoryID uint) (int, error) {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	confirmed, err := r.dao.CountConfirmed(ctx, categoryID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountConfirmed -> %w", mapStoreErr(err))
	}

	return confirmed, nil
}

func (r *ReservationRepository) SetCategoryCapacity(ctx context.Context, categoryID uint, capacity int) error {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.dao.UpdateCategoryCapacity(ctx, categoryID, capacity); err != nil {
		return fmt.Errorf("r.dao.UpdateCategoryCapacity -> %w", mapStoreErr(err))
	}

	return nil
}

func (r *ReservationRepository) DeleteCategory(ctx context.Context, categoryID uint) error {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.dao.DeleteCategoryIfVacant(ctx, categoryID); err != nil {
		return fmt.Errorf("r.dao.DeleteCategoryIfVacant -> %w", mapStoreErr(err))
	}

	return nil
}

func (r *ReservationRepository) DeleteEvent(ctx context.Context, eventID uint) error {
	ctx, cancel := withStoreTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.dao.DeleteEventIfVacant(ctx, eventID); err != nil {
		return fmt.Errorf("r.dao.DeleteEventIfVacant -> %w", mapStoreErr(err))
	}

	return nil
}

func (r *ReservationRepository) daoToDomain(res dao.Reservation) domain.Reservation {
	return domain.Reservation{
		ID:         res.ID,
		UserID:     res.UserID,
		EventID:    res.EventID,
		CategoryID: res.CategoryID,
		ClubID:     res.ClubID,
		Status:     domain.ReservationStatus(res.Status),
		Token:      res.Token,
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	}
}
