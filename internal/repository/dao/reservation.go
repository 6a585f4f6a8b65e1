package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventClosed            = errors.New("event is not open for reservations")
	ErrCategoryFull           = errors.New("category has no remaining capacity")
	ErrDuplicateReservation   = errors.New("principal already holds a confirmed reservation for this category")
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrTokenNotFound          = errors.New("token not found")
	ErrAlreadyTerminal        = errors.New("reservation is already in a terminal state")
	ErrCapacityBelowOccupancy = errors.New("capacity cannot drop below confirmed reservations")
	ErrHasActiveReservations  = errors.New("entity still has confirmed reservations")
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusUsed      = "USED"
)

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	UserID     uint `gorm:"not null;index"`
	EventID    uint `gorm:"not null;index"`
	CategoryID uint `gorm:"not null;index"`

	// ClubID is the organizing club, denormalized at admission time so
	// manager authorization needs no join.
	ClubID uint `gorm:"not null"`

	Status string `gorm:"not null;default:'CONFIRMED'"`
	Token  string `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

// InsertAdmitted runs the admission decision and the insert as one
// transaction. The category row is locked with SELECT ... FOR UPDATE, so
// concurrent admissions against the same category serialize on the row
// lock while other categories proceed unblocked. A naive count-then-insert
// without the lock lets two transactions read the same confirmed count and
// both admit into the last free slot.
func (d *ReservationDAO) InsertAdmitted(ctx context.Context, userID, categoryID uint, now time.Time, allowDuplicates bool) (Reservation, error) {
	var reservation Reservation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}

			return err
		}

		var event Event
		if err := tx.First(&event, category.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		var club Club
		if err := tx.First(&club, event.ClubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}

			return err
		}

		if !event.Active || !club.Active || !now.Before(event.EndsAt) {
			return ErrEventClosed
		}

		var confirmed int64
		if err := tx.Model(&Reservation{}).
			Where("category_id = ? AND status = ?", category.ID, StatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed >= int64(category.Capacity) {
			return ErrCategoryFull
		}

		if !allowDuplicates {
			var held int64
			if err := tx.Model(&Reservation{}).
				Where("user_id = ? AND category_id = ? AND status = ?", userID, category.ID, StatusConfirmed).
				Count(&held).Error; err != nil {
				return err
			}
			if held > 0 {
				return ErrDuplicateReservation
			}
		}

		reservation = Reservation{
			UserID:     userID,
			EventID:    event.ID,
			CategoryID: category.ID,
			ClubID:     event.ClubID,
			Status:     StatusConfirmed,
			Token:      uuid.NewString(),
		}

		return tx.Create(&reservation).Error
	})
	if err != nil {
		return Reservation{}, err
	}

	return reservation, nil
}

// TransitionIfConfirmed moves the reservation to a terminal status with a
// single conditional update. The status guard in the WHERE clause makes
// concurrent transitions race-free: exactly one wins, the rest see zero
// rows affected.
func (d *ReservationDAO) TransitionIfConfirmed(ctx context.Context, id uint, to string) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByToken(ctx context.Context, token string) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).First(&reservation, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrTokenNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByUserID(ctx context.Context, userID uint) ([]Reservation, error) {
	var reservations []Reservation

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

func (d *ReservationDAO) CountConfirmed(ctx context.Context, categoryID uint) (int, error) {
	var confirmed int64

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("category_id = ? AND status = ?", categoryID, StatusConfirmed).
		Count(&confirmed)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(confirmed), nil
}

// UpdateCategoryCapacity lowers or raises the capacity under the same row
// lock the admission path takes, so the floor check cannot race a
// concurrent admission.
func (d *ReservationDAO) UpdateCategoryCapacity(ctx context.Context, categoryID uint, capacity int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}

			return err
		}

		var confirmed int64
		if err := tx.Model(&Reservation{}).
			Where("category_id = ? AND status = ?", category.ID, StatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if int64(capacity) < confirmed {
			return ErrCapacityBelowOccupancy
		}

		return tx.Model(&Category{}).
			Where("id = ?", category.ID).
			Update("capacity", capacity).Error
	})
}

func (d *ReservationDAO) DeleteCategoryIfVacant(ctx context.Context, categoryID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}

			return err
		}

		var confirmed int64
		if err := tx.Model(&Reservation{}).
			Where("category_id = ? AND status = ?", category.ID, StatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return ErrHasActiveReservations
		}

		return tx.Delete(&Category{}, category.ID).Error
	})
}

func (d *ReservationDAO) DeleteEventIfVacant(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		var confirmed int64
		if err := tx.Model(&Reservation{}).
			Where("event_id = ? AND status = ?", event.ID, StatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return ErrHasActiveReservations
		}

		if err := tx.Where("event_id = ?", event.ID).Delete(&Category{}).Error; err != nil {
			return err
		}

		return tx.Delete(&Event{}, event.ID).Error
	})
}
