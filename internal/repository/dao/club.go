package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrClubNotFound = errors.New("club not found")
)

type Club struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string
	Active      bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ClubDAO struct {
	db *gorm.DB
}

func NewClubDAO(db *gorm.DB) *ClubDAO {
	return &ClubDAO{
		db: db,
	}
}

func (d *ClubDAO) Insert(ctx context.Context, club Club) (Club, error) {
	result := d.db.WithContext(ctx).Create(&club)
	if result.Error != nil {
		return Club{}, result.Error
	}

	return club, nil
}

func (d *ClubDAO) FindByID(ctx context.Context, id uint) (Club, error) {
	var club Club

	result := d.db.WithContext(ctx).First(&club, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Club{}, ErrClubNotFound
		}

		return Club{}, result.Error
	}

	return club, nil
}
