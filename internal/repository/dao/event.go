package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	ClubID uint `gorm:"not null;index"`
	Club   Club `gorm:"foreignKey:ClubID"`

	Name        string `gorm:"not null"`
	Description string

	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null"`
	Active   bool      `gorm:"not null;default:true"`

	Categories []Category `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Category struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint   `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Capacity int    `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Categories").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByClubID(ctx context.Context, clubID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Preload("Categories").
		Where("club_id = ?", clubID).
		Order("starts_at ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return Category{}, result.Error
	}

	return category, nil
}

func (d *EventDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}
