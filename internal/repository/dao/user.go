package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists    = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyAffiliated  = errors.New("user is already affiliated with this club")
	ErrAffiliationMissing = errors.New("affiliation not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name    string `gorm:"not null"`
	Role    string `gorm:"not null;default:'MEMBER'"`
	Enabled bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Affiliation struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;uniqueIndex:idx_affiliations_user_club"`
	ClubID uint `gorm:"not null;uniqueIndex:idx_affiliations_user_club"`

	CreatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UpdateRole(ctx context.Context, userID uint, role string) error {
	result := d.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) InsertAffiliation(ctx context.Context, affiliation Affiliation) (Affiliation, error) {
	result := d.db.WithContext(ctx).Create(&affiliation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Affiliation{}, ErrAlreadyAffiliated
		}

		return Affiliation{}, result.Error
	}

	return affiliation, nil
}

// FindFirstAffiliation returns the oldest affiliation of the user. For a
// MANAGER/ADMIN principal this is the club it manages.
func (d *UserDAO) FindFirstAffiliation(ctx context.Context, userID uint) (Affiliation, error) {
	var affiliation Affiliation

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&affiliation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Affiliation{}, ErrAffiliationMissing
		}

		return Affiliation{}, result.Error
	}

	return affiliation, nil
}

// FindMembershipRole answers "is this user affiliated with this club, and
// as what role" in a single query. The bool reports affiliation.
func (d *UserDAO) FindMembershipRole(ctx context.Context, userID, clubID uint) (string, bool, error) {
	var role string

	result := d.db.WithContext(ctx).
		Table("affiliations").
		Select("users.role").
		Joins("JOIN users ON users.id = affiliations.user_id").
		Where("affiliations.user_id = ? AND affiliations.club_id = ?", userID, clubID).
		Take(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}

		return "", false, result.Error
	}

	return role, true, nil
}
