package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrScoutEmailExists = errors.New("scout already exists")
	ErrScoutNotFound    = errors.New("scout not found")
	ErrRoleExists       = errors.New("role already assigned")
	ErrRoleNotFound     = errors.New("role not found")
)

type Scout struct {
	ID uint `gorm:"primaryKey"`

	AccountID string `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	FullName  string `gorm:"not null"`
	Email     string `gorm:"unique;not null"`
	Rank      string
	Crew      string
	Notes     string

	CreatedAt time.Time `gorm:"not null"`
}

// UserRole is the singleton role row per account.
type UserRole struct {
	ID uint `gorm:"primaryKey"`

	AccountID string `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Role      string `gorm:"column:userrole;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// ScoutHistory rows are append-only; no update or delete-by-entry methods
// exist on purpose, only the bulk delete used by scout deprovisioning.
type ScoutHistory struct {
	ID uint `gorm:"primaryKey"`

	ScoutID    uint   `gorm:"index;not null"`
	ChangeType string `gorm:"not null"`
	OldValue   string
	NewValue   string
	ChangedAt  time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ScoutDAO struct {
	db *gorm.DB
}

func NewScoutDAO(db *gorm.DB) *ScoutDAO {
	return &ScoutDAO{
		db: db,
	}
}

func (d *ScoutDAO) Insert(ctx context.Context, scout Scout) (Scout, error) {
	result := d.db.WithContext(ctx).Create(&scout)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "email") {
			return Scout{}, ErrScoutEmailExists
		}

		return Scout{}, result.Error
	}

	return scout, nil
}

func (d *ScoutDAO) FindByID(ctx context.Context, id uint) (Scout, error) {
	var scout Scout

	result := d.db.WithContext(ctx).First(&scout, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Scout{}, ErrScoutNotFound
		}

		return Scout{}, result.Error
	}

	return scout, nil
}

func (d *ScoutDAO) FindByEmail(ctx context.Context, email string) (Scout, error) {
	var scout Scout

	result := d.db.WithContext(ctx).First(&scout, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Scout{}, ErrScoutNotFound
		}

		return Scout{}, result.Error
	}

	return scout, nil
}

func (d *ScoutDAO) FindAll(ctx context.Context) ([]Scout, error) {
	var scouts []Scout

	result := d.db.WithContext(ctx).Order("full_name").Find(&scouts)
	if result.Error != nil {
		return nil, result.Error
	}

	return scouts, nil
}

func (d *ScoutDAO) Update(ctx context.Context, scout Scout) (Scout, error) {
	result := d.db.WithContext(ctx).
		Model(&Scout{}).
		Where("id = ?", scout.ID).
		Updates(map[string]any{
			"full_name": scout.FullName,
			"email":     scout.Email,
			"rank":      scout.Rank,
			"crew":      scout.Crew,
			"notes":     scout.Notes,
		})
	if result.Error != nil {
		return Scout{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Scout{}, ErrScoutNotFound
	}

	return d.FindByID(ctx, scout.ID)
}

func (d *ScoutDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Scout{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScoutNotFound
	}

	return nil
}

func (d *ScoutDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Scout{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ScoutDAO) InsertHistory(ctx context.Context, entries []ScoutHistory) error {
	if len(entries) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Create(&entries)

	return result.Error
}

func (d *ScoutDAO) FindHistoryByScoutID(ctx context.Context, scoutID uint) ([]ScoutHistory, error) {
	var entries []ScoutHistory

	result := d.db.WithContext(ctx).
		Where("scout_id = ?", scoutID).
		Order("changed_at desc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *ScoutDAO) DeleteHistoryByScoutID(ctx context.Context, scoutID uint) error {
	result := d.db.WithContext(ctx).Where("scout_id = ?", scoutID).Delete(&ScoutHistory{})

	return result.Error
}

func (d *ScoutDAO) InsertRole(ctx context.Context, role UserRole) (UserRole, error) {
	result := d.db.WithContext(ctx).Create(&role)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return UserRole{}, ErrRoleExists
		}

		return UserRole{}, result.Error
	}

	return role, nil
}

func (d *ScoutDAO) FindRoleByAccountID(ctx context.Context, accountID string) (UserRole, error) {
	var role UserRole

	result := d.db.WithContext(ctx).First(&role, "user_id = ?", accountID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UserRole{}, ErrRoleNotFound
		}

		return UserRole{}, result.Error
	}

	return role, nil
}

func (d *ScoutDAO) FindAccountIDsByRole(ctx context.Context, role string) ([]string, error) {
	var ids []string

	result := d.db.WithContext(ctx).
		Model(&UserRole{}).
		Where("userrole = ?", role).
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *ScoutDAO) DeleteRole(ctx context.Context, accountID, role string) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND userrole = ?", accountID, role).
		Delete(&UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}

	return nil
}

func (d *ScoutDAO) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&UserRole{}).Where("userrole = ?", role).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
