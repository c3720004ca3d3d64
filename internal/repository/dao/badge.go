package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBadgeNotFound = errors.New("badge not found")
	ErrAwardNotFound = errors.New("badge award not found")
)

type Badge struct {
	ID uint `gorm:"primaryKey"`

	Name         string `gorm:"not null"`
	Description  string
	BadgeType    string `gorm:"not null"`
	Requirements string

	CreatedAt time.Time `gorm:"not null"`
}

type ScoutBadge struct {
	ID uint `gorm:"primaryKey"`

	ScoutID            uint      `gorm:"index;not null"`
	BadgeID            uint      `gorm:"index;not null"`
	DateEarned         time.Time `gorm:"type:date"`
	PhysicallyObtained bool      `gorm:"not null"`
	AwardedBy          string    `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`

	Badge Badge `gorm:"foreignKey:BadgeID"`
}

type BadgeDAO struct {
	db *gorm.DB
}

func NewBadgeDAO(db *gorm.DB) *BadgeDAO {
	return &BadgeDAO{
		db: db,
	}
}

func (d *BadgeDAO) Insert(ctx context.Context, badge Badge) (Badge, error) {
	result := d.db.WithContext(ctx).Create(&badge)
	if result.Error != nil {
		return Badge{}, result.Error
	}

	return badge, nil
}

func (d *BadgeDAO) FindByID(ctx context.Context, id uint) (Badge, error) {
	var badge Badge

	result := d.db.WithContext(ctx).First(&badge, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Badge{}, ErrBadgeNotFound
		}

		return Badge{}, result.Error
	}

	return badge, nil
}

func (d *BadgeDAO) FindAll(ctx context.Context) ([]Badge, error) {
	var badges []Badge

	result := d.db.WithContext(ctx).Order("name").Find(&badges)
	if result.Error != nil {
		return nil, result.Error
	}

	return badges, nil
}

func (d *BadgeDAO) Update(ctx context.Context, badge Badge) (Badge, error) {
	result := d.db.WithContext(ctx).
		Model(&Badge{}).
		Where("id = ?", badge.ID).
		Updates(map[string]any{
			"name":         badge.Name,
			"description":  badge.Description,
			"badge_type":   badge.BadgeType,
			"requirements": badge.Requirements,
		})
	if result.Error != nil {
		return Badge{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Badge{}, ErrBadgeNotFound
	}

	return d.FindByID(ctx, badge.ID)
}

func (d *BadgeDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Badge{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBadgeNotFound
	}

	return nil
}

func (d *BadgeDAO) InsertAward(ctx context.Context, award ScoutBadge) (ScoutBadge, error) {
	result := d.db.WithContext(ctx).Create(&award)
	if result.Error != nil {
		return ScoutBadge{}, result.Error
	}

	return award, nil
}

func (d *BadgeDAO) DeleteAward(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ScoutBadge{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAwardNotFound
	}

	return nil
}

func (d *BadgeDAO) DeleteAwardsByScoutID(ctx context.Context, scoutID uint) error {
	return d.db.WithContext(ctx).Where("scout_id = ?", scoutID).Delete(&ScoutBadge{}).Error
}

// FindAwardsByScoutID returns awards with their badge preloaded.
// physicallyObtained filters when non-nil.
func (d *BadgeDAO) FindAwardsByScoutID(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]ScoutBadge, error) {
	var awards []ScoutBadge

	query := d.db.WithContext(ctx).Preload("Badge").Where("scout_id = ?", scoutID)
	if physicallyObtained != nil {
		query = query.Where("physically_obtained = ?", *physicallyObtained)
	}

	result := query.Order("date_earned desc").Find(&awards)
	if result.Error != nil {
		return nil, result.Error
	}

	return awards, nil
}

func (d *BadgeDAO) CountBadges(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Badge{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountAwards counts earned badges, optionally narrowed by badge type and
// badge name.
func (d *BadgeDAO) CountAwards(ctx context.Context, badgeType, badgeName string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).
		Model(&ScoutBadge{}).
		Joins("JOIN badges ON badges.id = scout_badges.badge_id")
	if badgeType != "" {
		query = query.Where("badges.badge_type = ?", badgeType)
	}
	if badgeName != "" {
		query = query.Where("badges.name = ?", badgeName)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
