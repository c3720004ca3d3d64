package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNoticeNotFound = errors.New("notice not found")

type Notice struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Active      bool   `gorm:"not null;default:true"`
	CreatedBy   string `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`
}

type NoticeDAO struct {
	db *gorm.DB
}

func NewNoticeDAO(db *gorm.DB) *NoticeDAO {
	return &NoticeDAO{
		db: db,
	}
}

func (d *NoticeDAO) Insert(ctx context.Context, notice Notice) (Notice, error) {
	result := d.db.WithContext(ctx).Create(&notice)
	if result.Error != nil {
		return Notice{}, result.Error
	}

	return notice, nil
}

func (d *NoticeDAO) FindByID(ctx context.Context, id uint) (Notice, error) {
	var notice Notice

	result := d.db.WithContext(ctx).First(&notice, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Notice{}, ErrNoticeNotFound
		}

		return Notice{}, result.Error
	}

	return notice, nil
}

// FindAll lists notices, restricted to active ones when activeOnly is set.
func (d *NoticeDAO) FindAll(ctx context.Context, activeOnly bool) ([]Notice, error) {
	var notices []Notice

	query := d.db.WithContext(ctx).Order("created_at desc")
	if activeOnly {
		query = query.Where("active = true")
	}

	result := query.Find(&notices)
	if result.Error != nil {
		return nil, result.Error
	}

	return notices, nil
}

func (d *NoticeDAO) Update(ctx context.Context, notice Notice) (Notice, error) {
	result := d.db.WithContext(ctx).
		Model(&Notice{}).
		Where("id = ?", notice.ID).
		Updates(map[string]any{
			"title":       notice.Title,
			"description": notice.Description,
			"active":      notice.Active,
		})
	if result.Error != nil {
		return Notice{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Notice{}, ErrNoticeNotFound
	}

	return d.FindByID(ctx, notice.ID)
}

func (d *NoticeDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Notice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoticeNotFound
	}

	return nil
}

func (d *NoticeDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Notice{}).Where("active = true").Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
