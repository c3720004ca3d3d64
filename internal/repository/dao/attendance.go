package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAttendanceNotFound = errors.New("attendance record not found")

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	Date               time.Time `gorm:"type:date;not null"`
	ActivityType       string    `gorm:"not null"`
	CustomActivityName string
	CreatedBy          string `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`

	Scouts []AttendanceScout `gorm:"foreignKey:AttendanceID"`
}

// AttendanceScout joins an attendance record to a participating scout. No
// DB-level cascade is assumed; callers clean these up explicitly before
// deleting either side.
type AttendanceScout struct {
	ID uint `gorm:"primaryKey"`

	AttendanceID uint `gorm:"uniqueIndex:idx_attendance_scout;not null"`
	ScoutID      uint `gorm:"uniqueIndex:idx_attendance_scout;index;not null"`
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

// Insert writes the record and its participation rows in one transaction so
// a record never appears without its attendees.
func (d *AttendanceDAO) Insert(ctx context.Context, record Attendance, scoutIDs []uint) (Attendance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		joins := make([]AttendanceScout, 0, len(scoutIDs))
		for _, scoutID := range scoutIDs {
			joins = append(joins, AttendanceScout{AttendanceID: record.ID, ScoutID: scoutID})
		}
		if err := tx.Create(&joins).Error; err != nil {
			return err
		}
		record.Scouts = joins

		return nil
	})
	if err != nil {
		return Attendance{}, err
	}

	return record, nil
}

func (d *AttendanceDAO) FindByID(ctx context.Context, id uint) (Attendance, error) {
	var record Attendance

	result := d.db.WithContext(ctx).Preload("Scouts").First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return record, nil
}

func (d *AttendanceDAO) FindAll(ctx context.Context) ([]Attendance, error) {
	var records []Attendance

	result := d.db.WithContext(ctx).Preload("Scouts").Order("date desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// FindByScoutID lists the records a scout participated in, newest first.
func (d *AttendanceDAO) FindByScoutID(ctx context.Context, scoutID uint) ([]Attendance, error) {
	var records []Attendance

	result := d.db.WithContext(ctx).
		Preload("Scouts").
		Joins("JOIN attendance_scouts ON attendance_scouts.attendance_id = attendances.id").
		Where("attendance_scouts.scout_id = ?", scoutID).
		Order("date desc").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *AttendanceDAO) Update(ctx context.Context, record Attendance) (Attendance, error) {
	result := d.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"date":                 record.Date,
			"activity_type":        record.ActivityType,
			"custom_activity_name": record.CustomActivityName,
		})
	if result.Error != nil {
		return Attendance{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Attendance{}, ErrAttendanceNotFound
	}

	return d.FindByID(ctx, record.ID)
}

func (d *AttendanceDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Attendance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

func (d *AttendanceDAO) AddParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error {
	if len(scoutIDs) == 0 {
		return nil
	}

	joins := make([]AttendanceScout, 0, len(scoutIDs))
	for _, scoutID := range scoutIDs {
		joins = append(joins, AttendanceScout{AttendanceID: attendanceID, ScoutID: scoutID})
	}

	return d.db.WithContext(ctx).Create(&joins).Error
}

func (d *AttendanceDAO) RemoveParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error {
	if len(scoutIDs) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).
		Where("attendance_id = ? AND scout_id IN ?", attendanceID, scoutIDs).
		Delete(&AttendanceScout{}).Error
}

func (d *AttendanceDAO) DeleteParticipationByAttendanceID(ctx context.Context, attendanceID uint) error {
	return d.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Delete(&AttendanceScout{}).Error
}

func (d *AttendanceDAO) DeleteParticipationByScoutID(ctx context.Context, scoutID uint) error {
	return d.db.WithContext(ctx).
		Where("scout_id = ?", scoutID).
		Delete(&AttendanceScout{}).Error
}

// DistinctActivityTypes lists every activity name in use, resolving "Other"
// records to their custom names.
func (d *AttendanceDAO) DistinctActivityTypes(ctx context.Context) ([]string, error) {
	var types []string

	result := d.db.WithContext(ctx).
		Model(&Attendance{}).
		Distinct().
		Order("activity").
		Pluck(`CASE WHEN activity_type = 'Other' AND custom_activity_name <> '' THEN custom_activity_name ELSE activity_type END AS activity`, &types)
	if result.Error != nil {
		return nil, result.Error
	}

	return types, nil
}

func (d *AttendanceDAO) CountAll(ctx context.Context, activityType string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Attendance{})
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *AttendanceDAO) CountByScout(ctx context.Context, scoutID uint, activityType string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).
		Model(&AttendanceScout{}).
		Where("scout_id = ?", scoutID)
	if activityType != "" {
		query = query.
			Joins("JOIN attendances ON attendances.id = attendance_scouts.attendance_id").
			Where("attendances.activity_type = ?", activityType)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
