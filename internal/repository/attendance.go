package repository

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository/dao"
)

var ErrAttendanceNotFound = dao.ErrAttendanceNotFound

type AttendanceDAO interface {
	Insert(ctx context.Context, record dao.Attendance, scoutIDs []uint) (dao.Attendance, error)
	FindByID(ctx context.Context, id uint) (dao.Attendance, error)
	FindAll(ctx context.Context) ([]dao.Attendance, error)
	FindByScoutID(ctx context.Context, scoutID uint) ([]dao.Attendance, error)
	Update(ctx context.Context, record dao.Attendance) (dao.Attendance, error)
	Delete(ctx context.Context, id uint) error
	AddParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error
	RemoveParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error
	DeleteParticipationByAttendanceID(ctx context.Context, attendanceID uint) error
	DeleteParticipationByScoutID(ctx context.Context, scoutID uint) error
	DistinctActivityTypes(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context, activityType string) (int64, error)
	CountByScout(ctx context.Context, scoutID uint, activityType string) (int64, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	created, err := r.dao.Insert(ctx, dao.Attendance{
		Date:               record.Date,
		ActivityType:       record.ActivityType,
		CustomActivityName: record.CustomActivityName,
		CreatedBy:          record.CreatedBy,
	}, record.ScoutIDs)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id uint) (domain.AttendanceRecord, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AttendanceRepository) FindAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	records := make([]domain.AttendanceRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, r.daoToDomain(rec))
	}

	return records, nil
}

func (r *AttendanceRepository) FindByScoutID(ctx context.Context, scoutID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindByScoutID(ctx, scoutID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByScoutID -> %w", err)
	}

	records := make([]domain.AttendanceRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, r.daoToDomain(rec))
	}

	return records, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	updated, err := r.dao.Update(ctx, dao.Attendance{
		ID:                 record.ID,
		Date:               record.Date,
		ActivityType:       record.ActivityType,
		CustomActivityName: record.CustomActivityName,
	})
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) AddParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error {
	if err := r.dao.AddParticipants(ctx, attendanceID, scoutIDs); err != nil {
		return fmt.Errorf("r.dao.AddParticipants -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) RemoveParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error {
	if err := r.dao.RemoveParticipants(ctx, attendanceID, scoutIDs); err != nil {
		return fmt.Errorf("r.dao.RemoveParticipants -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) DeleteParticipationByAttendanceID(ctx context.Context, attendanceID uint) error {
	if err := r.dao.DeleteParticipationByAttendanceID(ctx, attendanceID); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipationByAttendanceID -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) DeleteParticipationByScoutID(ctx context.Context, scoutID uint) error {
	if err := r.dao.DeleteParticipationByScoutID(ctx, scoutID); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipationByScoutID -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) ActivityTypes(ctx context.Context) ([]string, error) {
	types, err := r.dao.DistinctActivityTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DistinctActivityTypes -> %w", err)
	}

	return types, nil
}

func (r *AttendanceRepository) CountAll(ctx context.Context, activityType string) (int64, error) {
	count, err := r.dao.CountAll(ctx, activityType)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *AttendanceRepository) CountByScout(ctx context.Context, scoutID uint, activityType string) (int64, error) {
	count, err := r.dao.CountByScout(ctx, scoutID, activityType)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByScout -> %w", err)
	}

	return count, nil
}

func (r *AttendanceRepository) daoToDomain(rec dao.Attendance) domain.AttendanceRecord {
	scoutIDs := make([]uint, 0, len(rec.Scouts))
	for _, join := range rec.Scouts {
		scoutIDs = append(scoutIDs, join.ScoutID)
	}

	return domain.AttendanceRecord{
		ID:                 rec.ID,
		Date:               rec.Date,
		ActivityType:       rec.ActivityType,
		CustomActivityName: rec.CustomActivityName,
		CreatedBy:          rec.CreatedBy,
		CreatedAt:          rec.CreatedAt,
		ScoutIDs:           scoutIDs,
	}
}
