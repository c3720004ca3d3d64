package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository"
)

var (
	ErrAttendanceNotFound = repository.ErrAttendanceNotFound
	ErrNoAttendees        = errors.New("attendance record needs at least one attendee")
)

type AttendanceRepo interface {
	Create(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	FindByID(ctx context.Context, id uint) (domain.AttendanceRecord, error)
	FindAll(ctx context.Context) ([]domain.AttendanceRecord, error)
	Update(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	Delete(ctx context.Context, id uint) error
	AddParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error
	RemoveParticipants(ctx context.Context, attendanceID uint, scoutIDs []uint) error
	DeleteParticipationByAttendanceID(ctx context.Context, attendanceID uint) error
	ActivityTypes(ctx context.Context) ([]string, error)
}

type AttendanceService struct {
	repo AttendanceRepo
}

func NewAttendanceService(repo AttendanceRepo) *AttendanceService {
	return &AttendanceService{
		repo: repo,
	}
}

// CreateRecord stores an attendance record with its attendees. A record
// with nobody present is rejected rather than stored empty.
func (s *AttendanceService) CreateRecord(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if len(record.ScoutIDs) == 0 {
		return domain.AttendanceRecord{}, ErrNoAttendees
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AttendanceService) GetRecord(ctx context.Context, id uint) (domain.AttendanceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return record, nil
}

func (s *AttendanceService) ListRecords(ctx context.Context) ([]domain.AttendanceRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return records, nil
}

// UpdateRecord rewrites the record's fields and reconciles its attendee
// set: scouts newly present are added, scouts no longer present removed,
// the rest untouched.
func (s *AttendanceService) UpdateRecord(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if len(record.ScoutIDs) == 0 {
		return domain.AttendanceRecord{}, ErrNoAttendees
	}

	existing, err := s.repo.FindByID(ctx, record.ID)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	toAdd, toRemove := diffParticipants(existing.ScoutIDs, record.ScoutIDs)

	if _, err = s.repo.Update(ctx, record); err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if err = s.repo.AddParticipants(ctx, record.ID, toAdd); err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.AddParticipants -> %w", err)
	}

	if err = s.repo.RemoveParticipants(ctx, record.ID, toRemove); err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.RemoveParticipants -> %w", err)
	}

	updated, err := s.repo.FindByID(ctx, record.ID)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return updated, nil
}

// DeleteRecord removes the participation rows first; nothing at the DB
// level cascades for us.
func (s *AttendanceService) DeleteRecord(ctx context.Context, id uint) error {
	if err := s.repo.DeleteParticipationByAttendanceID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteParticipationByAttendanceID -> %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *AttendanceService) ActivityTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.ActivityTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ActivityTypes -> %w", err)
	}

	return types, nil
}

func diffParticipants(existing, desired []uint) (toAdd, toRemove []uint) {
	current := make(map[uint]bool, len(existing))
	for _, id := range existing {
		current[id] = true
	}

	wanted := make(map[uint]bool, len(desired))
	for _, id := range desired {
		wanted[id] = true
		if !current[id] {
			toAdd = append(toAdd, id)
		}
	}

	for _, id := range existing {
		if !wanted[id] {
			toRemove = append(toRemove, id)
		}
	}

	return toAdd, toRemove
}
