package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobscouts/troop-api/internal/domain"
)

type fakeAttendanceRepo struct {
	records map[uint]domain.AttendanceRecord

	added   []uint
	removed []uint
	calls   []string
}

func newFakeAttendanceRepo(records ...domain.AttendanceRecord) *fakeAttendanceRepo {
	repo := &fakeAttendanceRepo{records: make(map[uint]domain.AttendanceRecord)}
	for _, r := range records {
		repo.records[r.ID] = r
	}

	return repo
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	record.ID = uint(len(f.records) + 1)
	f.records[record.ID] = record

	return record, nil
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id uint) (domain.AttendanceRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return domain.AttendanceRecord{}, ErrAttendanceNotFound
	}

	return record, nil
}

func (f *fakeAttendanceRepo) FindAll(_ context.Context) ([]domain.AttendanceRecord, error) {
	out := make([]domain.AttendanceRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}

	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	existing, ok := f.records[record.ID]
	if !ok {
		return domain.AttendanceRecord{}, ErrAttendanceNotFound
	}

	record.ScoutIDs = existing.ScoutIDs
	f.records[record.ID] = record

	return record, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id uint) error {
	f.calls = append(f.calls, "record")
	delete(f.records, id)

	return nil
}

func (f *fakeAttendanceRepo) AddParticipants(_ context.Context, attendanceID uint, scoutIDs []uint) error {
	f.added = append(f.added, scoutIDs...)

	record := f.records[attendanceID]
	record.ScoutIDs = append(record.ScoutIDs, scoutIDs...)
	f.records[attendanceID] = record

	return nil
}

func (f *fakeAttendanceRepo) RemoveParticipants(_ context.Context, attendanceID uint, scoutIDs []uint) error {
	f.removed = append(f.removed, scoutIDs...)

	drop := make(map[uint]bool, len(scoutIDs))
	for _, id := range scoutIDs {
		drop[id] = true
	}

	record := f.records[attendanceID]
	var kept []uint
	for _, id := range record.ScoutIDs {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	record.ScoutIDs = kept
	f.records[attendanceID] = record

	return nil
}

func (f *fakeAttendanceRepo) DeleteParticipationByAttendanceID(_ context.Context, attendanceID uint) error {
	f.calls = append(f.calls, "participation")

	return nil
}

func (f *fakeAttendanceRepo) ActivityTypes(_ context.Context) ([]string, error) {
	return []string{domain.ActivityTroopNight, domain.ActivityHike}, nil
}

func TestAttendanceService_CreateRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	record, err := svc.CreateRecord(context.Background(), domain.AttendanceRecord{
		Date:         time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC),
		ActivityType: domain.ActivityHike,
		ScoutIDs:     []uint{1, 2, 3},
	})

	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Len(t, record.ScoutIDs, 3)
}

func TestAttendanceService_CreateRecord_NoAttendees(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())

	_, err := svc.CreateRecord(context.Background(), domain.AttendanceRecord{
		Date:         time.Now(),
		ActivityType: domain.ActivityCamp,
	})

	assert.ErrorIs(t, err, ErrNoAttendees)
}

func TestAttendanceService_UpdateRecord_ReconcilesParticipants(t *testing.T) {
	repo := newFakeAttendanceRepo(domain.AttendanceRecord{
		ID:           5,
		ActivityType: domain.ActivityTroopNight,
		ScoutIDs:     []uint{1, 2, 3},
	})
	svc := NewAttendanceService(repo)

	updated, err := svc.UpdateRecord(context.Background(), domain.AttendanceRecord{
		ID:           5,
		ActivityType: domain.ActivityTroopNight,
		ScoutIDs:     []uint{2, 3, 4},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{4}, repo.added)
	assert.Equal(t, []uint{1}, repo.removed)
	assert.ElementsMatch(t, []uint{2, 3, 4}, updated.ScoutIDs)
}

func TestAttendanceService_UpdateRecord_NotFound(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())

	_, err := svc.UpdateRecord(context.Background(), domain.AttendanceRecord{
		ID:       99,
		ScoutIDs: []uint{1},
	})

	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestAttendanceService_DeleteRecord_ParticipationFirst(t *testing.T) {
	repo := newFakeAttendanceRepo(domain.AttendanceRecord{ID: 5, ScoutIDs: []uint{1}})
	svc := NewAttendanceService(repo)

	err := svc.DeleteRecord(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"participation", "record"}, repo.calls)
}

func TestDiffParticipants(t *testing.T) {
	tests := []struct {
		name       string
		existing   []uint
		desired    []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{
			name:     "identical",
			existing: []uint{1, 2},
			desired:  []uint{1, 2},
		},
		{
			name:       "disjoint",
			existing:   []uint{1},
			desired:    []uint{2},
			wantAdd:    []uint{2},
			wantRemove: []uint{1},
		},
		{
			name:    "additions only",
			desired: []uint{1, 2},
			wantAdd: []uint{1, 2},
		},
		{
			name:       "removals only",
			existing:   []uint{1, 2},
			wantRemove: []uint{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffParticipants(tt.existing, tt.desired)

			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}
