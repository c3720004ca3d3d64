package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
)

// fakeScoutRepo records the order of mutating calls so deletion ordering
// can be asserted.
type fakeScoutRepo struct {
	scout   domain.Scout
	findErr error

	updateErr        error
	deleteHistoryErr error
	deleteErr        error

	history []domain.ScoutHistoryEntry
	updated *domain.Scout
	calls   *[]string
}

func (f *fakeScoutRepo) record(call string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, call)
	}
}

func (f *fakeScoutRepo) FindByID(_ context.Context, id uint) (domain.Scout, error) {
	if f.findErr != nil {
		return domain.Scout{}, f.findErr
	}

	return f.scout, nil
}

func (f *fakeScoutRepo) FindByEmail(_ context.Context, email string) (domain.Scout, error) {
	if f.scout.Email != email {
		return domain.Scout{}, ErrScoutNotFound
	}

	return f.scout, nil
}

func (f *fakeScoutRepo) FindAll(_ context.Context) ([]domain.Scout, error) {
	return []domain.Scout{f.scout}, nil
}

func (f *fakeScoutRepo) Update(_ context.Context, scout domain.Scout) (domain.Scout, error) {
	if f.updateErr != nil {
		return domain.Scout{}, f.updateErr
	}

	f.updated = &scout

	return scout, nil
}

func (f *fakeScoutRepo) Delete(_ context.Context, id uint) error {
	f.record("profile")

	return f.deleteErr
}

func (f *fakeScoutRepo) AppendHistory(_ context.Context, entries []domain.ScoutHistoryEntry) error {
	f.history = append(f.history, entries...)

	return nil
}

func (f *fakeScoutRepo) FindHistory(_ context.Context, scoutID uint) ([]domain.ScoutHistoryEntry, error) {
	return f.history, nil
}

func (f *fakeScoutRepo) DeleteHistory(_ context.Context, scoutID uint) error {
	f.record("history")

	return f.deleteHistoryErr
}

type fakeAwardsRepo struct {
	deleteErr error
	awards    []domain.BadgeAward
	calls     *[]string
}

func (f *fakeAwardsRepo) FindAwardsByScoutID(_ context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error) {
	return f.awards, nil
}

func (f *fakeAwardsRepo) DeleteAwardsByScoutID(_ context.Context, scoutID uint) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "awards")
	}

	return f.deleteErr
}

type fakeParticipationRepo struct {
	records   []domain.AttendanceRecord
	deleteErr error
	calls     *[]string
}

func (f *fakeParticipationRepo) FindByScoutID(_ context.Context, scoutID uint) ([]domain.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeParticipationRepo) DeleteParticipationByScoutID(_ context.Context, scoutID uint) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "participation")
	}

	return f.deleteErr
}

type fakeScoutProvider struct {
	updateErr error
	deleteErr error

	updates    []identity.UpdateUserParams
	deletedIDs []string
	calls      *[]string
}

func (f *fakeScoutProvider) UpdateUser(_ context.Context, id string, params identity.UpdateUserParams) (domain.Account, error) {
	f.updates = append(f.updates, params)
	if f.updateErr != nil {
		return domain.Account{}, f.updateErr
	}

	return domain.Account{ID: id}, nil
}

func (f *fakeScoutProvider) DeleteUser(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	if f.calls != nil {
		*f.calls = append(*f.calls, "account")
	}

	return f.deleteErr
}

func newScoutFixture() domain.Scout {
	return domain.Scout{
		ID:        7,
		AccountID: "acc-7",
		FullName:  "Alex Doe",
		Email:     "alex@example.com",
		Rank:      "Tenderfoot",
		Crew:      "Eagles",
		Notes:     "allergic to peanuts",
	}
}

func TestScoutService_UpdateScout_RecordsHistory(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	provider := &fakeScoutProvider{}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, &fakeParticipationRepo{}, provider)

	updated, err := svc.UpdateScout(context.Background(), 7, ScoutUpdate{
		FullName: "Alex Doe",
		Email:    "alex@example.com",
		Rank:     "Second Class",
		Crew:     "Hawks",
	})

	require.NoError(t, err)
	assert.Equal(t, "Second Class", updated.Rank)

	require.Len(t, repo.history, 2)

	byType := make(map[string]domain.ScoutHistoryEntry)
	for _, entry := range repo.history {
		byType[entry.ChangeType] = entry
	}

	rank := byType[domain.ChangeTypeRank]
	assert.Equal(t, "Tenderfoot", rank.OldValue)
	assert.Equal(t, "Second Class", rank.NewValue)

	crew := byType[domain.ChangeTypeCrew]
	assert.Equal(t, "Eagles", crew.OldValue)
	assert.Equal(t, "Hawks", crew.NewValue)

	assert.Empty(t, provider.updates, "no email change means no provider call")
}

func TestScoutService_UpdateScout_NoChangesNoHistory(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, &fakeParticipationRepo{}, &fakeScoutProvider{})

	_, err := svc.UpdateScout(context.Background(), 7, ScoutUpdate{
		FullName: "Alexander Doe",
		Email:    "alex@example.com",
		Rank:     "Tenderfoot",
		Crew:     "Eagles",
	})

	require.NoError(t, err)
	assert.Empty(t, repo.history)
}

func TestScoutService_UpdateScout_EmailGoesToProviderFirst(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	provider := &fakeScoutProvider{}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, &fakeParticipationRepo{}, provider)

	updated, err := svc.UpdateScout(context.Background(), 7, ScoutUpdate{
		FullName: "Alex Doe",
		Email:    "alex.new@example.com",
		Rank:     "Tenderfoot",
		Crew:     "Eagles",
	})

	require.NoError(t, err)
	assert.Equal(t, "alex.new@example.com", updated.Email)

	require.Len(t, provider.updates, 1)
	require.NotNil(t, provider.updates[0].Email)
	assert.Equal(t, "alex.new@example.com", *provider.updates[0].Email)

	assert.Equal(t, "allergic to peanuts", updated.Notes, "notes survive an update")
}

func TestScoutService_UpdateScout_ProviderRejectsEmail(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	provider := &fakeScoutProvider{updateErr: errors.New("email taken")}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, &fakeParticipationRepo{}, provider)

	_, err := svc.UpdateScout(context.Background(), 7, ScoutUpdate{
		FullName: "Alex Doe",
		Email:    "taken@example.com",
		Rank:     "Tenderfoot",
		Crew:     "Eagles",
	})

	assert.ErrorIs(t, err, ErrEmailSync)
	assert.Nil(t, repo.updated, "the profile row must keep the old address when the provider rejects the new one")
}

func TestScoutService_DeleteScout_Order(t *testing.T) {
	var calls []string
	repo := &fakeScoutRepo{scout: newScoutFixture(), calls: &calls}
	awards := &fakeAwardsRepo{calls: &calls}
	participation := &fakeParticipationRepo{calls: &calls}
	provider := &fakeScoutProvider{calls: &calls}
	svc := NewScoutService(repo, awards, participation, provider)

	err := svc.DeleteScout(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []string{"history", "participation", "awards", "profile", "account"}, calls)
	assert.Equal(t, []string{"acc-7"}, provider.deletedIDs)
}

func TestScoutService_DeleteScout_StepFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(repo *fakeScoutRepo, awards *fakeAwardsRepo, participation *fakeParticipationRepo, provider *fakeScoutProvider)
		wantErr error
	}{
		{
			name: "history delete fails",
			mutate: func(repo *fakeScoutRepo, _ *fakeAwardsRepo, _ *fakeParticipationRepo, _ *fakeScoutProvider) {
				repo.deleteHistoryErr = errors.New("boom")
			},
			wantErr: ErrHistoryDelete,
		},
		{
			name: "participation delete fails",
			mutate: func(_ *fakeScoutRepo, _ *fakeAwardsRepo, participation *fakeParticipationRepo, _ *fakeScoutProvider) {
				participation.deleteErr = errors.New("boom")
			},
			wantErr: ErrParticipationDelete,
		},
		{
			name: "awards delete fails",
			mutate: func(_ *fakeScoutRepo, awards *fakeAwardsRepo, _ *fakeParticipationRepo, _ *fakeScoutProvider) {
				awards.deleteErr = errors.New("boom")
			},
			wantErr: ErrAwardsDelete,
		},
		{
			name: "profile delete fails",
			mutate: func(repo *fakeScoutRepo, _ *fakeAwardsRepo, _ *fakeParticipationRepo, _ *fakeScoutProvider) {
				repo.deleteErr = errors.New("boom")
			},
			wantErr: ErrProfileDelete,
		},
		{
			name: "account delete fails",
			mutate: func(_ *fakeScoutRepo, _ *fakeAwardsRepo, _ *fakeParticipationRepo, provider *fakeScoutProvider) {
				provider.deleteErr = errors.New("boom")
			},
			wantErr: ErrAccountDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeScoutRepo{scout: newScoutFixture()}
			awards := &fakeAwardsRepo{}
			participation := &fakeParticipationRepo{}
			provider := &fakeScoutProvider{}
			tt.mutate(repo, awards, participation, provider)

			svc := NewScoutService(repo, awards, participation, provider)
			err := svc.DeleteScout(context.Background(), 7)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScoutService_GetProfile(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	repo.history = []domain.ScoutHistoryEntry{{ScoutID: 7, ChangeType: domain.ChangeTypeRank}}
	awards := &fakeAwardsRepo{awards: []domain.BadgeAward{{ID: 1, ScoutID: 7, BadgeID: 3}}}
	svc := NewScoutService(repo, awards, &fakeParticipationRepo{}, &fakeScoutProvider{})

	profile, err := svc.GetProfile(context.Background(), 7, nil)

	require.NoError(t, err)
	assert.Equal(t, uint(7), profile.Scout.ID)
	assert.Len(t, profile.History, 1)
	assert.Len(t, profile.Badges, 1)
}

func TestScoutService_GetProfileByEmail(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, &fakeParticipationRepo{}, &fakeScoutProvider{})

	profile, err := svc.GetProfileByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", profile.Scout.Email)

	_, err = svc.GetProfileByEmail(context.Background(), "stranger@example.com")
	assert.ErrorIs(t, err, ErrScoutNotFound)
}

func TestScoutService_GetAttendanceByEmail(t *testing.T) {
	repo := &fakeScoutRepo{scout: newScoutFixture()}
	participation := &fakeParticipationRepo{records: []domain.AttendanceRecord{
		{ID: 1, ActivityType: "Hike"},
		{ID: 2, ActivityType: "Camp"},
	}}
	svc := NewScoutService(repo, &fakeAwardsRepo{}, participation, &fakeScoutProvider{})

	records, err := svc.GetAttendanceByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = svc.GetAttendanceByEmail(context.Background(), "stranger@example.com")
	assert.ErrorIs(t, err, ErrScoutNotFound)
}
