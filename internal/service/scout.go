package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
	"github.com/tobscouts/troop-api/internal/metrics"
	"github.com/tobscouts/troop-api/internal/repository"
)

var (
	ErrScoutNotFound = repository.ErrScoutNotFound

	// Deprovisioning step sentinels. Deletion crosses two systems without
	// a transaction, so the failing step must be identifiable.
	ErrHistoryDelete       = errors.New("scout history delete failed")
	ErrParticipationDelete = errors.New("attendance participation delete failed")
	ErrAwardsDelete        = errors.New("badge award delete failed")
	ErrProfileDelete       = errors.New("scout profile delete failed")
	ErrAccountDelete       = errors.New("account delete failed")

	ErrEmailSync = errors.New("account email update failed")
)

type ScoutProfileRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Scout, error)
	FindByEmail(ctx context.Context, email string) (domain.Scout, error)
	FindAll(ctx context.Context) ([]domain.Scout, error)
	Update(ctx context.Context, scout domain.Scout) (domain.Scout, error)
	Delete(ctx context.Context, id uint) error
	AppendHistory(ctx context.Context, entries []domain.ScoutHistoryEntry) error
	FindHistory(ctx context.Context, scoutID uint) ([]domain.ScoutHistoryEntry, error)
	DeleteHistory(ctx context.Context, scoutID uint) error
}

type ScoutAwardsRepository interface {
	FindAwardsByScoutID(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error)
	DeleteAwardsByScoutID(ctx context.Context, scoutID uint) error
}

type ScoutParticipationRepository interface {
	FindByScoutID(ctx context.Context, scoutID uint) ([]domain.AttendanceRecord, error)
	DeleteParticipationByScoutID(ctx context.Context, scoutID uint) error
}

type ScoutIdentityProvider interface {
	UpdateUser(ctx context.Context, id string, params identity.UpdateUserParams) (domain.Account, error)
	DeleteUser(ctx context.Context, id string) error
}

// ScoutUpdate carries the editable profile fields.
type ScoutUpdate struct {
	FullName string
	Email    string
	Rank     string
	Crew     string
}

type ScoutService struct {
	repo          ScoutProfileRepository
	awards        ScoutAwardsRepository
	participation ScoutParticipationRepository
	provider      ScoutIdentityProvider
}

func NewScoutService(repo ScoutProfileRepository, awards ScoutAwardsRepository, participation ScoutParticipationRepository, provider ScoutIdentityProvider) *ScoutService {
	return &ScoutService{
		repo:          repo,
		awards:        awards,
		participation: participation,
		provider:      provider,
	}
}

func (s *ScoutService) ListScouts(ctx context.Context) ([]domain.Scout, error) {
	scouts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return scouts, nil
}

func (s *ScoutService) GetScout(ctx context.Context, id uint) (domain.Scout, error) {
	scout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Scout{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return scout, nil
}

// GetProfile returns the scout with their audit trail and earned badges,
// the detail view a leader sees. physicallyObtained narrows badges when set.
func (s *ScoutService) GetProfile(ctx context.Context, id uint, physicallyObtained *bool) (domain.ScoutProfile, error) {
	scout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ScoutProfile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	history, err := s.repo.FindHistory(ctx, id)
	if err != nil {
		return domain.ScoutProfile{}, fmt.Errorf("s.repo.FindHistory -> %w", err)
	}

	awards, err := s.awards.FindAwardsByScoutID(ctx, id, physicallyObtained)
	if err != nil {
		return domain.ScoutProfile{}, fmt.Errorf("s.awards.FindAwardsByScoutID -> %w", err)
	}

	return domain.ScoutProfile{
		Scout:   scout,
		History: history,
		Badges:  awards,
	}, nil
}

// GetProfileByEmail is the self-view: a scout looking at their own record.
func (s *ScoutService) GetProfileByEmail(ctx context.Context, email string) (domain.ScoutProfile, error) {
	scout, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ScoutProfile{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return s.GetProfile(ctx, scout.ID, nil)
}

// GetAttendanceByEmail lists the records the scout behind the session
// participated in.
func (s *ScoutService) GetAttendanceByEmail(ctx context.Context, email string) ([]domain.AttendanceRecord, error) {
	scout, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	records, err := s.participation.FindByScoutID(ctx, scout.ID)
	if err != nil {
		return nil, fmt.Errorf("s.participation.FindByScoutID -> %w", err)
	}

	return records, nil
}

// UpdateScout applies profile edits. Rank and crew changes are recorded as
// append-only history entries first. An email change goes to the identity
// provider before the profile row, keeping the two in sync (provider wins:
// if it rejects the new address, the profile keeps the old one).
func (s *ScoutService) UpdateScout(ctx context.Context, id uint, update ScoutUpdate) (domain.Scout, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Scout{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	now := time.Now().UTC()
	var entries []domain.ScoutHistoryEntry
	if current.Rank != update.Rank {
		entries = append(entries, domain.ScoutHistoryEntry{
			ScoutID:    id,
			ChangeType: domain.ChangeTypeRank,
			OldValue:   current.Rank,
			NewValue:   update.Rank,
			ChangedAt:  now,
		})
	}
	if current.Crew != update.Crew {
		entries = append(entries, domain.ScoutHistoryEntry{
			ScoutID:    id,
			ChangeType: domain.ChangeTypeCrew,
			OldValue:   current.Crew,
			NewValue:   update.Crew,
			ChangedAt:  now,
		})
	}

	if len(entries) > 0 {
		if err = s.repo.AppendHistory(ctx, entries); err != nil {
			return domain.Scout{}, fmt.Errorf("s.repo.AppendHistory -> %w", err)
		}
	}

	if update.Email != "" && update.Email != current.Email {
		confirm := true
		_, err = s.provider.UpdateUser(ctx, current.AccountID, identity.UpdateUserParams{
			Email:        &update.Email,
			EmailConfirm: &confirm,
		})
		if err != nil {
			return domain.Scout{}, fmt.Errorf("%w: %w", ErrEmailSync, err)
		}
	} else {
		update.Email = current.Email
	}

	updated, err := s.repo.Update(ctx, domain.Scout{
		ID:       id,
		FullName: update.FullName,
		Email:    update.Email,
		Rank:     update.Rank,
		Crew:     update.Crew,
		Notes:    current.Notes,
	})
	if err != nil {
		return domain.Scout{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteScout removes a scout and everything referencing them, then the
// identity-provider account. The order matters: dependent rows go before
// the profile, the account goes last. The first failure aborts the rest;
// there is no retry and no rollback of earlier steps, so a late failure
// can leave the account without a profile (logged as such).
func (s *ScoutService) DeleteScout(ctx context.Context, id uint) error {
	scout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.DeleteHistory(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrHistoryDelete, err)
	}

	if err = s.participation.DeleteParticipationByScoutID(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrParticipationDelete, err)
	}

	if err = s.awards.DeleteAwardsByScoutID(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrAwardsDelete, err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrProfileDelete, err)
	}

	if err = s.provider.DeleteUser(ctx, scout.AccountID); err != nil {
		zap.L().Error("scout profile deleted but account removal failed, account is orphaned",
			zap.Uint("scout_id", id),
			zap.String("account_id", scout.AccountID),
			zap.Error(err))

		return fmt.Errorf("%w: %w", ErrAccountDelete, err)
	}

	metrics.ScoutsDeleted.Inc()

	return nil
}
