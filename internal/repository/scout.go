package repository

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository/dao"
)

var (
	ErrScoutEmailExists = dao.ErrScoutEmailExists
	ErrScoutNotFound    = dao.ErrScoutNotFound
	ErrRoleExists       = dao.ErrRoleExists
	ErrRoleNotFound     = dao.ErrRoleNotFound
)

type ScoutDAO interface {
	Insert(ctx context.Context, scout dao.Scout) (dao.Scout, error)
	FindByID(ctx context.Context, id uint) (dao.Scout, error)
	FindByEmail(ctx context.Context, email string) (dao.Scout, error)
	FindAll(ctx context.Context) ([]dao.Scout, error)
	Update(ctx context.Context, scout dao.Scout) (dao.Scout, error)
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
	InsertHistory(ctx context.Context, entries []dao.ScoutHistory) error
	FindHistoryByScoutID(ctx context.Context, scoutID uint) ([]dao.ScoutHistory, error)
	DeleteHistoryByScoutID(ctx context.Context, scoutID uint) error
	InsertRole(ctx context.Context, role dao.UserRole) (dao.UserRole, error)
	FindRoleByAccountID(ctx context.Context, accountID string) (dao.UserRole, error)
	FindAccountIDsByRole(ctx context.Context, role string) ([]string, error)
	DeleteRole(ctx context.Context, accountID, role string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type ScoutRepository struct {
	dao ScoutDAO
}

func NewScoutRepository(dao ScoutDAO) *ScoutRepository {
	return &ScoutRepository{
		dao: dao,
	}
}

func (r *ScoutRepository) Create(ctx context.Context, scout domain.Scout) (domain.Scout, error) {
	created, err := r.dao.Insert(ctx, dao.Scout{
		AccountID: scout.AccountID,
		FullName:  scout.FullName,
		Email:     scout.Email,
		Rank:      scout.Rank,
		Crew:      scout.Crew,
		Notes:     scout.Notes,
	})
	if err != nil {
		return domain.Scout{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScoutRepository) FindByID(ctx context.Context, id uint) (domain.Scout, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Scout{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ScoutRepository) FindByEmail(ctx context.Context, email string) (domain.Scout, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Scout{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ScoutRepository) FindAll(ctx context.Context) ([]domain.Scout, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	scouts := make([]domain.Scout, 0, len(found))
	for _, s := range found {
		scouts = append(scouts, r.daoToDomain(s))
	}

	return scouts, nil
}

func (r *ScoutRepository) Update(ctx context.Context, scout domain.Scout) (domain.Scout, error) {
	updated, err := r.dao.Update(ctx, dao.Scout{
		ID:       scout.ID,
		FullName: scout.FullName,
		Email:    scout.Email,
		Rank:     scout.Rank,
		Crew:     scout.Crew,
		Notes:    scout.Notes,
	})
	if err != nil {
		return domain.Scout{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ScoutRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ScoutRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

// AppendHistory records audit entries. There is intentionally no way to
// modify or remove a single entry afterwards.
func (r *ScoutRepository) AppendHistory(ctx context.Context, entries []domain.ScoutHistoryEntry) error {
	rows := make([]dao.ScoutHistory, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, dao.ScoutHistory{
			ScoutID:    e.ScoutID,
			ChangeType: e.ChangeType,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			ChangedAt:  e.ChangedAt,
		})
	}

	if err := r.dao.InsertHistory(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.InsertHistory -> %w", err)
	}

	return nil
}

func (r *ScoutRepository) FindHistory(ctx context.Context, scoutID uint) ([]domain.ScoutHistoryEntry, error) {
	rows, err := r.dao.FindHistoryByScoutID(ctx, scoutID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindHistoryByScoutID -> %w", err)
	}

	entries := make([]domain.ScoutHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.ScoutHistoryEntry{
			ID:         row.ID,
			ScoutID:    row.ScoutID,
			ChangeType: row.ChangeType,
			OldValue:   row.OldValue,
			NewValue:   row.NewValue,
			ChangedAt:  row.ChangedAt,
		})
	}

	return entries, nil
}

func (r *ScoutRepository) DeleteHistory(ctx context.Context, scoutID uint) error {
	if err := r.dao.DeleteHistoryByScoutID(ctx, scoutID); err != nil {
		return fmt.Errorf("r.dao.DeleteHistoryByScoutID -> %w", err)
	}

	return nil
}

func (r *ScoutRepository) AssignRole(ctx context.Context, accountID, role string) (domain.RoleAssignment, error) {
	created, err := r.dao.InsertRole(ctx, dao.UserRole{
		AccountID: accountID,
		Role:      role,
	})
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("r.dao.InsertRole -> %w", err)
	}

	return roleDaoToDomain(created), nil
}

func (r *ScoutRepository) FindRole(ctx context.Context, accountID string) (domain.RoleAssignment, error) {
	found, err := r.dao.FindRoleByAccountID(ctx, accountID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("r.dao.FindRoleByAccountID -> %w", err)
	}

	return roleDaoToDomain(found), nil
}

func (r *ScoutRepository) FindAccountIDsByRole(ctx context.Context, role string) ([]string, error) {
	ids, err := r.dao.FindAccountIDsByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAccountIDsByRole -> %w", err)
	}

	return ids, nil
}

func (r *ScoutRepository) RemoveRole(ctx context.Context, accountID, role string) error {
	if err := r.dao.DeleteRole(ctx, accountID, role); err != nil {
		return fmt.Errorf("r.dao.DeleteRole -> %w", err)
	}

	return nil
}

func (r *ScoutRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	count, err := r.dao.CountByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	return count, nil
}

func (r *ScoutRepository) daoToDomain(s dao.Scout) domain.Scout {
	return domain.Scout{
		ID:        s.ID,
		AccountID: s.AccountID,
		FullName:  s.FullName,
		Email:     s.Email,
		Rank:      s.Rank,
		Crew:      s.Crew,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

func roleDaoToDomain(role dao.UserRole) domain.RoleAssignment {
	return domain.RoleAssignment{
		ID:        role.ID,
		AccountID: role.AccountID,
		Role:      role.Role,
		CreatedAt: role.CreatedAt,
	}
}
