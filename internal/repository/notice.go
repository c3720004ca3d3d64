package repository

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository/dao"
)

var ErrNoticeNotFound = dao.ErrNoticeNotFound

type NoticeDAO interface {
	Insert(ctx context.Context, notice dao.Notice) (dao.Notice, error)
	FindByID(ctx context.Context, id uint) (dao.Notice, error)
	FindAll(ctx context.Context, activeOnly bool) ([]dao.Notice, error)
	Update(ctx context.Context, notice dao.Notice) (dao.Notice, error)
	Delete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type NoticeRepository struct {
	dao NoticeDAO
}

func NewNoticeRepository(dao NoticeDAO) *NoticeRepository {
	return &NoticeRepository{
		dao: dao,
	}
}

func (r *NoticeRepository) Create(ctx context.Context, notice domain.Notice) (domain.Notice, error) {
	created, err := r.dao.Insert(ctx, dao.Notice{
		Title:       notice.Title,
		Description: notice.Description,
		Active:      notice.Active,
		CreatedBy:   notice.CreatedBy,
	})
	if err != nil {
		return domain.Notice{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return daoToDomainNotice(created), nil
}

func (r *NoticeRepository) FindByID(ctx context.Context, id uint) (domain.Notice, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return daoToDomainNotice(found), nil
}

func (r *NoticeRepository) FindAll(ctx context.Context, activeOnly bool) ([]domain.Notice, error) {
	found, err := r.dao.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	notices := make([]domain.Notice, 0, len(found))
	for _, n := range found {
		notices = append(notices, daoToDomainNotice(n))
	}

	return notices, nil
}

func (r *NoticeRepository) Update(ctx context.Context, notice domain.Notice) (domain.Notice, error) {
	updated, err := r.dao.Update(ctx, dao.Notice{
		ID:          notice.ID,
		Title:       notice.Title,
		Description: notice.Description,
		Active:      notice.Active,
	})
	if err != nil {
		return domain.Notice{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return daoToDomainNotice(updated), nil
}

func (r *NoticeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NoticeRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func daoToDomainNotice(n dao.Notice) domain.Notice {
	return domain.Notice{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Active:      n.Active,
		CreatedBy:   n.CreatedBy,
		CreatedAt:   n.CreatedAt,
	}
}
