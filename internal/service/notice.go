package service

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository"
)

var ErrNoticeNotFound = repository.ErrNoticeNotFound

type NoticeRepo interface {
	Create(ctx context.Context, notice domain.Notice) (domain.Notice, error)
	FindByID(ctx context.Context, id uint) (domain.Notice, error)
	FindAll(ctx context.Context, activeOnly bool) ([]domain.Notice, error)
	Update(ctx context.Context, notice domain.Notice) (domain.Notice, error)
	Delete(ctx context.Context, id uint) error
}

type NoticeService struct {
	repo NoticeRepo
}

func NewNoticeService(repo NoticeRepo) *NoticeService {
	return &NoticeService{
		repo: repo,
	}
}

func (s *NoticeService) CreateNotice(ctx context.Context, notice domain.Notice) (domain.Notice, error) {
	notice.Active = true

	created, err := s.repo.Create(ctx, notice)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NoticeService) GetNotice(ctx context.Context, id uint) (domain.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return notice, nil
}

// ListNotices returns all notices for leaders; scouts only ever see active
// ones.
func (s *NoticeService) ListNotices(ctx context.Context, activeOnly bool) ([]domain.Notice, error) {
	notices, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return notices, nil
}

func (s *NoticeService) UpdateNotice(ctx context.Context, notice domain.Notice) (domain.Notice, error) {
	updated, err := s.repo.Update(ctx, notice)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *NoticeService) DeleteNotice(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
