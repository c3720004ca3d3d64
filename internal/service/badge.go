package service

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository"
)

var (
	ErrBadgeNotFound = repository.ErrBadgeNotFound
	ErrAwardNotFound = repository.ErrAwardNotFound
)

type BadgeRepo interface {
	Create(ctx context.Context, badge domain.Badge) (domain.Badge, error)
	FindByID(ctx context.Context, id uint) (domain.Badge, error)
	FindAll(ctx context.Context) ([]domain.Badge, error)
	Update(ctx context.Context, badge domain.Badge) (domain.Badge, error)
	Delete(ctx context.Context, id uint) error
	Award(ctx context.Context, award domain.BadgeAward) (domain.BadgeAward, error)
	RevokeAward(ctx context.Context, id uint) error
	FindAwardsByScoutID(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error)
}

type BadgeScoutFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Scout, error)
}

type BadgeService struct {
	repo   BadgeRepo
	scouts BadgeScoutFinder
}

func NewBadgeService(repo BadgeRepo, scouts BadgeScoutFinder) *BadgeService {
	return &BadgeService{
		repo:   repo,
		scouts: scouts,
	}
}

func (s *BadgeService) CreateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	created, err := s.repo.Create(ctx, badge)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *BadgeService) GetBadge(ctx context.Context, id uint) (domain.Badge, error) {
	badge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return badge, nil
}

func (s *BadgeService) ListBadges(ctx context.Context) ([]domain.Badge, error) {
	badges, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return badges, nil
}

func (s *BadgeService) UpdateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	updated, err := s.repo.Update(ctx, badge)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *BadgeService) DeleteBadge(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// AwardBadge links a badge to a scout. Both sides are checked so a broken
// reference never reaches the join table.
func (s *BadgeService) AwardBadge(ctx context.Context, award domain.BadgeAward) (domain.BadgeAward, error) {
	if _, err := s.scouts.FindByID(ctx, award.ScoutID); err != nil {
		return domain.BadgeAward{}, fmt.Errorf("s.scouts.FindByID -> %w", err)
	}

	if _, err := s.repo.FindByID(ctx, award.BadgeID); err != nil {
		return domain.BadgeAward{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.Award(ctx, award)
	if err != nil {
		return domain.BadgeAward{}, fmt.Errorf("s.repo.Award -> %w", err)
	}

	return created, nil
}

func (s *BadgeService) RevokeAward(ctx context.Context, id uint) error {
	if err := s.repo.RevokeAward(ctx, id); err != nil {
		return fmt.Errorf("s.repo.RevokeAward -> %w", err)
	}

	return nil
}

func (s *BadgeService) ScoutAwards(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error) {
	awards, err := s.repo.FindAwardsByScoutID(ctx, scoutID, physicallyObtained)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAwardsByScoutID -> %w", err)
	}

	return awards, nil
}
