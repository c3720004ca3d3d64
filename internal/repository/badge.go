package repository

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/repository/dao"
)

var (
	ErrBadgeNotFound = dao.ErrBadgeNotFound
	ErrAwardNotFound = dao.ErrAwardNotFound
)

type BadgeDAO interface {
	Insert(ctx context.Context, badge dao.Badge) (dao.Badge, error)
	FindByID(ctx context.Context, id uint) (dao.Badge, error)
	FindAll(ctx context.Context) ([]dao.Badge, error)
	Update(ctx context.Context, badge dao.Badge) (dao.Badge, error)
	Delete(ctx context.Context, id uint) error
	InsertAward(ctx context.Context, award dao.ScoutBadge) (dao.ScoutBadge, error)
	DeleteAward(ctx context.Context, id uint) error
	DeleteAwardsByScoutID(ctx context.Context, scoutID uint) error
	FindAwardsByScoutID(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]dao.ScoutBadge, error)
	CountBadges(ctx context.Context) (int64, error)
	CountAwards(ctx context.Context, badgeType, badgeName string) (int64, error)
}

type BadgeRepository struct {
	dao BadgeDAO
}

func NewBadgeRepository(dao BadgeDAO) *BadgeRepository {
	return &BadgeRepository{
		dao: dao,
	}
}

func (r *BadgeRepository) Create(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	created, err := r.dao.Insert(ctx, dao.Badge{
		Name:         badge.Name,
		Description:  badge.Description,
		BadgeType:    badge.BadgeType,
		Requirements: badge.Requirements,
	})
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BadgeRepository) FindByID(ctx context.Context, id uint) (domain.Badge, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BadgeRepository) FindAll(ctx context.Context) ([]domain.Badge, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	badges := make([]domain.Badge, 0, len(found))
	for _, b := range found {
		badges = append(badges, r.daoToDomain(b))
	}

	return badges, nil
}

func (r *BadgeRepository) Update(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	updated, err := r.dao.Update(ctx, dao.Badge{
		ID:           badge.ID,
		Name:         badge.Name,
		Description:  badge.Description,
		BadgeType:    badge.BadgeType,
		Requirements: badge.Requirements,
	})
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *BadgeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *BadgeRepository) Award(ctx context.Context, award domain.BadgeAward) (domain.BadgeAward, error) {
	created, err := r.dao.InsertAward(ctx, dao.ScoutBadge{
		ScoutID:            award.ScoutID,
		BadgeID:            award.BadgeID,
		DateEarned:         award.DateEarned,
		PhysicallyObtained: award.PhysicallyObtained,
		AwardedBy:          award.AwardedBy,
	})
	if err != nil {
		return domain.BadgeAward{}, fmt.Errorf("r.dao.InsertAward -> %w", err)
	}

	return r.awardDaoToDomain(created), nil
}

func (r *BadgeRepository) RevokeAward(ctx context.Context, id uint) error {
	if err := r.dao.DeleteAward(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteAward -> %w", err)
	}

	return nil
}

func (r *BadgeRepository) DeleteAwardsByScoutID(ctx context.Context, scoutID uint) error {
	if err := r.dao.DeleteAwardsByScoutID(ctx, scoutID); err != nil {
		return fmt.Errorf("r.dao.DeleteAwardsByScoutID -> %w", err)
	}

	return nil
}

func (r *BadgeRepository) FindAwardsByScoutID(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error) {
	found, err := r.dao.FindAwardsByScoutID(ctx, scoutID, physicallyObtained)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAwardsByScoutID -> %w", err)
	}

	awards := make([]domain.BadgeAward, 0, len(found))
	for _, a := range found {
		awards = append(awards, r.awardDaoToDomain(a))
	}

	return awards, nil
}

func (r *BadgeRepository) CountBadges(ctx context.Context) (int64, error) {
	count, err := r.dao.CountBadges(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBadges -> %w", err)
	}

	return count, nil
}

func (r *BadgeRepository) CountAwards(ctx context.Context, badgeType, badgeName string) (int64, error) {
	count, err := r.dao.CountAwards(ctx, badgeType, badgeName)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAwards -> %w", err)
	}

	return count, nil
}

func (r *BadgeRepository) daoToDomain(b dao.Badge) domain.Badge {
	return domain.Badge{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		BadgeType:    b.BadgeType,
		Requirements: b.Requirements,
		CreatedAt:    b.CreatedAt,
	}
}

func (r *BadgeRepository) awardDaoToDomain(a dao.ScoutBadge) domain.BadgeAward {
	award := domain.BadgeAward{
		ID:                 a.ID,
		ScoutID:            a.ScoutID,
		BadgeID:            a.BadgeID,
		DateEarned:         a.DateEarned,
		PhysicallyObtained: a.PhysicallyObtained,
		AwardedBy:          a.AwardedBy,
		CreatedAt:          a.CreatedAt,
	}

	if a.Badge.ID != 0 {
		badge := r.daoToDomain(a.Badge)
		award.Badge = &badge
	}

	return award
}
