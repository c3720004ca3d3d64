package service

import (
	"context"
	"fmt"
	"math"

	"github.com/tobscouts/troop-api/internal/domain"
)

type StatsScoutRepository interface {
	FindAll(ctx context.Context) ([]domain.Scout, error)
	CountAll(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type StatsAttendanceRepository interface {
	CountAll(ctx context.Context, activityType string) (int64, error)
	CountByScout(ctx context.Context, scoutID uint, activityType string) (int64, error)
}

type StatsBadgeRepository interface {
	CountBadges(ctx context.Context) (int64, error)
	CountAwards(ctx context.Context, badgeType, badgeName string) (int64, error)
}

type StatsNoticeRepository interface {
	CountActive(ctx context.Context) (int64, error)
}

// StatsService computes the aggregates the statistics and low-attendance
// pages used to assemble in the browser.
type StatsService struct {
	scouts     StatsScoutRepository
	attendance StatsAttendanceRepository
	badges     StatsBadgeRepository
	notices    StatsNoticeRepository
}

func NewStatsService(scouts StatsScoutRepository, attendance StatsAttendanceRepository, badges StatsBadgeRepository, notices StatsNoticeRepository) *StatsService {
	return &StatsService{
		scouts:     scouts,
		attendance: attendance,
		badges:     badges,
		notices:    notices,
	}
}

// Summary returns headline counts. badgeType and badgeName narrow the
// earned-badge count when non-empty.
func (s *StatsService) Summary(ctx context.Context, badgeType, badgeName string) (domain.TroopSummary, error) {
	totalScouts, err := s.scouts.CountAll(ctx)
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.scouts.CountAll -> %w", err)
	}

	totalLeaders, err := s.scouts.CountByRole(ctx, domain.RoleLeader)
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.scouts.CountByRole -> %w", err)
	}

	totalBadges, err := s.badges.CountBadges(ctx)
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.badges.CountBadges -> %w", err)
	}

	earned, err := s.badges.CountAwards(ctx, badgeType, badgeName)
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.badges.CountAwards -> %w", err)
	}

	activeNotices, err := s.notices.CountActive(ctx)
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.notices.CountActive -> %w", err)
	}

	totalActivities, err := s.attendance.CountAll(ctx, "")
	if err != nil {
		return domain.TroopSummary{}, fmt.Errorf("s.attendance.CountAll -> %w", err)
	}

	return domain.TroopSummary{
		TotalScouts:     totalScouts,
		TotalLeaders:    totalLeaders,
		TotalBadges:     totalBadges,
		EarnedBadges:    earned,
		ActiveNotices:   activeNotices,
		TotalActivities: totalActivities,
	}, nil
}

// AttendanceRates computes each scout's attendance percentage across all
// recorded activities, optionally restricted to one activity type.
func (s *StatsService) AttendanceRates(ctx context.Context, activityType string) ([]domain.ScoutAttendanceRate, error) {
	total, err := s.attendance.CountAll(ctx, activityType)
	if err != nil {
		return nil, fmt.Errorf("s.attendance.CountAll -> %w", err)
	}

	scouts, err := s.scouts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.scouts.FindAll -> %w", err)
	}

	rates := make([]domain.ScoutAttendanceRate, 0, len(scouts))
	for _, scout := range scouts {
		attended, err := s.attendance.CountByScout(ctx, scout.ID, activityType)
		if err != nil {
			return nil, fmt.Errorf("s.attendance.CountByScout -> %w", err)
		}

		var percent float64
		if total > 0 {
			percent = math.Round(float64(attended)/float64(total)*10000) / 100
		}

		rates = append(rates, domain.ScoutAttendanceRate{
			ScoutID:  scout.ID,
			FullName: scout.FullName,
			Email:    scout.Email,
			Attended: attended,
			Total:    total,
			Percent:  percent,
		})
	}

	return rates, nil
}

// LowAttendance lists scouts whose attendance percentage is strictly below
// threshold.
func (s *StatsService) LowAttendance(ctx context.Context, threshold float64, activityType string) ([]domain.ScoutAttendanceRate, error) {
	rates, err := s.AttendanceRates(ctx, activityType)
	if err != nil {
		return nil, err
	}

	var low []domain.ScoutAttendanceRate
	for _, rate := range rates {
		if rate.Percent < threshold {
			low = append(low, rate)
		}
	}

	return low, nil
}
