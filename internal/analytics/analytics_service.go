package analytics

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context) (SummaryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Summary(ctx context.Context) (SummaryResponse, error) {
	byStatus, err := s.repo.CountBookingsByStatus(ctx)
	if err != nil {
		s.logger.Error("booking counts failed", zap.Error(err))
		return SummaryResponse{}, err
	}
	var totalBookings int64
	for _, n := range byStatus {
		totalBookings += n
	}

	totalWs, occupied, err := s.repo.CountWorkspaces(ctx)
	if err != nil {
		s.logger.Error("workspace counts failed", zap.Error(err))
		return SummaryResponse{}, err
	}
	var rate float64
	if totalWs > 0 {
		rate = math.Round(float64(occupied)/float64(totalWs)*10000) / 10000
	}

	today := s.now().Truncate(24 * time.Hour)
	checkedIn, avgHours, err := s.repo.AttendanceForDay(ctx, today)
	if err != nil {
		s.logger.Error("attendance stats failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	return SummaryResponse{
		Bookings: BookingStats{
			Total:    totalBookings,
			ByStatus: byStatus,
		},
		Workspaces: WorkspaceStats{
			Total:         totalWs,
			Occupied:      occupied,
			OccupancyRate: rate,
		},
		Attendance: AttendanceStats{
			CheckedInToday: checkedIn,
			AverageHours:   math.Round(avgHours*100) / 100,
		},
	}, nil
}
