package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=analytics_repo.go -destination=mock/analytics_repo_mock.go -package=mock
type Repository interface {
	CountBookingsByStatus(ctx context.Context) (map[string]int64, error)
	CountWorkspaces(ctx context.Context) (total, occupied int64, err error)
	AttendanceForDay(ctx context.Context, day time.Time) (checkedIn int64, avgHours float64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountBookingsByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *repository) CountWorkspaces(ctx context.Context) (int64, int64, error) {
	var total, occupied int64
	if err := r.db.WithContext(ctx).Table("workspaces").Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).
		Table("workspaces").
		Where("occupied_from IS NOT NULL").
		Count(&occupied).Error
	return total, occupied, err
}

func (r *repository) AttendanceForDay(ctx context.Context, day time.Time) (int64, float64, error) {
	type row struct {
		CheckedIn int64
		AvgHours  float64
	}
	var res row
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("COUNT(*) AS checked_in, COALESCE(AVG(total_hours), 0) AS avg_hours").
		Where("work_date = ?", day).
		Scan(&res).Error
	return res.CheckedIn, res.AvgHours, err
}
