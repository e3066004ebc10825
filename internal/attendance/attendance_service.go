package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	attendanceerrors "worknest/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID, employeeName string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetMine(ctx context.Context, employeeID string, page, limit int) ([]AttendanceResponse, int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn opens today's attendance record. A second check-in on the same UTC
// day returns the existing record together with ErrAlreadyCheckedIn so the
// client can show what it already has.
func (s *service) CheckIn(ctx context.Context, employeeID, employeeName string, req CheckInRequest) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if !ValidWorkMode(req.WorkMode) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidWorkMode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil {
		s.logger.Warn("duplicate check-in",
			zap.String("employee_id", employeeID),
			zap.Time("work_date", today),
		)
		return mapToResponse(*existing), attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:           uuid.New(),
		EmployeeID:   empUUID,
		EmployeeName: employeeName,
		WorkDate:     today,
		CheckInAt:    now,
		WorkMode:     req.WorkMode,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// Two concurrent check-ins race past the existence probe; the unique
		// index uq_attendance_employee_day decides the loser.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check-in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("work_mode", req.WorkMode),
	)

	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOutAt != nil {
		// Already closed; repeating the call changes nothing.
		return mapToResponse(*row), tx.Commit()
	}

	row.CheckOutAt = &now
	hours := roundHours(now.Sub(row.CheckInAt))
	row.TotalHours = &hours

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", hours),
	)

	return mapToResponse(*row), nil
}

// GetMine pages through the caller's history, most recent day first, and
// returns the total row count for the pagination envelope.
func (s *service) GetMine(ctx context.Context, employeeID string, page, limit int) ([]AttendanceResponse, int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, 0, attendanceerrors.ErrInvalidEmployeeID
	}

	total, err := s.repo.CountByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.repo.FindPageByEmployee(ctx, employeeID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID.String(),
		EmployeeName: a.EmployeeName,
		WorkDate:     a.WorkDate.Format("2006-01-02"),
		CheckInAt:    a.CheckInAt.Format(time.RFC3339),
		TotalHours:   a.TotalHours,
		WorkMode:     a.WorkMode,
	}
	if a.CheckOutAt != nil {
		v := a.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	return resp
}
