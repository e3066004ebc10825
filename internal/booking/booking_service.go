package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	bookingerrors "worknest/internal/booking/errors"
	"worknest/internal/events"
	"worknest/internal/messaging/kafka"
	"worknest/internal/shared/contextutil"
	"worknest/internal/workspace"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=booking_service.go -destination=mock/booking_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateBookingRequest) (BookingResponse, error)
	Cancel(ctx context.Context, id string) (BookingResponse, error)
	CheckIn(ctx context.Context, id string) (BookingResponse, error)
	CheckOut(ctx context.Context, id string) (BookingResponse, error)
	ListMine(ctx context.Context, userID string) (MyBookingsResponse, error)
	ExpireSweep(ctx context.Context) (int, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	workspaces workspace.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
	now        func() time.Time
}

// Option adjusts a service beyond its required collaborators.
type Option func(*service)

// WithLogger replaces the process-global logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("booking.service")
		}
	}
}

// WithClock replaces the time source. Window checks and the expiration sweep
// read every timestamp through it.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db *sql.DB, repo Repository, workspaces workspace.Repository, opts ...Option) Service {
	return NewServiceWithOutbox(db, repo, workspaces, nil, opts...)
}

// NewServiceWithOutbox persists a lifecycle event in the same transaction as
// every state transition; pass a nil outbox to disable eventing.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	workspaces workspace.Repository,
	outbox kafka.OutboxRepository,
	opts ...Option,
) Service {
	s := &service{
		db:         db,
		repo:       repo,
		workspaces: workspaces,
		outbox:     outbox,
		logger:     zap.L().Named("booking.service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, userID string, req CreateBookingRequest) (BookingResponse, error) {
	s.logger.Debug("create booking requested",
		zap.String("user_id", userID),
		zap.String("workspace_id", req.WorkspaceID),
		zap.String("start_at", req.StartAt),
		zap.String("end_at", req.EndAt),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return BookingResponse{}, bookingerrors.ErrInvalidUserID
	}
	workspaceUUID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		return BookingResponse{}, bookingerrors.ErrInvalidWorkspaceID
	}
	startAt, endAt, err := parseWindow(req.StartAt, req.EndAt)
	if err != nil {
		s.logger.Warn("create booking validation failed", zap.Error(err))
		return BookingResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create booking begin tx failed", zap.Error(err))
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workspaces.WithTx(tx)

	ws, err := wtx.FindByID(ctx, req.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, bookingerrors.ErrWorkspaceNotFound
		}
		return BookingResponse{}, err
	}
	if ws.Status != workspace.StatusActive {
		s.logger.Warn("create booking workspace unavailable",
			zap.String("workspace_id", req.WorkspaceID),
			zap.String("workspace_status", ws.Status),
		)
		return BookingResponse{}, bookingerrors.ErrWorkspaceUnavailable
	}

	b := &Booking{
		ID:          uuid.New(),
		WorkspaceID: workspaceUUID,
		UserID:      userUUID,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      StatusConfirmed,
	}
	if req.Calendar != nil {
		syncedAt := s.now()
		b.CalendarProvider = &req.Calendar.Provider
		b.CalendarEventID = &req.Calendar.EventID
		b.CalendarSyncedAt = &syncedAt
	}

	if err := qtx.Create(ctx, b); err != nil {
		s.logger.Error("create booking persist failed", zap.Error(err))
		return BookingResponse{}, err
	}

	// Single-active-booking policy: the workspace record itself carries the
	// occupying window instead of a calendar of future reservations.
	ws.Status = workspace.StatusInactive
	ws.OccupiedFrom = &b.StartAt
	ws.OccupiedUntil = &b.EndAt
	if err := wtx.Update(ctx, ws); err != nil {
		s.logger.Error("create booking workspace flip failed", zap.Error(err))
		return BookingResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.BookingCreated, b); err != nil {
		return BookingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create booking commit failed", zap.Error(err))
		return BookingResponse{}, err
	}
	s.logger.Info("create booking success",
		zap.String("booking_id", b.ID.String()),
		zap.String("workspace_id", req.WorkspaceID),
		zap.String("user_id", userID),
	)

	return mapToResponse(*b), nil
}

func (s *service) Cancel(ctx context.Context, id string) (BookingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BookingResponse{}, bookingerrors.ErrInvalidBookingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel booking begin tx failed", zap.Error(err))
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workspaces.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, bookingerrors.ErrBookingNotFound
		}
		return BookingResponse{}, err
	}
	// Terminal states are monotonic; a cancelled or expired booking never
	// comes back.
	if IsTerminal(b.Status) {
		return BookingResponse{}, bookingerrors.ErrBookingNotConfirmed
	}

	b.Status = StatusCancelled
	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("cancel booking persist failed", zap.String("booking_id", id), zap.Error(err))
		return BookingResponse{}, err
	}

	if err := s.releaseWorkspace(ctx, wtx, b.WorkspaceID.String()); err != nil {
		return BookingResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.BookingCancelled, b); err != nil {
		return BookingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel booking commit failed", zap.String("booking_id", id), zap.Error(err))
		return BookingResponse{}, err
	}
	s.logger.Info("cancel booking success", zap.String("booking_id", id))

	return mapToResponse(*b), nil
}

func (s *service) CheckIn(ctx context.Context, id string) (BookingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BookingResponse{}, bookingerrors.ErrInvalidBookingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, bookingerrors.ErrBookingNotFound
		}
		return BookingResponse{}, err
	}
	if IsTerminal(b.Status) {
		return BookingResponse{}, bookingerrors.ErrBookingNotConfirmed
	}
	if b.CheckedInAt != nil {
		// Duplicate check-in is a no-op, not an error.
		return mapToResponse(*b), tx.Commit()
	}

	now := s.now()
	if now.Before(b.StartAt) || !now.Before(b.EndAt) {
		s.logger.Warn("booking check-in outside window",
			zap.String("booking_id", id),
			zap.Time("now", now),
			zap.Time("start_at", b.StartAt),
			zap.Time("end_at", b.EndAt),
		)
		return BookingResponse{}, bookingerrors.ErrOutsideBookingWindow
	}

	b.CheckedInAt = &now
	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("booking check-in persist failed", zap.String("booking_id", id), zap.Error(err))
		return BookingResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return BookingResponse{}, err
	}
	s.logger.Info("booking check-in success", zap.String("booking_id", id))

	return mapToResponse(*b), nil
}

func (s *service) CheckOut(ctx context.Context, id string) (BookingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BookingResponse{}, bookingerrors.ErrInvalidBookingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workspaces.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, bookingerrors.ErrBookingNotFound
		}
		return BookingResponse{}, err
	}
	if IsTerminal(b.Status) {
		return BookingResponse{}, bookingerrors.ErrBookingNotConfirmed
	}
	if b.CheckedInAt == nil {
		return BookingResponse{}, bookingerrors.ErrNotCheckedIn
	}

	now := s.now()
	b.CheckedOutAt = &now
	b.Status = StatusCompleted
	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("booking check-out persist failed", zap.String("booking_id", id), zap.Error(err))
		return BookingResponse{}, err
	}

	if err := s.releaseWorkspace(ctx, wtx, b.WorkspaceID.String()); err != nil {
		return BookingResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.BookingCompleted, b); err != nil {
		return BookingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BookingResponse{}, err
	}
	s.logger.Info("booking check-out success", zap.String("booking_id", id))

	return mapToResponse(*b), nil
}

func (s *service) ListMine(ctx context.Context, userID string) (MyBookingsResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return MyBookingsResponse{}, bookingerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return MyBookingsResponse{}, err
	}

	now := s.now()
	res := MyBookingsResponse{
		Upcoming: []BookingResponse{},
		Past:     []BookingResponse{},
	}
	for _, b := range rows {
		if b.Status == StatusConfirmed && b.EndAt.After(now) {
			res.Upcoming = append(res.Upcoming, mapToResponse(b))
		} else {
			res.Past = append(res.Past, mapToResponse(b))
		}
	}
	return res, nil
}

// ExpireSweep moves every confirmed booking whose window has closed to
// expired and frees its workspace. Safe to run repeatedly: the query only
// sees confirmed rows, so a second pass finds nothing to do.
func (s *service) ExpireSweep(ctx context.Context) (int, error) {
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("expire sweep begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workspaces.WithTx(tx)

	due, err := qtx.FindConfirmedEndedBefore(ctx, now)
	if err != nil {
		s.logger.Error("expire sweep query failed", zap.Error(err))
		return 0, err
	}
	if len(due) == 0 {
		return 0, tx.Commit()
	}

	for i := range due {
		b := &due[i]
		b.Status = StatusExpired
		if err := qtx.Update(ctx, b); err != nil {
			s.logger.Error("expire sweep persist failed", zap.String("booking_id", b.ID.String()), zap.Error(err))
			return 0, err
		}

		if err := s.releaseWorkspace(ctx, wtx, b.WorkspaceID.String()); err != nil {
			return 0, err
		}

		if err := s.queueLifecycleEvent(ctx, tx, events.BookingExpired, b); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("expire sweep commit failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("expire sweep success", zap.Int("expired", len(due)))

	return len(due), nil
}

// releaseWorkspace puts a workspace back in rotation after its occupying
// booking reached a terminal state. A workspace that was hard-deleted in the
// meantime is skipped; the booking transition still stands.
func (s *service) releaseWorkspace(ctx context.Context, wtx workspace.Repository, workspaceID string) error {
	ws, err := wtx.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("release workspace skipped, workspace gone", zap.String("workspace_id", workspaceID))
			return nil
		}
		return err
	}

	ws.Status = workspace.StatusActive
	ws.OccupiedFrom = nil
	ws.OccupiedUntil = nil
	if err := wtx.Update(ctx, ws); err != nil {
		s.logger.Error("release workspace persist failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, b *Booking) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.BookingLifecycleEvent{
		EventType:   eventType,
		BookingID:   b.ID.String(),
		WorkspaceID: b.WorkspaceID.String(),
		UserID:      b.UserID.String(),
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		OccurredAt:  s.now(),
	})
	if err != nil {
		return err
	}

	evt := kafka.NewBookingEvent(contextutil.GetRequestID(ctx), b.ID.String(), eventType, payload)
	if err := kafka.ValidateOutboxEvent(evt); err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("booking outbox persist failed",
			zap.String("booking_id", b.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseWindow(start, end string) (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, bookingerrors.ErrInvalidTimeFormat
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, bookingerrors.ErrInvalidTimeFormat
	}
	if !startAt.Before(endAt) {
		return time.Time{}, time.Time{}, bookingerrors.ErrInvalidTimeRange
	}
	return startAt.UTC(), endAt.UTC(), nil
}

func mapToResponse(b Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID.String(),
		WorkspaceID:      b.WorkspaceID.String(),
		UserID:           b.UserID.String(),
		StartAt:          b.StartAt.Format(time.RFC3339),
		EndAt:            b.EndAt.Format(time.RFC3339),
		Status:           b.Status,
		CalendarProvider: b.CalendarProvider,
		CalendarEventID:  b.CalendarEventID,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if b.CheckedInAt != nil {
		v := b.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &v
	}
	if b.CheckedOutAt != nil {
		v := b.CheckedOutAt.Format(time.RFC3339)
		resp.CheckedOutAt = &v
	}
	return resp
}
