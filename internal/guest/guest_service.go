package guest

import (
	"context"
	"fmt"
	"time"

	guesterrors "worknest/internal/guest/errors"
	"worknest/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=guest_service.go -destination=mock/guest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, hostUserID, hostName string, req CreateGuestPassRequest) (GuestPassResponse, error)
	GetMine(ctx context.Context, hostUserID string) ([]GuestPassResponse, error)
}

type service struct {
	repo   Repository
	sender notification.Sender
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, sender notification.Sender, logger ...*zap.Logger) Service {
	l := zap.L().Named("guest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("guest.service")
	}
	return &service{
		repo:   repo,
		sender: sender,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create registers the pass and then tries to email the invite. The send is
// best-effort: a failure is recorded on the pass and logged, never returned,
// so the visit stands regardless of the mail path.
func (s *service) Create(ctx context.Context, hostUserID, hostName string, req CreateGuestPassRequest) (GuestPassResponse, error) {
	hostUUID, err := uuid.Parse(hostUserID)
	if err != nil {
		return GuestPassResponse{}, guesterrors.ErrInvalidHostID
	}
	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		return GuestPassResponse{}, guesterrors.ErrInvalidVisitDate
	}
	if visitDate.Before(s.now().Truncate(24 * time.Hour)) {
		return GuestPassResponse{}, guesterrors.ErrVisitDateInPast
	}

	pass := &GuestPass{
		ID:         uuid.New(),
		HostUserID: hostUUID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		VisitDate:  visitDate,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, pass); err != nil {
		s.logger.Error("guest pass persist failed", zap.Error(err))
		return GuestPassResponse{}, err
	}

	s.sendInvite(ctx, pass, hostName)

	return mapToResponse(*pass), nil
}

func (s *service) GetMine(ctx context.Context, hostUserID string) ([]GuestPassResponse, error) {
	if _, err := uuid.Parse(hostUserID); err != nil {
		return nil, guesterrors.ErrInvalidHostID
	}

	rows, err := s.repo.FindAllByHost(ctx, hostUserID)
	if err != nil {
		return nil, err
	}
	res := make([]GuestPassResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) sendInvite(ctx context.Context, pass *GuestPass, hostName string) {
	msg := notification.Message{
		To:      pass.GuestEmail,
		Subject: "Your workspace visit invitation",
		Body: fmt.Sprintf(
			"%s invited you to visit on %s. Show this pass at reception: %s",
			hostName, pass.VisitDate.Format("2006-01-02"), pass.ID,
		),
	}

	pass.EmailAttempts++
	if err := s.sender.Send(ctx, msg); err != nil {
		reason := err.Error()
		pass.Status = StatusInviteFailed
		pass.EmailError = &reason
		s.logger.Warn("guest invite send failed",
			zap.String("guest_pass_id", pass.ID.String()),
			zap.Error(err),
		)
	} else {
		pass.Status = StatusInvited
		pass.EmailError = nil
	}

	if err := s.repo.Update(ctx, pass); err != nil {
		// Outcome bookkeeping only; the pass itself is already committed.
		s.logger.Warn("guest invite status persist failed",
			zap.String("guest_pass_id", pass.ID.String()),
			zap.Error(err),
		)
	}
}

func mapToResponse(g GuestPass) GuestPassResponse {
	return GuestPassResponse{
		ID:         g.ID.String(),
		HostUserID: g.HostUserID.String(),
		GuestName:  g.GuestName,
		GuestEmail: g.GuestEmail,
		VisitDate:  g.VisitDate.Format("2006-01-02"),
		Status:     g.Status,
		CreatedAt:  g.CreatedAt.Format(time.RFC3339),
	}
}
