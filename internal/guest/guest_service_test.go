package guest

import (
	"context"
	"errors"
	"testing"
	"time"

	guesterrors "worknest/internal/guest/errors"
	"worknest/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, g *GuestPass) error
	findAllByHostFn func(ctx context.Context, hostUserID string) ([]GuestPass, error)
	updateFn        func(ctx context.Context, g *GuestPass) error
}

func (f *fakeRepo) Create(ctx context.Context, g *GuestPass) error { return f.createFn(ctx, g) }
func (f *fakeRepo) FindAllByHost(ctx context.Context, hostUserID string) ([]GuestPass, error) {
	return f.findAllByHostFn(ctx, hostUserID)
}
func (f *fakeRepo) Update(ctx context.Context, g *GuestPass) error { return f.updateFn(ctx, g) }

type sender struct {
	err   error
	calls int
	last  notification.Message
}

func (s *sender) Send(ctx context.Context, msg notification.Message) error {
	s.calls++
	s.last = msg
	return s.err
}

func futureVisit() string {
	return time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
}

func TestService_Create_SendsInvite(t *testing.T) {
	hostID := uuid.New().String()
	var saved GuestPass

	repo := &fakeRepo{
		createFn: func(ctx context.Context, g *GuestPass) error { saved = *g; return nil },
		updateFn: func(ctx context.Context, g *GuestPass) error { saved = *g; return nil },
	}
	snd := &sender{}

	svc := NewService(repo, snd)
	resp, err := svc.Create(context.Background(), hostID, "Alex Riley", CreateGuestPassRequest{
		GuestName:  "Jamie Doe",
		GuestEmail: "jamie@example.com",
		VisitDate:  futureVisit(),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusInvited, resp.Status)
	assert.Equal(t, 1, snd.calls)
	assert.Equal(t, "jamie@example.com", snd.last.To)
	assert.Contains(t, snd.last.Body, "Alex Riley")
	assert.Equal(t, 1, saved.EmailAttempts)
	assert.Nil(t, saved.EmailError)
}

func TestService_Create_InviteFailureIsNotSurfaced(t *testing.T) {
	hostID := uuid.New().String()
	var saved GuestPass

	repo := &fakeRepo{
		createFn: func(ctx context.Context, g *GuestPass) error { saved = *g; return nil },
		updateFn: func(ctx context.Context, g *GuestPass) error { saved = *g; return nil },
	}
	snd := &sender{err: errors.New("smtp unreachable")}

	svc := NewService(repo, snd)
	resp, err := svc.Create(context.Background(), hostID, "Alex Riley", CreateGuestPassRequest{
		GuestName:  "Jamie Doe",
		GuestEmail: "jamie@example.com",
		VisitDate:  futureVisit(),
	})

	// The pass is created even though the invite never went out.
	assert.NoError(t, err)
	assert.Equal(t, StatusInviteFailed, resp.Status)
	assert.Equal(t, 1, saved.EmailAttempts)
	assert.NotNil(t, saved.EmailError)
	assert.Contains(t, *saved.EmailError, "smtp unreachable")
}

func TestService_Create_RejectsPastVisitDate(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, g *GuestPass) error {
			t.Fatal("repo must not be reached")
			return nil
		},
	}

	svc := NewService(repo, &sender{})
	_, err := svc.Create(context.Background(), uuid.New().String(), "Alex Riley", CreateGuestPassRequest{
		GuestName:  "Jamie Doe",
		GuestEmail: "jamie@example.com",
		VisitDate:  "2020-01-01",
	})

	assert.ErrorIs(t, err, guesterrors.ErrVisitDateInPast)
}

func TestService_Create_RejectsMalformedVisitDate(t *testing.T) {
	svc := NewService(&fakeRepo{}, &sender{})
	_, err := svc.Create(context.Background(), uuid.New().String(), "Alex Riley", CreateGuestPassRequest{
		GuestName:  "Jamie Doe",
		GuestEmail: "jamie@example.com",
		VisitDate:  "01/02/2026",
	})

	assert.ErrorIs(t, err, guesterrors.ErrInvalidVisitDate)
}

func TestService_GetMine(t *testing.T) {
	hostID := uuid.New()
	repo := &fakeRepo{
		findAllByHostFn: func(ctx context.Context, id string) ([]GuestPass, error) {
			assert.Equal(t, hostID.String(), id)
			return []GuestPass{{ID: uuid.New(), HostUserID: hostID, Status: StatusInvited, VisitDate: time.Now()}}, nil
		},
	}

	svc := NewService(repo, &sender{})
	resp, err := svc.GetMine(context.Background(), hostID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, StatusInvited, resp[0].Status)
}
