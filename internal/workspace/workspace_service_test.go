package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	workspaceerrors "worknest/internal/workspace/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, w *Workspace) error
	findByIDFn func(ctx context.Context, id string) (*Workspace, error)
	findAllFn  func(ctx context.Context, filter ListFilter) ([]Workspace, error)
	updateFn   func(ctx context.Context, w *Workspace) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                   { return f }
func (f *fakeRepo) Create(ctx context.Context, w *Workspace) error { return f.createFn(ctx, w) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Workspace, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Workspace, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) Update(ctx context.Context, w *Workspace) error { return f.updateFn(ctx, w) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error    { return f.deleteFn(ctx, id) }

func TestService_Create_DefaultsToActive(t *testing.T) {
	var saved Workspace
	repo := &fakeRepo{
		createFn: func(ctx context.Context, w *Workspace) error { saved = *w; return nil },
	}
	svc := NewService(repo, nil)

	resp, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		Name: "Desk A1",
		Kind: KindDesk,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, StatusActive, saved.Status)
	assert.Equal(t, 1, saved.Capacity)
}

func TestService_Create_RejectsUnknownKind(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, w *Workspace) error {
			t.Fatal("create must not be reached")
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		Name: "Cave",
		Kind: "cave",
	})
	assert.ErrorIs(t, err, workspaceerrors.ErrInvalidKind)
}

func TestService_GetAll_UsesListCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := []WorkspaceResponse{{ID: uuid.New().String(), Name: "Desk A1", Kind: KindDesk, Status: StatusActive}}
	payload, _ := json.Marshal(cached)
	mock.ExpectGet(listCacheKey).SetVal(string(payload))

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, filter ListFilter) ([]Workspace, error) {
			t.Fatal("repo must not be hit on cache hit")
			return nil, nil
		},
	}
	svc := NewService(repo, rdb)

	resp, err := svc.GetAll(context.Background(), ListFilter{})
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_FilterBypassesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, filter ListFilter) ([]Workspace, error) {
			assert.Equal(t, KindMeetingRoom, filter.Kind)
			return []Workspace{{ID: uuid.New(), Name: "Boardroom", Kind: KindMeetingRoom, Status: StatusActive}}, nil
		},
	}
	svc := NewService(repo, rdb)

	resp, err := svc.GetAll(context.Background(), ListFilter{Kind: KindMeetingRoom})
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_PartialMerge(t *testing.T) {
	id := uuid.New()
	existing := &Workspace{ID: id, Name: "Desk A1", Kind: KindDesk, Capacity: 1, Status: StatusActive}

	var saved Workspace
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, wid string) (*Workspace, error) { return existing, nil },
		updateFn:   func(ctx context.Context, w *Workspace) error { saved = *w; return nil },
	}
	svc := NewService(repo, nil)

	status := StatusMaintenance
	resp, err := svc.Update(context.Background(), id.String(), UpdateWorkspaceRequest{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, StatusMaintenance, resp.Status)
	assert.Equal(t, "Desk A1", saved.Name) // untouched fields survive
}

func TestService_Update_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Workspace, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New().String(), UpdateWorkspaceRequest{Name: &name})
	assert.ErrorIs(t, err, workspaceerrors.ErrWorkspaceNotFound)
}

func TestService_Delete_HardRemoval(t *testing.T) {
	id := uuid.New()
	deleted := false
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, wid string) (*Workspace, error) {
			return &Workspace{ID: id, Name: "Desk A1", Kind: KindDesk, Status: StatusActive}, nil
		},
		deleteFn: func(ctx context.Context, wid string) error {
			assert.Equal(t, id.String(), wid)
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, nil)

	assert.NoError(t, svc.Delete(context.Background(), id.String()))
	assert.True(t, deleted)
}
