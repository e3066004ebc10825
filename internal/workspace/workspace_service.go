package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	workspaceerrors "worknest/internal/workspace/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	listCacheKey = "worknest:workspaces:all"
	listCacheTTL = 30 * time.Second
)

//go:generate mockgen -source=workspace_service.go -destination=mock/workspace_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateWorkspaceRequest) (WorkspaceResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]WorkspaceResponse, error)
	GetByID(ctx context.Context, id string) (WorkspaceResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkspaceRequest) (WorkspaceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewService builds the registry service. rdb may be nil; the list cache is
// then skipped entirely.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("workspace.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workspace.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateWorkspaceRequest) (WorkspaceResponse, error) {
	if !ValidKind(req.Kind) {
		return WorkspaceResponse{}, workspaceerrors.ErrInvalidKind
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return WorkspaceResponse{}, workspaceerrors.ErrInvalidCapacity
	}

	w := &Workspace{
		ID:        uuid.New(),
		Name:      req.Name,
		Kind:      req.Kind,
		Capacity:  capacity,
		Amenities: req.Amenities,
		Location:  req.Location,
		Status:    StatusActive,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error("create workspace persist failed", zap.Error(err))
		return WorkspaceResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create workspace success",
		zap.String("workspace_id", w.ID.String()),
		zap.String("kind", w.Kind),
	)
	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]WorkspaceResponse, error) {
	unfiltered := filter.Kind == "" && filter.Status == ""

	if unfiltered && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, listCacheKey).Result(); err == nil {
			var res []WorkspaceResponse
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				return res, nil
			}
		}
	}

	if filter.Kind != "" && !ValidKind(filter.Kind) {
		return nil, workspaceerrors.ErrInvalidKind
	}
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, workspaceerrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]WorkspaceResponse, len(rows))
	for i, w := range rows {
		res[i] = mapToResponse(w)
	}

	if unfiltered && s.rdb != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := s.rdb.Set(ctx, listCacheKey, payload, listCacheTTL).Err(); err != nil {
				s.logger.Warn("workspace list cache set failed", zap.Error(err))
			}
		}
	}

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkspaceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkspaceResponse{}, workspaceerrors.ErrInvalidWorkspaceID
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkspaceResponse{}, workspaceerrors.ErrWorkspaceNotFound
		}
		return WorkspaceResponse{}, err
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkspaceRequest) (WorkspaceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkspaceResponse{}, workspaceerrors.ErrInvalidWorkspaceID
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkspaceResponse{}, workspaceerrors.ErrWorkspaceNotFound
		}
		return WorkspaceResponse{}, err
	}

	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.Kind != nil {
		if !ValidKind(*req.Kind) {
			return WorkspaceResponse{}, workspaceerrors.ErrInvalidKind
		}
		w.Kind = *req.Kind
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return WorkspaceResponse{}, workspaceerrors.ErrInvalidCapacity
		}
		w.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		w.Amenities = *req.Amenities
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return WorkspaceResponse{}, workspaceerrors.ErrInvalidStatus
		}
		w.Status = *req.Status
	}

	if err := s.repo.Update(ctx, w); err != nil {
		s.logger.Error("update workspace persist failed",
			zap.String("workspace_id", id),
			zap.Error(err),
		)
		return WorkspaceResponse{}, err
	}

	s.invalidateListCache(ctx)
	return mapToResponse(*w), nil
}

// Delete removes the record outright. Outstanding bookings are not checked;
// the ledger keeps its rows for history either way.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return workspaceerrors.ErrInvalidWorkspaceID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workspaceerrors.ErrWorkspaceNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("delete workspace success", zap.String("workspace_id", id))
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("workspace list cache invalidate failed", zap.Error(err))
	}
}

func mapToResponse(w Workspace) WorkspaceResponse {
	resp := WorkspaceResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		Kind:      w.Kind,
		Capacity:  w.Capacity,
		Amenities: w.Amenities,
		Location:  w.Location,
		Status:    w.Status,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
	if w.OccupiedFrom != nil {
		v := w.OccupiedFrom.Format(time.RFC3339)
		resp.OccupiedFrom = &v
	}
	if w.OccupiedUntil != nil {
		v := w.OccupiedUntil.Format(time.RFC3339)
		resp.OccupiedUntil = &v
	}
	return resp
}
