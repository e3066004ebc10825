package workspace

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workspace_repo.go -destination=mock/workspace_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Workspace) error
	FindByID(ctx context.Context, id string) (*Workspace, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Workspace, error)
	Update(ctx context.Context, w *Workspace) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open *sql.Tx so workspace writes join
// the caller's transaction (booking create/cancel touch two tables).
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, w *Workspace) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Workspace, error) {
	var w Workspace
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&w).Error
	return &w, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Workspace, error) {
	q := r.db.WithContext(ctx)
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Workspace
	err := q.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, w *Workspace) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete is a hard removal; the registry keeps no tombstones.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Workspace{}).Error
}
