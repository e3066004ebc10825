package guest

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=guest_repo.go -destination=mock/guest_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, g *GuestPass) error
	FindAllByHost(ctx context.Context, hostUserID string) ([]GuestPass, error)
	Update(ctx context.Context, g *GuestPass) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *GuestPass) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindAllByHost(ctx context.Context, hostUserID string) ([]GuestPass, error) {
	var rows []GuestPass
	err := r.db.WithContext(ctx).
		Where("host_user_id = ?", hostUserID).
		Order("visit_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, g *GuestPass) error {
	return r.db.WithContext(ctx).Save(g).Error
}
