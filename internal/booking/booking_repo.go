package booking

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=booking_repo.go -destination=mock/booking_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	FindAllByUser(ctx context.Context, userID string) ([]Booking, error)
	FindConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]Booking, error)
	Update(ctx context.Context, b *Booking) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error
	return &b, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindConfirmedEndedBefore drives the expiration sweep. Filtering on status
// here is what makes the sweep idempotent.
func (r *repository) FindConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusConfirmed).
		Where("end_at < ?", cutoff).
		Order("end_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}
