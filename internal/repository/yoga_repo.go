package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// ErrSeatCapacity is returned when a seat adjustment would push booked seats
// below zero or above capacity.
var ErrSeatCapacity = errors.New("yoga session seat capacity violated")

type YogaSessionRepository struct {
	db *gorm.DB
}

func NewYogaSessionRepository(db *gorm.DB) *YogaSessionRepository {
	return &YogaSessionRepository{db: db}
}

type yogaSessionModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Type        string    `gorm:"column:type"`
	BatchName   string    `gorm:"column:batch_name"`
	StartDate   time.Time `gorm:"column:start_date;index"`
	EndDate     time.Time `gorm:"column:end_date"`
	Capacity    int       `gorm:"column:capacity"`
	BookedSeats int       `gorm:"column:booked_seats"`
	Price       float64   `gorm:"column:price"`
	Instructor  string    `gorm:"column:instructor"`
	IsActive    bool      `gorm:"column:is_active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (yogaSessionModel) TableName() string { return "yoga_sessions" }

func toDomainYogaSession(m yogaSessionModel) *domain.YogaSession {
	return &domain.YogaSession{
		ID:          m.ID,
		Type:        domain.YogaSessionType(m.Type),
		BatchName:   m.BatchName,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Capacity:    m.Capacity,
		BookedSeats: m.BookedSeats,
		Price:       m.Price,
		Instructor:  m.Instructor,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toYogaSessionModel(s *domain.YogaSession) yogaSessionModel {
	return yogaSessionModel{
		ID:          s.ID,
		Type:        string(s.Type),
		BatchName:   s.BatchName,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Capacity:    s.Capacity,
		BookedSeats: s.BookedSeats,
		Price:       s.Price,
		Instructor:  s.Instructor,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *YogaSessionRepository) Create(ctx context.Context, s *domain.YogaSession) error {
	m := toYogaSessionModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainYogaSession(m)
	return nil
}

func (r *YogaSessionRepository) GetByID(ctx context.Context, id int64) (*domain.YogaSession, error) {
	var m yogaSessionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainYogaSession(m), nil
}

func (r *YogaSessionRepository) List(ctx context.Context, activeOnly bool) ([]domain.YogaSession, error) {
	var rows []yogaSessionModel
	q := r.db.WithContext(ctx).Order("start_date ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.YogaSession, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainYogaSession(m))
	}
	return out, nil
}

func (r *YogaSessionRepository) Update(ctx context.Context, s *domain.YogaSession) error {
	m := toYogaSessionModel(s)
	return r.db.WithContext(ctx).Save(&m).Error
}

// AddBookedSeats atomically shifts booked_seats by delta. The WHERE clause
// guards the 0 <= booked_seats <= capacity invariant; a violated guard
// touches no rows and surfaces as ErrSeatCapacity.
func (r *YogaSessionRepository) AddBookedSeats(ctx context.Context, id int64, delta int) error {
	tx := r.db.WithContext(ctx).Model(&yogaSessionModel{}).
		Where("id = ?", id).
		Where("booked_seats + ? >= 0", delta).
		Where("booked_seats + ? <= capacity", delta).
		Update("booked_seats", gorm.Expr("booked_seats + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrSeatCapacity
	}
	return nil
}
