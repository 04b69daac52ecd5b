package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// ErrNoSlots is returned when a slot decrement would make available_slots
// negative.
var ErrNoSlots = errors.New("service has no available slots left")

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Category       string    `gorm:"column:category;index:idx_services_category_active"`
	Subcategory    string    `gorm:"column:subcategory"`
	Price          float64   `gorm:"column:price"`
	PriceUnit      string    `gorm:"column:price_unit"`
	Description    string    `gorm:"column:description;type:text"`
	MinAge         *int      `gorm:"column:min_age"`
	MaxAge         *int      `gorm:"column:max_age"`
	AvailableSlots *int      `gorm:"column:available_slots"`
	IsActive       bool      `gorm:"column:is_active;index:idx_services_category_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	s := &domain.Service{
		ID:             m.ID,
		Name:           m.Name,
		Category:       domain.ServiceCategory(m.Category),
		Subcategory:    m.Subcategory,
		Price:          m.Price,
		PriceUnit:      domain.PriceUnit(m.PriceUnit),
		Description:    m.Description,
		AvailableSlots: m.AvailableSlots,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.MinAge != nil || m.MaxAge != nil {
		s.AgeRestriction = &domain.AgeRestriction{MinAge: m.MinAge, MaxAge: m.MaxAge}
	}
	return s
}

func toServiceModel(s *domain.Service) serviceModel {
	m := serviceModel{
		ID:             s.ID,
		Name:           s.Name,
		Category:       string(s.Category),
		Subcategory:    s.Subcategory,
		Price:          s.Price,
		PriceUnit:      string(s.PriceUnit),
		Description:    s.Description,
		AvailableSlots: s.AvailableSlots,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.AgeRestriction != nil {
		m.MinAge = s.AgeRestriction.MinAge
		m.MaxAge = s.AgeRestriction.MaxAge
	}
	return m
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) List(ctx context.Context, category domain.ServiceCategory, activeOnly bool) ([]domain.Service, error) {
	var rows []serviceModel
	q := r.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		q = q.Where("category = ?", string(category))
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// FindBreakfast returns the active food/breakfast service used to price the
// breakfast add-on, or gorm.ErrRecordNotFound when none is configured.
func (r *ServiceRepository) FindBreakfast(ctx context.Context) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).
		Where("category = ? AND subcategory = ? AND is_active = ?", string(domain.ServiceFood), "breakfast", true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

// FindYogaSlot resolves a daily drop-in slot key (e.g. "morning-hatha") to
// the yoga service that prices it.
func (r *ServiceRepository) FindYogaSlot(ctx context.Context, slotKey string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).
		Where("category = ? AND subcategory = ? AND is_active = ?", string(domain.ServiceYoga), slotKey, true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	return r.db.WithContext(ctx).Save(&m).Error
}

// AdjustSlots shifts available_slots by delta for slot-limited services.
// Services with NULL available_slots are unlimited and untouched.
func (r *ServiceRepository) AdjustSlots(ctx context.Context, id int64, delta int) error {
	var m serviceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return err
	}
	if m.AvailableSlots == nil {
		return nil
	}

	tx := r.db.WithContext(ctx).Model(&serviceModel{}).
		Where("id = ?", id).
		Where("available_slots + ? >= 0", delta).
		Update("available_slots", gorm.Expr("available_slots + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNoSlots
	}
	return nil
}
