package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// ErrUsageLimitReached is returned when an increment would exceed the
// coupon's usage cap.
var ErrUsageLimitReached = errors.New("coupon usage limit reached")

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

type couponModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Code               string    `gorm:"column:code;uniqueIndex;not null"`
	Description        string    `gorm:"column:description;type:text"`
	DiscountType       string    `gorm:"column:discount_type"`
	DiscountValue      float64   `gorm:"column:discount_value"`
	ApplicableServices string    `gorm:"column:applicable_services;type:text"`
	MinOrderValue      float64   `gorm:"column:min_order_value"`
	MaxDiscount        *float64  `gorm:"column:max_discount"`
	ValidFrom          time.Time `gorm:"column:valid_from;index"`
	ValidUntil         time.Time `gorm:"column:valid_until;index"`
	UsageLimit         *int      `gorm:"column:usage_limit"`
	CurrentUsageCount  int       `gorm:"column:current_usage_count"`
	IsActive           bool      `gorm:"column:is_active;index"`
	CreatedBy          int64     `gorm:"column:created_by"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (couponModel) TableName() string { return "coupons" }

func toDomainCoupon(m couponModel) *domain.Coupon {
	c := &domain.Coupon{
		ID:                m.ID,
		Code:              m.Code,
		Description:       m.Description,
		DiscountType:      domain.DiscountType(m.DiscountType),
		DiscountValue:     m.DiscountValue,
		MinOrderValue:     m.MinOrderValue,
		MaxDiscount:       m.MaxDiscount,
		ValidFrom:         m.ValidFrom,
		ValidUntil:        m.ValidUntil,
		UsageLimit:        m.UsageLimit,
		CurrentUsageCount: m.CurrentUsageCount,
		IsActive:          m.IsActive,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.ApplicableServices != "" {
		_ = json.Unmarshal([]byte(m.ApplicableServices), &c.ApplicableServices)
	}
	return c
}

func toCouponModel(c *domain.Coupon) couponModel {
	m := couponModel{
		ID:                c.ID,
		Code:              strings.ToUpper(c.Code),
		Description:       c.Description,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderValue:     c.MinOrderValue,
		MaxDiscount:       c.MaxDiscount,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		UsageLimit:        c.UsageLimit,
		CurrentUsageCount: c.CurrentUsageCount,
		IsActive:          c.IsActive,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	if len(c.ApplicableServices) > 0 {
		raw, _ := json.Marshal(c.ApplicableServices)
		m.ApplicableServices = string(raw)
	}
	return m
}

// CouponFilter holds named optional filters for admin listing; each set
// field maps to one WHERE clause.
type CouponFilter struct {
	IsActive     *bool
	DiscountType domain.DiscountType
	ServiceType  domain.ServiceType
	ValidAt      *time.Time
	Limit        int
	Offset       int
}

func (f CouponFilter) apply(q *gorm.DB) *gorm.DB {
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.DiscountType != "" {
		q = q.Where("discount_type = ?", string(f.DiscountType))
	}
	if f.ServiceType != "" {
		// applicable_services is a JSON array of strings.
		q = q.Where("applicable_services LIKE ?", "%\""+string(f.ServiceType)+"\"%")
	}
	if f.ValidAt != nil {
		q = q.Where("valid_from <= ? AND valid_until >= ?", *f.ValidAt, *f.ValidAt)
	}
	return q
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	m := toCouponModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return gorm.ErrDuplicatedKey
		}
		return err
	}
	*c = *toDomainCoupon(m)
	return nil
}

func (r *CouponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	var m couponModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCoupon(m), nil
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var m couponModel
	tx := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCoupon(m), nil
}

func (r *CouponRepository) List(ctx context.Context, f CouponFilter) ([]domain.Coupon, error) {
	var rows []couponModel
	q := f.apply(r.db.WithContext(ctx).Model(&couponModel{})).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Coupon, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCoupon(m))
	}
	return out, nil
}

func (r *CouponRepository) Count(ctx context.Context, f CouponFilter) (int64, error) {
	var n int64
	err := f.apply(r.db.WithContext(ctx).Model(&couponModel{})).Count(&n).Error
	return n, err
}

func (r *CouponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	m := toCouponModel(c)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&couponModel{}, id).Error
}

// IncrementUsage bumps current_usage_count, guarded so it can never pass the
// usage limit even under concurrent bookings.
func (r *CouponRepository) IncrementUsage(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&couponModel{}).
		Where("id = ?", id).
		Where("usage_limit IS NULL OR current_usage_count < usage_limit").
		Update("current_usage_count", gorm.Expr("current_usage_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUsageLimitReached
	}
	return nil
}

func (r *CouponRepository) DecrementUsage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&couponModel{}).
		Where("id = ?", id).
		Where("current_usage_count > 0").
		Update("current_usage_count", gorm.Expr("current_usage_count - 1")).Error
}
