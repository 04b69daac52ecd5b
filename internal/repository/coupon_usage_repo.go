package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// ErrUsageExists is returned when the identity already redeemed the coupon.
var ErrUsageExists = errors.New("coupon already used by this customer")

type CouponUsageRepository struct {
	db *gorm.DB
}

func NewCouponUsageRepository(db *gorm.DB) *CouponUsageRepository {
	return &CouponUsageRepository{db: db}
}

type couponUsageModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	CouponID       int64     `gorm:"column:coupon_id;uniqueIndex:uidx_coupon_user;uniqueIndex:uidx_coupon_phone"`
	UserID         *int64    `gorm:"column:user_id;uniqueIndex:uidx_coupon_user"`
	PhoneNumber    *string   `gorm:"column:phone_number;uniqueIndex:uidx_coupon_phone"`
	Email          string    `gorm:"column:email;index"`
	BookingID      int64     `gorm:"column:booking_id;index"`
	DiscountAmount float64   `gorm:"column:discount_amount"`
	OrderValue     float64   `gorm:"column:order_value"`
	ServiceType    string    `gorm:"column:service_type"`
	UsedAt         time.Time `gorm:"column:used_at"`
}

func (couponUsageModel) TableName() string { return "coupon_usages" }

func toDomainCouponUsage(m couponUsageModel) *domain.CouponUsage {
	phone := ""
	if m.PhoneNumber != nil {
		phone = *m.PhoneNumber
	}
	return &domain.CouponUsage{
		ID:             m.ID,
		CouponID:       m.CouponID,
		UserID:         m.UserID,
		PhoneNumber:    phone,
		Email:          m.Email,
		BookingID:      m.BookingID,
		DiscountAmount: m.DiscountAmount,
		OrderValue:     m.OrderValue,
		ServiceType:    domain.ServiceType(m.ServiceType),
		UsedAt:         m.UsedAt,
	}
}

func toCouponUsageModel(u *domain.CouponUsage) couponUsageModel {
	// Empty phone is stored as NULL so unrelated guests never collide on
	// the phone uniqueness index.
	var phone *string
	if u.PhoneNumber != "" {
		phone = &u.PhoneNumber
	}
	return couponUsageModel{
		ID:             u.ID,
		CouponID:       u.CouponID,
		UserID:         u.UserID,
		PhoneNumber:    phone,
		Email:          u.Email,
		BookingID:      u.BookingID,
		DiscountAmount: u.DiscountAmount,
		OrderValue:     u.OrderValue,
		ServiceType:    string(u.ServiceType),
		UsedAt:         u.UsedAt,
	}
}

// Exists reports whether the coupon was already redeemed by the given user
// account or phone number.
func (r *CouponUsageRepository) Exists(ctx context.Context, couponID int64, userID *int64, phone string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&couponUsageModel{}).Where("coupon_id = ?", couponID)
	switch {
	case userID != nil && phone != "":
		q = q.Where("user_id = ? OR phone_number = ?", *userID, phone)
	case userID != nil:
		q = q.Where("user_id = ?", *userID)
	case phone != "":
		q = q.Where("phone_number = ?", phone)
	default:
		return false, nil
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create records a redemption. The unique indexes back up the Exists check
// against concurrent redemptions of the same coupon.
func (r *CouponUsageRepository) Create(ctx context.Context, u *domain.CouponUsage) error {
	m := toCouponUsageModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUsageExists
		}
		return err
	}
	*u = *toDomainCouponUsage(m)
	return nil
}

func (r *CouponUsageRepository) ListByCoupon(ctx context.Context, couponID int64) ([]domain.CouponUsage, error) {
	var rows []couponUsageModel
	err := r.db.WithContext(ctx).
		Where("coupon_id = ?", couponID).
		Order("used_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CouponUsage, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCouponUsage(m))
	}
	return out, nil
}
