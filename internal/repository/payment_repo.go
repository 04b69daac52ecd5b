package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

type PaymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db}
}

type paymentOrderModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	BookingID         int64      `gorm:"column:booking_id;index"`
	ProviderOrderID   string     `gorm:"column:provider_order_id;uniqueIndex"`
	ProviderPaymentID string     `gorm:"column:provider_payment_id"`
	Receipt           string     `gorm:"column:receipt"`
	Amount            float64    `gorm:"column:amount"`
	Currency          string     `gorm:"column:currency"`
	Status            string     `gorm:"column:status;index"`
	PaymentMethod     string     `gorm:"column:payment_method"`
	FailureReason     string     `gorm:"column:failure_reason"`
	RefundID          string     `gorm:"column:refund_id"`
	RefundAmount      *float64   `gorm:"column:refund_amount"`
	PaidAt            *time.Time `gorm:"column:paid_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (paymentOrderModel) TableName() string { return "payment_orders" }

func toDomainPaymentOrder(m paymentOrderModel) *domain.PaymentOrder {
	return &domain.PaymentOrder{
		ID:                m.ID,
		BookingID:         m.BookingID,
		ProviderOrderID:   m.ProviderOrderID,
		ProviderPaymentID: m.ProviderPaymentID,
		Receipt:           m.Receipt,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Status:            domain.PaymentOrderStatus(m.Status),
		PaymentMethod:     m.PaymentMethod,
		FailureReason:     m.FailureReason,
		RefundID:          m.RefundID,
		RefundAmount:      m.RefundAmount,
		PaidAt:            m.PaidAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toPaymentOrderModel(o *domain.PaymentOrder) paymentOrderModel {
	return paymentOrderModel{
		ID:                o.ID,
		BookingID:         o.BookingID,
		ProviderOrderID:   o.ProviderOrderID,
		ProviderPaymentID: o.ProviderPaymentID,
		Receipt:           o.Receipt,
		Amount:            o.Amount,
		Currency:          o.Currency,
		Status:            string(o.Status),
		PaymentMethod:     o.PaymentMethod,
		FailureReason:     o.FailureReason,
		RefundID:          o.RefundID,
		RefundAmount:      o.RefundAmount,
		PaidAt:            o.PaidAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, o *domain.PaymentOrder) error {
	m := toPaymentOrderModel(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*o = *toDomainPaymentOrder(m)
	return nil
}

func (r *PaymentOrderRepository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.PaymentOrder, error) {
	var m paymentOrderModel
	tx := r.db.WithContext(ctx).Where("provider_order_id = ?", providerOrderID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPaymentOrder(m), nil
}

// FindOpenByBooking returns the newest order still awaiting payment for the
// booking, or gorm.ErrRecordNotFound when none is open.
func (r *PaymentOrderRepository) FindOpenByBooking(ctx context.Context, bookingID int64) (*domain.PaymentOrder, error) {
	var m paymentOrderModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ? AND status IN ?", bookingID, []string{
			string(domain.OrderCreated),
			string(domain.OrderAttempted),
		}).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPaymentOrder(m), nil
}

func (r *PaymentOrderRepository) LatestByBooking(ctx context.Context, bookingID int64) (*domain.PaymentOrder, error) {
	var m paymentOrderModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPaymentOrder(m), nil
}

func (r *PaymentOrderRepository) Update(ctx context.Context, o *domain.PaymentOrder) error {
	m := toPaymentOrderModel(o)
	return r.db.WithContext(ctx).Save(&m).Error
}
