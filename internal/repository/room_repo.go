package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomNumber    string    `gorm:"column:room_number;uniqueIndex;not null"`
	RoomType      string    `gorm:"column:room_type"`
	Description   string    `gorm:"column:description;type:text"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Capacity      int       `gorm:"column:capacity"`
	Amenities     string    `gorm:"column:amenities;type:text"`
	IsAvailable   bool      `gorm:"column:is_available"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	r := &domain.Room{
		ID:            m.ID,
		RoomNumber:    m.RoomNumber,
		RoomType:      domain.RoomType(m.RoomType),
		Description:   m.Description,
		PricePerNight: m.PricePerNight,
		Capacity:      m.Capacity,
		IsAvailable:   m.IsAvailable,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Amenities != "" {
		_ = json.Unmarshal([]byte(m.Amenities), &r.Amenities)
	}
	return r
}

func toRoomModel(r *domain.Room) roomModel {
	m := roomModel{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		RoomType:      string(r.RoomType),
		Description:   r.Description,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		IsAvailable:   r.IsAvailable,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if len(r.Amenities) > 0 {
		raw, _ := json.Marshal(r.Amenities)
		m.Amenities = string(raw)
	}
	return m
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return gorm.ErrDuplicatedKey
		}
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context, onlyAvailable bool) ([]domain.Room, error) {
	var rows []roomModel
	q := r.db.WithContext(ctx).Order("room_number ASC")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Save(&m).Error
}
