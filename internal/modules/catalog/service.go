package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/modules/booking"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

// Service serves the public catalog (rooms, add-on services, yoga sessions)
// and the admin CRUD behind it.
type Service struct {
	store *repository.Store
	log   *logrus.Logger
}

func NewService(store *repository.Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) ListRooms(ctx context.Context, onlyAvailable bool) ([]domain.Room, error) {
	return s.store.Rooms.List(ctx, onlyAvailable)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// AvailableRooms returns rooms free for the whole date range, with the stay
// priced per room. Guests filters out rooms too small for the group.
func (s *Service) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]AvailableRoom, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	rooms, err := s.store.Rooms.List(ctx, true)
	if err != nil {
		return nil, err
	}

	nights := booking.Nights(checkIn, checkOut)
	out := make([]AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		if guests > 0 && room.Capacity < guests {
			continue
		}
		overlaps, err := s.store.Bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		if len(overlaps) > 0 {
			continue
		}
		out = append(out, AvailableRoom{
			Room:   room,
			Nights: nights,
			Total:  room.PricePerNight * float64(nights),
		})
	}
	return out, nil
}

func (s *Service) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*domain.Room, error) {
	room := req.toRoom()
	if err := s.store.Rooms.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	s.log.WithField("room_id", room.ID).Info("room created")
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.PricePerNight != nil {
		room.PricePerNight = *req.PricePerNight
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.store.Rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListServices(ctx context.Context, category domain.ServiceCategory, activeOnly bool) ([]domain.Service, error) {
	return s.store.Services.List(ctx, category, activeOnly)
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.store.Services.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) CreateService(ctx context.Context, req *CreateServiceRequest) (*domain.Service, error) {
	svc := req.toService()
	if err := s.store.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.log.WithField("service_id", svc.ID).Info("service created")
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req *UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Subcategory != nil {
		svc.Subcategory = *req.Subcategory
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.PriceUnit != nil {
		svc.PriceUnit = domain.PriceUnit(*req.PriceUnit)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.AgeRestriction != nil {
		svc.AgeRestriction = req.AgeRestriction
	}
	if req.AvailableSlots != nil {
		svc.AvailableSlots = req.AvailableSlots
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.store.Services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListSessions(ctx context.Context, activeOnly bool) ([]SessionResponse, error) {
	sessions, err := s.store.YogaSessions.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, SessionResponse{
			YogaSession:    session,
			AvailableSeats: session.AvailableSeats(),
		})
	}
	return out, nil
}

func (s *Service) GetSession(ctx context.Context, id int64) (*SessionResponse, error) {
	session, err := s.store.YogaSessions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		YogaSession:    *session,
		AvailableSeats: session.AvailableSeats(),
	}, nil
}

func (s *Service) CreateSession(ctx context.Context, req *CreateSessionRequest) (*domain.YogaSession, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrSessionDates
	}

	session := req.toSession()
	if err := s.store.YogaSessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.log.WithField("session_id", session.ID).Info("yoga session created")
	return session, nil
}

func (s *Service) UpdateSession(ctx context.Context, id int64, req *UpdateSessionRequest) (*domain.YogaSession, error) {
	session, err := s.store.YogaSessions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.BatchName != nil {
		session.BatchName = *req.BatchName
	}
	if req.StartDate != nil {
		session.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		session.EndDate = *req.EndDate
	}
	if req.Capacity != nil {
		session.Capacity = *req.Capacity
	}
	if req.Price != nil {
		session.Price = *req.Price
	}
	if req.Instructor != nil {
		session.Instructor = *req.Instructor
	}
	if req.IsActive != nil {
		session.IsActive = *req.IsActive
	}

	if !session.EndDate.After(session.StartDate) {
		return nil, ErrSessionDates
	}
	if err := s.store.YogaSessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
