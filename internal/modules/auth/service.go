package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	jwtsvc "github.com/farhanak624/kshetra-backend/internal/pkg/jwt"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Service struct {
	store *repository.Store
	jwt   *jwtsvc.Service
	log   *logrus.Logger
}

func NewService(store *repository.Store, jwt *jwtsvc.Service, log *logrus.Logger) *Service {
	return &Service{store: store, jwt: jwt, log: log}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", u.ID).Info("user registered")
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.store.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.store.Users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
