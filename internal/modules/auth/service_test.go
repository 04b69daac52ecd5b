package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanak624/kshetra-backend/internal/database"
	"github.com/farhanak624/kshetra-backend/internal/domain"
	jwtsvc "github.com/farhanak624/kshetra-backend/internal/pkg/jwt"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	store := repository.NewStore(db)
	require.NoError(t, store.AutoMigrate())

	return NewService(store, jwtsvc.New("test-secret", time.Hour), logrus.New())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.Equal(t, "asha@example.com", res.User.Email, "emails are stored lowercased")
	assert.NotEqual(t, "supersecret", res.User.PasswordHash)

	login, err := svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := &RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	u, err := svc.Profile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
