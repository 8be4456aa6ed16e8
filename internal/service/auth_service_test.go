package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/model"
	"lirik/internal/repository"
	"lirik/internal/service"
)

// memSettingsRepo is an in-memory SettingsRepository for multi-key flows
// where gomock expectations would obscure the test.
type memSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{values: make(map[string]string)}
}

func (r *memSettingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (r *memSettingsRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memSettingsRepo) GetByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var settings []model.Setting
	for k, v := range r.values {
		if strings.HasPrefix(k, prefix) {
			settings = append(settings, model.Setting{Key: k, Value: v})
		}
	}
	return settings, nil
}

func (r *memSettingsRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

var _ repository.SettingsRepository = (*memSettingsRepo)(nil)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())
	ctx := context.Background()

	exists, err := svc.CheckUserExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	resp, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)

	exists, err = svc.CheckUserExists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	login, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	valid, err := svc.ValidateToken(login.Token)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123")
	require.ErrorIs(t, err, service.ErrUsernameRequired)

	_, err = svc.Register(ctx, "alice", "")
	require.ErrorIs(t, err, service.ErrPasswordRequired)

	_, err = svc.Register(ctx, "alice", "short")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestAuthService_Register_OnlyOnce(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "secret456")
	require.ErrorIs(t, err, service.ErrUserExists)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, service.ErrInvalidPassword)

	// Wrong username reports the same error as wrong password
	_, err = svc.Login(ctx, "mallory", "secret123")
	require.ErrorIs(t, err, service.ErrInvalidPassword)
}

func TestAuthService_Login_NoUser(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())

	_, err := svc.Login(context.Background(), "alice", "secret123")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	repo := newMemSettingsRepo()
	svc := service.NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	valid, err := svc.ValidateToken("not-a-jwt")
	require.ErrorIs(t, err, service.ErrInvalidToken)
	require.False(t, valid)
}

func TestAuthService_ValidateToken_SecretRotation(t *testing.T) {
	repo := newMemSettingsRepo()
	svc := service.NewAuthService(repo)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	// Rotating the secret invalidates existing tokens
	require.NoError(t, repo.Set(ctx, "user.jwt_secret", "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"))

	valid, err := svc.ValidateToken(resp.Token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
	require.False(t, valid)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc := service.NewAuthService(newMemSettingsRepo())
	ctx := context.Background()

	_, err := svc.GetCurrentUser(ctx)
	require.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}
