package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/handlers"
	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService, guard testleri için AuthService stub'ı.
// Sadece ValidateAccessToken anlamlıdır — diğer method'lar guard'da kullanılmaz.
type stubAuthService struct {
	claims *models.TokenClaims
	err    error
}

func (s *stubAuthService) ValidateAccessToken(string) (*models.TokenClaims, error) {
	return s.claims, s.err
}

func (s *stubAuthService) SignUp(context.Context, *models.SignUpRequest) (*services.AuthSession, error) {
	panic("not used")
}
func (s *stubAuthService) SignIn(context.Context, *models.SignInRequest) (*services.AuthSession, error) {
	panic("not used")
}
func (s *stubAuthService) Refresh(context.Context, string) (*services.AuthSession, error) {
	panic("not used")
}
func (s *stubAuthService) SignOut(context.Context, string) error { panic("not used") }
func (s *stubAuthService) UpdateProfile(context.Context, string, *models.UpdateProfileRequest) (*models.User, error) {
	panic("not used")
}
func (s *stubAuthService) ChangePassword(context.Context, string, *models.ChangePasswordRequest) error {
	panic("not used")
}

// stubUserRepo, guard testleri için UserRepository stub'ı.
type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) GetByID(context.Context, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.user
	return &cp, nil
}

func (s *stubUserRepo) Create(context.Context, *models.User) error { panic("not used") }
func (s *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	panic("not used")
}
func (s *stubUserRepo) UpdateProfile(context.Context, *models.User) error { panic("not used") }
func (s *stubUserRepo) UpdatePassword(context.Context, string, string) error {
	panic("not used")
}
func (s *stubUserRepo) SetRefreshToken(context.Context, string, *string) error {
	panic("not used")
}
func (s *stubUserRepo) RotateRefreshToken(context.Context, string, string, string) error {
	panic("not used")
}
func (s *stubUserRepo) ClearRefreshToken(context.Context, string, string) error {
	panic("not used")
}

func cookieConfig() *config.Config {
	return &config.Config{Auth: config.AuthConfig{TokenTransport: config.TransportCookie}}
}

func bodyConfig() *config.Config {
	return &config.Config{Auth: config.AuthConfig{TokenTransport: config.TransportBody}}
}

func guardedEcho(t *testing.T, mw *AuthMiddleware) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		// Guard'ın context'e koyduğu user'da hassas alanlar temiz olmalı
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		require.True(t, ok)
		assert.Empty(t, user.PasswordHash)
		assert.Nil(t, user.RefreshToken)

		w.WriteHeader(http.StatusOK)
	})
	return mw.Authenticate(next), &called
}

func TestGuardMissingTokenIs401(t *testing.T) {
	mw := NewAuthMiddleware(&stubAuthService{}, &stubUserRepo{}, cookieConfig())
	handler, called := guardedEcho(t, mw)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
	assert.Contains(t, rec.Body.String(), "access token is required")
}

func TestGuardInvalidTokenIs401(t *testing.T) {
	mw := NewAuthMiddleware(
		&stubAuthService{err: pkg.ErrUnauthorized},
		&stubUserRepo{},
		cookieConfig(),
	)
	handler, called := guardedEcho(t, mw)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "tampered"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestGuardDeletedUserIs404(t *testing.T) {
	// Token kriptografik olarak geçerli ama kullanıcı silinmiş → 404, 401 değil
	mw := NewAuthMiddleware(
		&stubAuthService{claims: &models.TokenClaims{UserID: "ghost"}},
		&stubUserRepo{err: pkg.ErrNotFound},
		cookieConfig(),
	)
	handler, called := guardedEcho(t, mw)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid-but-orphaned"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, *called)
}

func TestGuardValidTokenPassesThrough(t *testing.T) {
	hash := "$2a$12$fakehash"
	token := "tok"
	mw := NewAuthMiddleware(
		&stubAuthService{claims: &models.TokenClaims{UserID: "user-1"}},
		&stubUserRepo{user: &models.User{
			ID:           "user-1",
			PasswordHash: hash,
			RefreshToken: &token,
		}},
		cookieConfig(),
	)
	handler, called := guardedEcho(t, mw)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestGuardBodyTransportReadsBearerHeader(t *testing.T) {
	mw := NewAuthMiddleware(
		&stubAuthService{claims: &models.TokenClaims{UserID: "user-1"}},
		&stubUserRepo{user: &models.User{ID: "user-1"}},
		bodyConfig(),
	)
	handler, called := guardedEcho(t, mw)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer valid")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestGuardBodyTransportIgnoresCookie(t *testing.T) {
	// Body transport'ta cookie'deki token OKUNMAZ — tek kaynak Authorization header
	mw := NewAuthMiddleware(
		&stubAuthService{claims: &models.TokenClaims{UserID: "user-1"}},
		&stubUserRepo{user: &models.User{ID: "user-1"}},
		bodyConfig(),
	)
	handler, called := guardedEcho(t, mw)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}
