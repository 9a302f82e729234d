// Package middleware, HTTP middleware'lerini barındırır.
//
// Middleware Pattern nedir?
// Bir http.Handler'ı sarıp önünde/arkasında iş yapan fonksiyondur.
// Zincir şeklinde dizilir: rate limit → auth → handler.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/handlers"
	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/repository"
	"github.com/lucamori/vinea/services"
)

// AuthMiddleware (access guard), korumalı route'ların önünde durur.
//
// Karar ağacı:
//  1. Token yok          → 401 "access token is required"
//  2. İmza/expiry bozuk  → 401 "invalid or expired access token"
//  3. Token geçerli ama kullanıcı silinmiş → 404 "user not found"
//     (token hâlâ kriptografik olarak geçerlidir ama arkasındaki kayıt
//     yoktur — bu bir yetki sorunu değil, kaynak sorunudur)
//  4. Hepsi geçti → user context'e konur, handler çalışır
//
// Token'ın NEREDEN okunacağı config'e bağlıdır:
//   - cookie transport: "access_token" httpOnly cookie'si
//   - body transport:   "Authorization: Bearer <token>" header'ı
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
	transport   string
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
		transport:   cfg.Auth.TokenTransport,
	}
}

// Authenticate, middleware'in kendisi.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.extractToken(r)
		if tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "access token is required")
			return
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid or expired access token")
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				pkg.ErrorWithMessage(w, http.StatusNotFound, "user not found")
				return
			}
			pkg.Error(w, err)
			return
		}

		// Hassas alanlar context'e girmeden temizlenir — handler'lar user'ı
		// olduğu gibi response'a koyabilir.
		user.PasswordHash = ""
		user.RefreshToken = nil

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken, config'teki transport'a göre access token'ı bulur.
func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if m.transport == config.TransportCookie {
		cookie, err := r.Cookie("access_token")
		if err != nil {
			return ""
		}
		return cookie.Value
	}

	// Body transport: access token Authorization header'ında taşınır.
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
