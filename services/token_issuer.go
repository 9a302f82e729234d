// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre doğrulama
//   - Token üretimi ve rotasyonu
//   - Session lifecycle kararları
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
)

const tokenIssuerName = "vinea"

// TokenIssuer, access + refresh token çiftini üretir ve doğrular.
//
// İki token AYRI secret'larla imzalanır ve AYRI expiry'lere sahiptir.
// Issue saf bir fonksiyondur: config + input dışında hiçbir şeye bağlı
// değildir, yan etkisi yoktur. Refresh token'ın DB'ye yazılması
// caller'ın (AuthService) sorumluluğudur.
//
// Claim'lerde SADECE subject id + registered claim'ler bulunur — secret
// veya hash asla payload'a girmez.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExp     time.Duration
	refreshExp    time.Duration
}

// NewTokenIssuer, constructor. Expiry'ler config'ten gelir:
// access dakika cinsinden, refresh gün cinsinden.
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessExp:     time.Duration(cfg.AccessTokenExpiry) * time.Minute,
		refreshExp:    time.Duration(cfg.RefreshTokenExpiry) * 24 * time.Hour,
	}
}

// Issue, verilen kullanıcı için yeni bir access + refresh çifti üretir.
//
// Her token'a benzersiz bir jti (uuid) konur. Bu, rotation'da aynı saniye
// içinde üretilen iki refresh token'ın bile farklı string olmasını garanti
// eder — aksi halde HS256(aynı claim'ler, aynı saniye) aynı imzayı üretirdi.
func (ti *TokenIssuer) Issue(userID string) (*models.TokenPair, error) {
	access, err := ti.sign(userID, ti.accessSecret, ti.accessExp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := ti.sign(userID, ti.refreshSecret, ti.refreshExp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess, access token'ı doğrular ve claims'i döner.
func (ti *TokenIssuer) VerifyAccess(tokenString string) (*models.TokenClaims, error) {
	return ti.verify(tokenString, ti.accessSecret)
}

// VerifyRefresh, refresh token'ı doğrular ve claims'i döner.
func (ti *TokenIssuer) VerifyRefresh(tokenString string) (*models.TokenClaims, error) {
	return ti.verify(tokenString, ti.refreshSecret)
}

// AccessTTL, access token ömrünü döner — cookie max-age bu değerden türetilir.
// Cookie ömrü ile imzalı expiry aynı kaynaktan gelir, birbirinden sapamaz.
func (ti *TokenIssuer) AccessTTL() time.Duration {
	return ti.accessExp
}

// RefreshTTL, refresh token ömrünü döner.
func (ti *TokenIssuer) RefreshTTL() time.Duration {
	return ti.refreshExp
}

func (ti *TokenIssuer) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuerName,
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify, imza + expiry kontrolü yapar.
//
// Signing method kontrolü kritik: "alg confusion" saldırısında client
// header'daki alg'i değiştirip (örn: none veya RS256) imzayı atlatmaya
// çalışır. Sadece HMAC ailesini kabul ediyoruz.
func (ti *TokenIssuer) verify(tokenString string, secret []byte) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}
