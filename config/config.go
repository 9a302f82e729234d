// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config bir kez startup'ta yüklenir ve process ömrü boyunca read-only'dir.
// Hidden global YOK — Load() dönen struct, component'lere constructor
// injection ile taşınır. Her yerde ayrı ayrı os.Getenv() çağırmak yerine
// tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Token transport seçenekleri.
// Session controller hangi taşıma biçimini kullanacağına buradan karar verir —
// iki ayrı kod yolu değil, tek controller + config switch.
const (
	TransportCookie = "cookie" // httpOnly cookie'ler (varsayılan)
	TransportBody   = "body"   // token'lar JSON body'de döner
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
	Env  string // "development" | "production" — production'da cookie'ler Secure olur
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/vinea.db)
}

// JWTConfig, JWT token ayarları.
//
// Access ve refresh token'lar AYRI secret'larla imzalanır — çalınan bir
// refresh secret access token üretmeye yetmez (ve tersi).
//
// Cookie max-age değerleri de bu expiry'lerden türetilir: imzalı expiry ile
// cookie ömrü aynı kaynaktan geldiği için birbirinden sapamaz.
type JWTConfig struct {
	AccessSecret       string // Access token imzalama anahtarı — GİZLİ TUTULMALI
	RefreshSecret      string // Refresh token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 30)
}

// AuthConfig, session controller'ın transport davranışı.
type AuthConfig struct {
	TokenTransport string // TransportCookie | TransportBody
}

// RateLimitConfig, rate gate ayarları.
// Varsayılanlar: 15 dakikalık pencerede route başına 50 istek.
type RateLimitConfig struct {
	MaxRequests   int
	WindowMinutes int
}

// Load, environment'tan Config'i yükler.
//
// Go'da error handling: Go'da exception/try-catch yoktur.
// Fonksiyonlar hata durumunda (value, error) tuple'ı döner.
// Çağıran taraf her zaman error'ı kontrol ETMEK ZORUNDADIR.
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "3030"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	maxRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}

	windowMinutes, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_MINUTES: %w", err)
	}

	accessSecret := getEnv("JWT_ACCESS_SECRET", "")
	if accessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET environment variable is required")
	}

	refreshSecret := getEnv("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}

	transport := getEnv("AUTH_TOKEN_TRANSPORT", TransportCookie)
	if transport != TransportCookie && transport != TransportBody {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TRANSPORT: %q (expected %q or %q)",
			transport, TransportCookie, TransportBody)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/vinea.db"),
		},
		JWT: JWTConfig{
			AccessSecret:       accessSecret,
			RefreshSecret:      refreshSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Auth: AuthConfig{
			TokenTransport: transport,
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   maxRequests,
			WindowMinutes: windowMinutes,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:3030").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction, production ortamında olup olmadığımızı döner.
// Cookie'lerin Secure flag'i buna göre set edilir.
func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
