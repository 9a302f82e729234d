// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"time"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/pkg/cache"
	"github.com/lucamori/vinea/pkg/ratelimit"
	"github.com/lucamori/vinea/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth services.AuthService
	Wine services.WineService

	// Issuer burada da taşınır: handler'ın cookie max-age için TTL'lere
	// ihtiyacı var, AuthService interface'i ise transport detayı bilmez.
	Issuer *services.TokenIssuer
}

// initServices, service'leri ve arka plan goroutine taşıyan collaborator'ları
// (rate gate + katalog count cache) oluşturur.
//
// Rate gate service katmanında DEĞİL, burada oluşturulur: hem middleware
// (istek reddi) hem auth handler (başarılı girişte reset) aynı instance'ı
// paylaşmalıdır. Count cache de burada oluşturulur ki main graceful
// shutdown'da Close() çağırabilsin.
func initServices(repos *Repositories, cfg *config.Config) (*Services, *ratelimit.FixedWindow, *cache.TTLCache[string, int]) {
	issuer := services.NewTokenIssuer(cfg.JWT)

	gate := ratelimit.NewFixedWindow(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)

	countCache := cache.New[string, int](services.CountCacheTTL, time.Minute)

	return &Services{
		Auth:   services.NewAuthService(repos.User, issuer),
		Wine:   services.NewWineService(repos.Wine, countCache),
		Issuer: issuer,
	}, gate, countCache
}
