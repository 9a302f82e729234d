// Package ratelimit — client + route bazlı istek sınırlama (rate gate).
//
// Tasarım:
// - Her (clientKey, routeKey) çifti için fixed window ile istek sayısı takip edilir.
// - Window süresi içinde maxRequests aşılırsa istek reddedilir.
// - Başarılı sign-in sonrası Reset() ile sayaç sıfırlanır — meşru kullanıcı bloke olmaz.
// - Background goroutine ile süresi dolmuş bucket'lar temizlenir (memory leak engeli).
//
// Neden in-memory?
// - SQLite'a her request'te yazma gereksiz I/O + contention yaratır.
// - Redis bağımlılığı eklememek için in-memory yeterli (tek instance deploy).
// - sync.RWMutex ile thread-safe: RLock okuma, Lock yazma.
//
// Neden ayrı paket?
// Rate gate bir collaborator'dır — transport'tan bağımsız accept/reject kararı verir.
// handlers ↔ middleware arasında import cycle oluşmaması için bağımsız bir
// paket olarak konumlandırıldı; hiçbir proje içi pakete bağımlı değildir.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// Gate, rate limiting collaborator kontratı.
// Middleware bu interface'e bağımlıdır, concrete limiter'a değil —
// testlerde her zaman izin veren / hiç izin vermeyen fake'ler geçilebilir.
type Gate interface {
	// Allow, (client, route) çifti için isteğe izin verilip verilmediğini döner.
	// false → caller 429 dönmeli.
	Allow(clientKey, routeKey string) bool
	// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini döner.
	RetryAfterSeconds(clientKey, routeKey string) int
	// Reset, (client, route) sayacını sıfırlar (başarılı sign-in sonrası).
	Reset(clientKey, routeKey string)
}

// bucket, bir (client, route) çifti için istek sayacı ve window başlangıç zamanı tutar.
//
// Fixed window algoritması:
// - İlk istek geldiğinde windowStart = now, count = 1.
// - Sonraki istekler: windowStart + window süresi geçmemişse count++.
// - Süre geçmişse sayaç topluca sıfırlanır ve yeni pencere başlar —
//   pencere kaymaz, bu yüzden "sliding" değil "fixed" window.
type bucket struct {
	count       int
	windowStart time.Time
}

// FixedWindow, Gate interface'inin in-memory implementasyonu.
//
// maxRequests: Bir window içinde izin verilen maksimum istek sayısı.
// window: Rate limit pencere süresi (örn: 15 dakika).
//
// Kullanım:
//
//	gate := ratelimit.NewFixedWindow(50, 15*time.Minute)
//	if !gate.Allow(ip, "sign-in") { return 429 }
type FixedWindow struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxRequests int
	window      time.Duration
	stopCleanup chan struct{}
}

// NewFixedWindow, yeni rate gate oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
//
// Temizleme goroutine'i her dakika çalışır ve süresi dolmuş bucket'ları siler.
// Bu, uzun süre çalışan sunucularda bellek sızıntısını önler.
func NewFixedWindow(maxRequests int, window time.Duration) *FixedWindow {
	fw := &FixedWindow{
		buckets:     make(map[string]*bucket),
		maxRequests: maxRequests,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go fw.cleanupLoop()

	return fw
}

// key, (client, route) çiftini tek map anahtarına çevirir.
// Route'u anahtara katmak, sign-in denemelerinin katalog isteklerinin
// kotasını yememesini sağlar — her route kendi penceresini tüketir.
func key(clientKey, routeKey string) string {
	return clientKey + "|" + routeKey
}

// Allow, (client, route) çiftinin isteğine izin verilip verilmediğini kontrol eder.
//
// Her çağrı sayacı artırır (istek başarılı olsun veya olmasın).
// Başarılı sign-in'de caller Reset() çağırmalıdır.
func (fw *FixedWindow) Allow(clientKey, routeKey string) bool {
	now := time.Now()
	k := key(clientKey, routeKey)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	b, exists := fw.buckets[k]
	if !exists {
		// İlk istek — yeni bucket oluştur
		fw.buckets[k] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Window süresi dolmuş mu?
	if now.Sub(b.windowStart) > fw.window {
		// Yeni pencere başlat — eski sayaç sıfırlanır
		b.count = 1
		b.windowStart = now
		return true
	}

	// Window içindeyiz — sayacı artır
	b.count++
	return b.count <= fw.maxRequests
}

// Reset, başarılı sign-in sonrası (client, route) sayacını sıfırlar.
//
// Bu fonksiyon önemli: Başarılı giriş yapan kullanıcının sayacı
// temizlenmezse, meşru kullanıcı sonraki denemelerde bloke olabilir.
func (fw *FixedWindow) Reset(clientKey, routeKey string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	delete(fw.buckets, key(clientKey, routeKey))
}

// RetryAfterSeconds, rate limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (fw *FixedWindow) RetryAfterSeconds(clientKey, routeKey string) int {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	b, exists := fw.buckets[key(clientKey, routeKey)]
	if !exists {
		return 0
	}

	remaining := fw.window - time.Since(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama — client'ın tam süreyi beklemesi için
}

// Stop, temizleme goroutine'ini durdurur (graceful shutdown).
func (fw *FixedWindow) Stop() {
	close(fw.stopCleanup)
}

// cleanupLoop, arka planda süresi dolmuş bucket'ları temizler.
// Her 60 saniyede bir çalışır, window süresi geçmiş tüm anahtarları siler.
func (fw *FixedWindow) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fw.cleanup()
		case <-fw.stopCleanup:
			return
		}
	}
}

func (fw *FixedWindow) cleanup() {
	now := time.Now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	for k, b := range fw.buckets {
		if now.Sub(b.windowStart) > fw.window {
			delete(fw.buckets, k)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik sırası:
// 1. X-Forwarded-For header (reverse proxy arkasındaysa, ilk IP)
// 2. X-Real-IP header (nginx gibi proxy'ler ekler)
// 3. RemoteAddr (doğrudan bağlantı)
//
// Neden bu sıra?
// Production'da uygulama genellikle nginx/Caddy arkasındadır.
// Bu durumda RemoteAddr her zaman proxy'nin IP'sidir.
// Gerçek client IP'si X-Forwarded-For veya X-Real-IP'dedir.
func ExtractIP(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2 — ilk değer gerçek client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// X-Real-IP: tek IP adresi
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Doğrudan bağlantı — host:port formatından host'u ayır
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
