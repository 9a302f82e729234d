package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/pkg/ratelimit"
)

// RateLimitMiddleware, rate gate'i HTTP katmanına bağlar.
//
// Client anahtarı IP'dir, route anahtarı sabit bir isimdir ("sign-in",
// "catalog" gibi). Route'u anahtara katmak, bir route'taki yoğunluğun
// diğerinin kotasını tüketmesini engeller.
//
// Limit aşıldığında 429 + Retry-After header döner — iyi davranan
// client'lar ne kadar bekleyeceklerini buradan okur.
type RateLimitMiddleware struct {
	gate ratelimit.Gate
}

// NewRateLimitMiddleware, constructor.
func NewRateLimitMiddleware(gate ratelimit.Gate) *RateLimitMiddleware {
	return &RateLimitMiddleware{gate: gate}
}

// Limit, verilen route anahtarı için rate-limit middleware'i döner.
//
// Kullanım:
//
//	mux.Handle("POST /sign-in", rl.Limit("sign-in", http.HandlerFunc(authHandler.SignIn)))
func (m *RateLimitMiddleware) Limit(routeKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ratelimit.ExtractIP(r)

		if !m.gate.Allow(clientIP, routeKey) {
			retryAfter := m.gate.RetryAfterSeconds(clientIP, routeKey)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
				fmt.Sprintf("too many requests, please try again in %s", ratelimit.FormatRetryMessage(retryAfter)))
			return
		}

		next.ServeHTTP(w, r)
	})
}
