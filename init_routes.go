// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - limited: rate gate (route anahtarı ile)
//   - guarded: rate gate + access guard
package main

import (
	"fmt"
	"net/http"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/middleware"
	"github.com/lucamori/vinea/repository"
	"github.com/lucamori/vinea/services"
)

// Rate gate route anahtarları. Her anahtar kendi penceresini tüketir —
// katalogda gezinen bir client, sign-in denemesi kotasını yakmaz.
const (
	routeSignUp  = "sign-up"
	routeSignIn  = "sign-in"
	routeRefresh = "refresh-token"
	routeSignOut = "sign-out"
	routeAccount = "account"
	routeCatalog = "catalog"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	rateLimitMw *middleware.RateLimitMiddleware,
	cfg *config.Config,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo, cfg)

	// ─── Middleware Chain Helpers ───
	limited := func(routeKey string, handler http.HandlerFunc) http.Handler {
		return rateLimitMw.Limit(routeKey, http.HandlerFunc(handler))
	}
	guarded := func(routeKey string, handler http.HandlerFunc) http.Handler {
		return rateLimitMw.Limit(routeKey, authMw.Authenticate(http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"vinea"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.Handle("POST /sign-up", limited(routeSignUp, h.Auth.SignUp))
	mux.Handle("POST /sign-in", limited(routeSignIn, h.Auth.SignIn))
	mux.Handle("POST /refresh-token", limited(routeRefresh, h.Auth.Refresh))
	mux.Handle("POST /sign-out", limited(routeSignOut, h.Auth.SignOut))

	// Account — access guard gerektirir
	mux.Handle("GET /me", guarded(routeAccount, h.Auth.Me))
	mux.Handle("PATCH /me", guarded(routeAccount, h.Auth.UpdateProfile))
	mux.Handle("POST /me/password", guarded(routeAccount, h.Auth.ChangePassword))

	// Wines — public katalog, sadece rate gate'ten geçer.
	// Literal path'ler ("/wines/search") parametrik path'lerden önce gelmeli —
	// burada parametrik route yok ama kural korunuyor.
	mux.Handle("GET /wines", limited(routeCatalog, h.Wine.List))
	mux.Handle("GET /wines/search", limited(routeCatalog, h.Wine.Search))
	mux.Handle("GET /wines/top-rated", limited(routeCatalog, h.Wine.TopRated))

	// Catch-all — eşleşmeyen her route 404 döner.
	// ServeMux'un varsayılan text yanıtı yerine JSON envelope kullanılır.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"error":"Not Found","message":"This route does not exist!"}`)
	})
}
