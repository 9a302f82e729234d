// Package main, vinea backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar ile)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Service'leri + rate gate'i oluştur
//  5. Handler'ları oluştur (service'ler ile)
//  6. HTTP router'ı kur, route'ları bağla
//  7. CORS yapılandır
//  8. HTTP Server'ı başlat
//  9. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/database"
	"github.com/lucamori/vinea/middleware"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] vinea server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, transport=%s)", cfg.Server.Port, cfg.Auth.TokenTransport)

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülüdür — deploy'da SQL dosyası taşınmaz.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3-5. Repository → Service → Handler ───
	repos := initRepositories(db.Conn)
	svcs, gate, countCache := initServices(repos, cfg)
	defer gate.Stop()
	defer countCache.Close()

	h := initHandlers(svcs, gate, cfg)

	// ─── 6. HTTP Router ───
	mux := http.NewServeMux()
	rateLimitMw := middleware.NewRateLimitMiddleware(gate)
	initRoutes(mux, h, svcs.Auth, repos.User, rateLimitMw, cfg)

	// ─── 7. CORS ───
	// AllowCredentials true: cookie transport'ta tarayıcının cookie'leri
	// göndermesi için şart. Credentials + wildcard origin kombinasyonunu
	// tarayıcılar reddeder, bu yüzden origin listesi açık yazılır.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // frontend dev server
			"http://localhost:5173", // Vite dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 8. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 9. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
