// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar "thin"dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/handlers"
	"github.com/lucamori/vinea/pkg/ratelimit"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth *handlers.AuthHandler
	Wine *handlers.WineHandler
}

// initHandlers, handler'ları service ve rate gate dependency'leri ile oluşturur.
func initHandlers(svcs *Services, gate ratelimit.Gate, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth: handlers.NewAuthHandler(svcs.Auth, svcs.Issuer, gate, cfg),
		Wine: handlers.NewWineHandler(svcs.Wine),
	}
}
