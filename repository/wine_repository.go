package repository

import (
	"context"

	"github.com/lucamori/vinea/models"
)

// WineRepository, şarap kataloğu veritabanı işlemleri için interface.
// Katalog read-heavy'dir — tüm sorgular limit/offset ile sayfalıdır.
type WineRepository interface {
	// List, katalog sayfası döner (created_at desc).
	List(ctx context.Context, limit, offset int) ([]models.Wine, error)
	// Search, filtreye uyan şarapları döner. Boş filtre alanları atlanır.
	Search(ctx context.Context, filter models.WineFilter, limit, offset int) ([]models.Wine, error)
	// TopRated, favorited_by desc sıralı sayfa döner.
	TopRated(ctx context.Context, limit, offset int) ([]models.Wine, error)
	Count(ctx context.Context) (int, error)
}
