package models

import (
	"fmt"
	"time"

	"github.com/lucamori/vinea/pkg"
)

// WineType, şarap türünü temsil eder.
type WineType string

const (
	WineTypeWhite     WineType = "white"
	WineTypeRed       WineType = "red"
	WineTypeSparkling WineType = "sparkling"
	WineTypeRose      WineType = "rosé"
	WineTypePassito   WineType = "passito"
)

// Wine, katalogdaki bir şarabı temsil eder.
//
// FavoritedBy: kaç kullanıcının favorilediği — top-rated sıralaması bu
// sayıya göre yapılır. Images, DB'de JSON text kolonu olarak saklanır
// (repository marshal/unmarshal eder).
type Wine struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              WineType  `json:"type"`
	Producer          string    `json:"producer"`
	Vintage           int       `json:"vintage"`
	Region            string    `json:"region"`
	Grapes            string    `json:"grapes"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	AvailableQuantity int       `json:"available_quantity"`
	Images            []string  `json:"images"`
	FavoritedBy       int       `json:"favorited_by"`
	PublisherID       *string   `json:"publisher_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// WineFilter, /wines/search query parametrelerinin karşılığı.
// Boş string / sıfır değer → o filtre uygulanmaz.
type WineFilter struct {
	Name         string // isimde substring (case-insensitive)
	Producer     string // üreticide substring
	Region       string // bölgede substring
	MinFavorites int    // en az bu kadar favorilenmiş
}

// WinePage, sayfalı katalog yanıtı.
type WinePage struct {
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	Wines       []Wine `json:"wines"`
}

// Pagination, page/limit query parametrelerinin doğrulanmış hali.
type Pagination struct {
	Page  int
	Limit int
}

// Offset, SQL OFFSET değerini döner.
// Örn: page=2, limit=10 → ilk 10 kayıt atlanır.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ValidatePagination, page/limit değerlerini doğrular.
// maxLimit route'a göre değişir (katalog: 100, top-rated: 10).
func ValidatePagination(page, limit, maxLimit int) (Pagination, error) {
	var issues []string

	if page < 1 {
		issues = append(issues, "page must be a positive integer")
	}
	if limit < 1 || limit > maxLimit {
		issues = append(issues, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}

	if len(issues) > 0 {
		return Pagination{}, &pkg.ValidationErrors{Issues: issues}
	}
	return Pagination{Page: page, Limit: limit}, nil
}
