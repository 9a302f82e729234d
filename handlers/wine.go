package handlers

import (
	"net/http"
	"strconv"

	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/services"
)

// Varsayılan sayfalama değerleri — query param gelmezse kullanılır.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// WineHandler, katalog okuma endpoint'lerini yönetir.
// Katalog public'tir — guard gerektirmez, sadece rate gate'ten geçer.
type WineHandler struct {
	wineService services.WineService
}

// NewWineHandler, constructor.
func NewWineHandler(wineService services.WineService) *WineHandler {
	return &WineHandler{wineService: wineService}
}

// List — GET /wines?page=&limit=
func (h *WineHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	result, err := h.wineService.List(r.Context(), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Search — GET /wines/search?name=&producer=&region=&min_favorites=&page=&limit=
func (h *WineHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := models.WineFilter{
		Name:     q.Get("name"),
		Producer: q.Get("producer"),
		Region:   q.Get("region"),
	}
	if raw := q.Get("min_favorites"); raw != "" {
		minFav, err := strconv.Atoi(raw)
		if err != nil || minFav < 0 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "min_favorites must be a non-negative integer")
			return
		}
		filter.MinFavorites = minFav
	}

	result, err := h.wineService.Search(r.Context(), filter, page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// TopRated — GET /wines/top-rated?page=&limit=
// Favorilenme sayısına göre azalan sıralı vitrin. Limit tavanı düşüktür (10).
func (h *WineHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	result, err := h.wineService.TopRated(r.Context(), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// parsePagination, page/limit query parametrelerini okur.
// Param hiç yoksa varsayılanlar; varsa ama sayı değilse 400.
// Aralık kontrolü (1..maxLimit) service'tedir — tavan route'a göre değişir.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page, limit = defaultPage, defaultLimit
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, &pkg.ValidationErrors{Issues: []string{"page must be a positive integer"}}
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, &pkg.ValidationErrors{Issues: []string{"limit must be a positive integer"}}
		}
	}

	return page, limit, nil
}
