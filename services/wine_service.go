package services

import (
	"context"
	"math"
	"time"

	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg/cache"
	"github.com/lucamori/vinea/repository"
)

// Sayfalama limitleri. Liste ve arama 100'e kadar kayıt verir;
// top-rated küçük bir vitrin olduğu için 10 ile sınırlıdır.
const (
	maxListLimit     = 100
	maxTopRatedLimit = 10
)

// Toplam sayı cache ayarları. Katalog sayfalaması her istekte COUNT(*)
// çalıştırmasın diye toplam 10 saniye cache'lenir — TotalPages'in birkaç
// saniye eski olması kabul edilebilir. TTL export edilir: cache instance'ı
// wire-up katmanında oluşturulur (Close'u shutdown'da çağırabilsin diye).
const (
	countCacheKey = "wines:count"
	CountCacheTTL = 10 * time.Second
)

// WineService, şarap kataloğunun okuma işlemleri için interface.
// page/limit ham query değerleri olarak gelir — validation burada yapılır,
// handler sadece parse eder.
type WineService interface {
	List(ctx context.Context, page, limit int) (*models.WinePage, error)
	Search(ctx context.Context, filter models.WineFilter, page, limit int) (*models.WinePage, error)
	TopRated(ctx context.Context, page, limit int) (*models.WinePage, error)
}

type wineService struct {
	wineRepo   repository.WineRepository
	countCache *cache.TTLCache[string, int]
}

// NewWineService, constructor. countCache caller tarafından oluşturulur ve
// yaşam döngüsü (Close) caller'a aittir.
func NewWineService(wineRepo repository.WineRepository, countCache *cache.TTLCache[string, int]) WineService {
	return &wineService{
		wineRepo:   wineRepo,
		countCache: countCache,
	}
}

func (s *wineService) List(ctx context.Context, page, limit int) (*models.WinePage, error) {
	p, err := models.ValidatePagination(page, limit, maxListLimit)
	if err != nil {
		return nil, err
	}

	wines, err := s.wineRepo.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return s.buildPage(ctx, wines, p)
}

func (s *wineService) Search(ctx context.Context, filter models.WineFilter, page, limit int) (*models.WinePage, error) {
	p, err := models.ValidatePagination(page, limit, maxListLimit)
	if err != nil {
		return nil, err
	}

	wines, err := s.wineRepo.Search(ctx, filter, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return s.buildPage(ctx, wines, p)
}

func (s *wineService) TopRated(ctx context.Context, page, limit int) (*models.WinePage, error) {
	p, err := models.ValidatePagination(page, limit, maxTopRatedLimit)
	if err != nil {
		return nil, err
	}

	wines, err := s.wineRepo.TopRated(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return s.buildPage(ctx, wines, p)
}

// buildPage, sayfa metadata'sını hesaplar.
// TotalPages = ceil(toplam kayıt / limit). Boş katalogda 0 sayfa döner.
func (s *wineService) buildPage(ctx context.Context, wines []models.Wine, p models.Pagination) (*models.WinePage, error) {
	total, err := s.totalCount(ctx)
	if err != nil {
		return nil, err
	}

	if wines == nil {
		wines = []models.Wine{} // JSON'da null değil [] dönsün
	}

	return &models.WinePage{
		TotalPages:  int(math.Ceil(float64(total) / float64(p.Limit))),
		CurrentPage: p.Page,
		Wines:       wines,
	}, nil
}

// totalCount, katalog toplamını cache üzerinden okur.
// Cache miss'te COUNT(*) çalıştırılır ve sonuç TTL ile saklanır.
func (s *wineService) totalCount(ctx context.Context) (int, error) {
	if total, ok := s.countCache.Get(countCacheKey); ok {
		return total, nil
	}

	total, err := s.wineRepo.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.countCache.Set(countCacheKey, total)
	return total, nil
}
