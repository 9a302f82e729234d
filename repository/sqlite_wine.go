package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lucamori/vinea/database"
	"github.com/lucamori/vinea/models"
)

// sqliteWineRepo, WineRepository interface'inin SQLite implementasyonu.
type sqliteWineRepo struct {
	db database.TxQuerier
}

// NewSQLiteWineRepo, constructor.
func NewSQLiteWineRepo(db database.TxQuerier) WineRepository {
	return &sqliteWineRepo{db: db}
}

const wineColumns = `id, name, type, producer, vintage, region, grapes, description, price, available_quantity, images, favorited_by, publisher_id, created_at`

func (r *sqliteWineRepo) List(ctx context.Context, limit, offset int) ([]models.Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list wines: %w", err)
	}
	defer rows.Close() // rows'u kapatmayı ASLA unutma — aksi halde bağlantı sızar (leak)

	return scanWines(rows)
}

func (r *sqliteWineRepo) Search(ctx context.Context, filter models.WineFilter, limit, offset int) ([]models.Wine, error) {
	// Query'yi dinamik kur — sadece dolu filtreler WHERE'e girer.
	// Değerler her zaman placeholder (?) ile bağlanır, string concat ile DEĞİL
	// (SQL injection). LIKE pattern'ı da parametredir.
	query := `SELECT ` + wineColumns + ` FROM wines WHERE 1=1`
	var args []any

	if filter.Name != "" {
		query += ` AND name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Producer != "" {
		query += ` AND producer LIKE ? COLLATE NOCASE`
		args = append(args, "%"+filter.Producer+"%")
	}
	if filter.Region != "" {
		query += ` AND region LIKE ? COLLATE NOCASE`
		args = append(args, "%"+filter.Region+"%")
	}
	if filter.MinFavorites > 0 {
		query += ` AND favorited_by >= ?`
		args = append(args, filter.MinFavorites)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search wines: %w", err)
	}
	defer rows.Close()

	return scanWines(rows)
}

func (r *sqliteWineRepo) TopRated(ctx context.Context, limit, offset int) ([]models.Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines ORDER BY favorited_by DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated wines: %w", err)
	}
	defer rows.Close()

	return scanWines(rows)
}

func (r *sqliteWineRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count wines: %w", err)
	}
	return count, nil
}

// scanWines, çok satırlı wine sorgusunu slice'a aktarır.
// images kolonu JSON text olarak saklanır — burada []string'e unmarshal edilir.
func scanWines(rows *sql.Rows) ([]models.Wine, error) {
	var wines []models.Wine

	for rows.Next() {
		var w models.Wine
		var imagesJSON string

		if err := rows.Scan(
			&w.ID, &w.Name, &w.Type, &w.Producer, &w.Vintage, &w.Region,
			&w.Grapes, &w.Description, &w.Price, &w.AvailableQuantity,
			&imagesJSON, &w.FavoritedBy, &w.PublisherID, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wine row: %w", err)
		}

		if err := json.Unmarshal([]byte(imagesJSON), &w.Images); err != nil {
			return nil, fmt.Errorf("failed to decode wine images: %w", err)
		}

		wines = append(wines, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wine rows: %w", err)
	}

	return wines, nil
}
