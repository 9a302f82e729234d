package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lucamori/vinea/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWine(t *testing.T, conn *sql.DB, name, producer, region string, favorites int) {
	t.Helper()
	_, err := conn.Exec(`
		INSERT INTO wines (id, name, type, producer, vintage, region, grapes, description, price, available_quantity, images, favorited_by)
		VALUES (?, ?, 'red', ?, 2019, ?, 'Sangiovese', '', 25.0, 10, '["a.jpg"]', ?)`,
		fmt.Sprintf("wine-%s", name), name, producer, region, favorites)
	require.NoError(t, err)
}

func TestListWines(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWineRepo(db.Conn)
	ctx := context.Background()

	seedWine(t, db.Conn, "Chianti", "Antinori", "Toscana", 3)
	seedWine(t, db.Conn, "Barolo", "Gaja", "Piemonte", 7)

	wines, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, wines, 2)

	// images JSON kolonu []string'e çözülür
	assert.Equal(t, []string{"a.jpg"}, wines[0].Images)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListWinesPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWineRepo(db.Conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedWine(t, db.Conn, fmt.Sprintf("Wine%d", i), "P", "R", i)
	}

	page, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	tail, err := repo.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestSearchWines(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWineRepo(db.Conn)
	ctx := context.Background()

	seedWine(t, db.Conn, "Chianti Classico", "Antinori", "Toscana", 3)
	seedWine(t, db.Conn, "Barolo Riserva", "Gaja", "Piemonte", 7)

	// Substring + case-insensitive
	wines, err := repo.Search(ctx, models.WineFilter{Name: "chianti"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, wines, 1)
	assert.Equal(t, "Chianti Classico", wines[0].Name)

	// Birden fazla filtre AND ile birleşir
	wines, err = repo.Search(ctx, models.WineFilter{Region: "piemonte", MinFavorites: 5}, 10, 0)
	require.NoError(t, err)
	require.Len(t, wines, 1)
	assert.Equal(t, "Barolo Riserva", wines[0].Name)

	// Eşleşmeyen filtre boş döner
	wines, err = repo.Search(ctx, models.WineFilter{Producer: "nobody"}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, wines)
}

func TestTopRatedOrdersByFavorites(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWineRepo(db.Conn)
	ctx := context.Background()

	seedWine(t, db.Conn, "Low", "P", "R", 1)
	seedWine(t, db.Conn, "High", "P", "R", 9)
	seedWine(t, db.Conn, "Mid", "P", "R", 5)

	wines, err := repo.TopRated(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, wines, 3)
	assert.Equal(t, "High", wines[0].Name)
	assert.Equal(t, "Mid", wines[1].Name)
	assert.Equal(t, "Low", wines[2].Name)
}
