package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lucamori/vinea/database"
	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
//
// db field'ı küçük harf → private. Repository'nin DB bağlantısı
// dışarıya açık olmamalı.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor fonksiyonu.
// UserRepository interface'i döner (concrete struct değil) — Dependency Inversion.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userColumns = `id, name, surname, email, password_hash, street, city, postal_code, country, role, refresh_token, created_at`

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, name, surname, email, password_hash, street, city, postal_code, country, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.Address.Street,
		user.Address.City,
		user.Address.PostalCode,
		user.Address.Country,
		user.Role,
	).Scan(&user.CreatedAt)

	if err != nil {
		// UNIQUE constraint violation → email zaten kayıtlı.
		// Generic 500 değil, ayırt edilebilir bir conflict hatası döneriz.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// UpdateProfile, profil alanlarını günceller.
// password_hash ve refresh_token kolonları bu query'de YOK — profil
// güncellemesi kimlik bilgilerine dokunamaz.
func (r *sqliteUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET name = ?, surname = ?, street = ?, city = ?, postal_code = ?, country = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Surname,
		user.Address.Street, user.Address.City, user.Address.PostalCode, user.Address.Country,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	// RowsAffected: kaç satır etkilendi? 0 ise kullanıcı bulunamadı.
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// UpdatePassword, kullanıcının şifre hash'ini günceller.
// AuthService.ChangePassword tarafından çağrılır — yeni bcrypt hash alır.
func (r *sqliteUserRepo) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newPasswordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// SetRefreshToken, kullanıcının aktif refresh token'ını koşulsuz yazar.
// token nil → oturum temizlenir (sign-out).
func (r *sqliteUserRepo) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = ? WHERE id = ?`, token, userID)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// RotateRefreshToken, atomik compare-and-swap ile token rotasyonu yapar.
//
// WHERE koşulundaki refresh_token = presented karşılaştırması, read-then-write
// yarışını tek UPDATE'e indirger: iki eşzamanlı refresh aynı token ile
// geldiğinde yalnızca biri satırı etkiler, diğeri 0 rows görür.
// Süperseded bir token'ın reuse'u da aynı şekilde 0 rows'a düşer.
func (r *sqliteUserRepo) RotateRefreshToken(ctx context.Context, userID, presented, next string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = ? WHERE id = ? AND refresh_token = ?`,
		next, userID, presented)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// ClearRefreshToken, stored token presented ile eşleşiyorsa NULL'lar.
// 0 rows affected hata DEĞİLDİR: token zaten süperseded olabilir —
// sign-out yine başarılı sayılır (cookie'ler her durumda temizlenir).
func (r *sqliteUserRepo) ClearRefreshToken(ctx context.Context, userID, presented string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = ? AND refresh_token = ?`,
		userID, presented)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// scanUser, tek satırlık user sorgusunun sonucunu struct'a aktarır.
func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Surname, &user.Email, &user.PasswordHash,
		&user.Address.Street, &user.Address.City, &user.Address.PostalCode, &user.Address.Country,
		&user.Role, &user.RefreshToken, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
