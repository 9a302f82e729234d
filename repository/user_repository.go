// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern nedir?
// Veritabanı işlemlerini (CRUD) soyutlayan bir tasarım kalıbıdır.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: Fake repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan PostgreSQL'e geçmek istersen sadece yeni implementasyon yazarsın
// 3. SOLID (Dependency Inversion): Service, concrete struct'a değil interface'e bağımlı
//
// Go'da interface "implicit"tır — bir struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/lucamori/vinea/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Yazma yolları bilinçli olarak ayrıştırılmıştır:
//   - UpdateProfile password_hash kolonuna ASLA dokunmaz
//   - UpdatePassword SADECE password_hash'i günceller
//   - Refresh token mutasyonları kendi method'larında yaşar
//
// Böylece "hash'i ne zaman yeniden hesaplamalı" sorusu repository'de
// örtük bir dirty-check'e değil, caller'ın hangi method'u çağırdığına bağlıdır.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	// SetRefreshToken, kullanıcının aktif refresh token'ını koşulsuz yazar.
	// Sign-in yeni token yazar, sign-out nil ile temizler.
	SetRefreshToken(ctx context.Context, userID string, token *string) error
	// RotateRefreshToken, atomik compare-and-swap ile token rotasyonu yapar:
	// stored token == presented ise next yazılır. Eşleşme yoksa (süperseded
	// token reuse'u veya eşzamanlı rotation yarışı) pkg.ErrNotFound döner —
	// service bunu 401'e çevirir.
	RotateRefreshToken(ctx context.Context, userID, presented, next string) error
	// ClearRefreshToken, stored token presented ile eşleşiyorsa NULL'lar
	// (sign-out). Eşleşme yoksa sessizce geçer — sign-out idempotent'tir ve
	// stale bir token, araya giren yeni oturumu öldürememelidir.
	ClearRefreshToken(ctx context.Context, userID, presented string) error
}
