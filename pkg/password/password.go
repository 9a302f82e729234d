// Package password, şifre hash'leme ve doğrulama işlemlerini tek noktada toplar.
//
// Neden ayrı paket?
// Hash'leme hem sign-up hem password-change akışında kullanılır.
// Service'lerin bcrypt detayını bilmesine gerek yok — cost değişirse
// sadece burası güncellenir. Paket hiçbir proje içi pakete bağımlı
// değildir (leaf dependency).
//
// Bcrypt, salt'ı hash'in içine gömer — aynı şifre her hash'lemede farklı
// bir string üretir. Karşılaştırma bu yüzden string equality ile DEĞİL,
// bcrypt.CompareHashAndPassword ile yapılır.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// cost, bcrypt work factor'ı. 12 → ~250ms/hash civarı; brute-force'u
// yavaşlatır ama login latency'sini kabul edilebilir tutar.
const cost = 12

// Hash, plaintext şifreden bcrypt hash üretir.
// Dönen string salt + cost + digest içerir, doğrudan DB'ye yazılabilir.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify, plaintext şifreyi stored hash ile karşılaştırır.
//
// Yanlış şifre bir error DEĞİLDİR — (false, nil) döner.
// Error sadece hash'in kendisi bozuksa döner (truncate olmuş DB kolonu,
// bcrypt olmayan bir değer vb.).
//
// Plaintext veya hash hiçbir zaman log'lanmaz ve geri dönmez.
func Verify(plaintext, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("malformed password hash: %w", err)
}
