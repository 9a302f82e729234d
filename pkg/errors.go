// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları fmt.Errorf("%w: ...") ile wrap edip döner,
// response formatter HTTP status code'larına map'ler.
//
// Taksonomi:
//   - ErrBadRequest    → 400 (input şekli bozuk, validation)
//   - ErrUnauthorized  → 401 (yanlış şifre, eksik/geçersiz/süresi dolmuş token)
//   - ErrForbidden     → 403 (kimlik doğru ama yetki yok)
//   - ErrNotFound      → 404 (kayıt yok)
//   - ErrAlreadyExists → 400 (unique alan çakışması — email)
//   - ErrInternal      → 500 (beklenmeyen)
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
