// Package handlers, HTTP handler katmanını barındırır.
//
// Handler'ın sorumluluğu dardır:
//  1. Request'i parse et (body, query param, cookie)
//  2. Service method'unu çağır
//  3. Sonucu standart envelope ile serialize et
//
// İş kuralı BURADA YAŞAMAZ — validation ve karar mantığı service katmanındadır.
package handlers

// contextKey, context.WithValue için özel tip.
//
// Neden string değil? Başka bir paket de context'e "user" anahtarıyla değer
// koyarsa çakışma olur. Özel tip ile anahtar bu pakete özgü kalır.
type contextKey string

// UserContextKey, access guard'ın doğruladığı kullanıcıyı taşır.
// Değer tipi *models.User'dır.
const UserContextKey contextKey = "user"
