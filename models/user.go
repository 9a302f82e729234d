// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// Go'da `json:"email"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lucamori/vinea/pkg"
)

// Role, kullanıcının platform rolünü temsil eder.
// Go'da enum yoktur, bunun yerine typed constant'lar kullanılır.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Password policy sabitleri — sign-up ve password-change aynı kuralları uygular.
const minPasswordLength = 10

// User, bir kullanıcıyı temsil eder.
//
// PasswordHash ve RefreshToken `json:"-"` ile işaretli — bu alanlar
// HİÇBİR API response'una serialize edilmez (güvenlik!).
//
// RefreshToken, kullanıcının o an geçerli olan TEK refresh token'ıdır
// (stateful tasarım): her sign-in/rotation üzerine yazar, sign-out NULL'lar.
// Detay için bkz. services.AuthService.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      Address   `json:"address"`
	Role         Role      `json:"role"`
	RefreshToken *string   `json:"-"` // *string = nullable — oturum yoksa nil
	CreatedAt    time.Time `json:"created_at"`
}

// Address, kullanıcının teslimat adresi. Ayrı tablo değil — users
// tablosunda düz kolonlar olarak saklanır (her kullanıcının tek adresi var).
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// emailRegex — pragmatik email format kontrolü.
// RFC 5322'nin tamamını kovalamak anlamsız; "bir şey @ bir şey . bir şey"
// yeterli, gerisi doğrulama mailinin işi.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, email format regex'ini döner (testlerde ve service'lerde kullanılır).
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// SignUpRequest, kayıt olurken frontend'den gelen veri.
//
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
// DİKKAT: Role alanı BİLEREK yok. Kayıt olan herkes "user" rolü alır;
// privilege alanı client tarafından asla set edilemez.
type SignUpRequest struct {
	Name     string  `json:"name"`
	Surname  string  `json:"surname"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Address  Address `json:"address"`
}

// Validate, SignUpRequest'in geçerli olup olmadığını kontrol eder.
//
// İlk hatada durmaz — TÜM hataları toplar ve pkg.ValidationErrors olarak
// döner. Client formdaki her sorunu tek seferde görür.
//
// Kurallar:
//   - Email: geçerli format (zorunlu)
//   - Password: ≥10 karakter, en az 1 küçük + 1 büyük harf + 1 rakam + 1 sembol
//   - Name/Surname: opsiyonel, max 50 karakter
//
// Validation store'a dokunMADAN yapılır — bozuk input hiçbir DB
// sorgusu tetiklemez.
func (r *SignUpRequest) Validate() error {
	var issues []string

	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		issues = append(issues, "invalid email format")
	}

	issues = append(issues, ValidatePasswordPolicy(r.Password)...)

	r.Name = strings.TrimSpace(r.Name)
	if utf8.RuneCountInString(r.Name) > 50 {
		issues = append(issues, "name must be at most 50 characters")
	}

	r.Surname = strings.TrimSpace(r.Surname)
	if utf8.RuneCountInString(r.Surname) > 50 {
		issues = append(issues, "surname must be at most 50 characters")
	}

	if len(issues) > 0 {
		return &pkg.ValidationErrors{Issues: issues}
	}
	return nil
}

// ValidatePasswordPolicy, şifrenin minimum entropy politikasını kontrol eder.
// Dönen slice boşsa şifre geçerlidir.
//
// Politika: uzunluk ≥10, ≥1 küçük harf, ≥1 büyük harf, ≥1 rakam, ≥1 sembol.
func ValidatePasswordPolicy(password string) []string {
	var issues []string

	if utf8.RuneCountInString(password) < minPasswordLength {
		issues = append(issues, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, ch := range password {
		switch {
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			// Harf/rakam olmayan her şey sembol sayılır (boşluk dahil)
			hasSymbol = true
		}
	}

	if !hasLower {
		issues = append(issues, "password must contain at least one lowercase letter")
	}
	if !hasUpper {
		issues = append(issues, "password must contain at least one uppercase letter")
	}
	if !hasDigit {
		issues = append(issues, "password must contain at least one digit")
	}
	if !hasSymbol {
		issues = append(issues, "password must contain at least one symbol")
	}

	return issues
}

// SignInRequest, giriş yaparken frontend'den gelen veri.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, SignInRequest'in geçerli olup olmadığını kontrol eder.
func (r *SignInRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest, profil güncellemesi için.
// Pointer field'lar "gönderilmedi" (nil) ile "boş string gönderildi" ayrımını sağlar.
//
// Şifre alanı BİLEREK yok: profil güncellemesi password hash'ine asla
// dokunamaz. Şifre değişimi ayrı ve açık bir akıştır (ChangePasswordRequest).
type UpdateProfileRequest struct {
	Name    *string  `json:"name"`
	Surname *string  `json:"surname"`
	Address *Address `json:"address"`
}

// Validate, UpdateProfileRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	var issues []string

	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if utf8.RuneCountInString(*r.Name) > 50 {
			issues = append(issues, "name must be at most 50 characters")
		}
	}
	if r.Surname != nil {
		*r.Surname = strings.TrimSpace(*r.Surname)
		if utf8.RuneCountInString(*r.Surname) > 50 {
			issues = append(issues, "surname must be at most 50 characters")
		}
	}

	if len(issues) > 0 {
		return &pkg.ValidationErrors{Issues: issues}
	}
	return nil
}

// ChangePasswordRequest, şifre değiştirme isteği.
// Bu istek, hash'in yeniden hesaplandığı TEK yazma yoludur (sign-up dışında) —
// "password changed" bilgisi caller tarafından açıkça taşınır, dirty-tracking yok.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate, ChangePasswordRequest'in geçerli olup olmadığını kontrol eder.
// Yeni şifre sign-up ile aynı politikaya tabidir.
func (r *ChangePasswordRequest) Validate() error {
	var issues []string

	if r.CurrentPassword == "" {
		issues = append(issues, "current_password is required")
	}
	issues = append(issues, ValidatePasswordPolicy(r.NewPassword)...)

	if len(issues) > 0 {
		return &pkg.ValidationErrors{Issues: issues}
	}
	return nil
}
