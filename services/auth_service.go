package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/pkg/password"
	"github.com/lucamori/vinea/repository"
)

// AuthService interface'i — session controller'ın dışarıya açık API'si.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*AuthSession, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*AuthSession, error)
	// Refresh, geçerli bir refresh token karşılığında YENİ bir çift üretir
	// (rotation) — sunulan token süperseded olur.
	Refresh(ctx context.Context, refreshToken string) (*AuthSession, error)
	// SignOut, stored refresh token'ı server-side iptal eder.
	SignOut(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error
}

// AuthSession, sign-up/sign-in/refresh sonrası dönen token çifti + kullanıcı.
// Handler, transport config'e göre token'ları cookie'ye mi body'ye mi
// koyacağına karar verir — service bu kararı BİLMEZ.
type AuthSession struct {
	Tokens models.TokenPair
	User   models.User
}

// authService, AuthService interface'inin implementasyonu.
//
// Session tasarımı: STATEFUL stored-and-compared refresh token.
// Kullanıcının o an geçerli TEK refresh token'ı users.refresh_token
// kolonunda tutulur:
//   - Sign-in/sign-up token'ı yazar (önceki oturumu süperseder)
//   - Refresh, atomik CAS ile rotasyon yapar — süperseded token reuse'u
//     ve eşzamanlı refresh yarışı 401 ile reddedilir
//   - Sign-out token'ı NULL'lar → oturum anında revoke edilir
//
// Revocation garantisi: çalınan bir refresh token, sahibi bir kez daha
// sign-in/refresh/sign-out yaptığı anda geçersizleşir. Access token'lar
// stateless'tır ve kendi (kısa) expiry'lerine kadar geçerli kalır —
// sign-out access token'ı iptal ETMEZ, bu bilinçli bir sınırlamadır.
type authService struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
}

// NewAuthService, constructor.
func NewAuthService(userRepo repository.UserRepository, issuer *TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// SignUp, yeni kullanıcı kaydı oluşturur.
//
// Sıralama önemli:
// 1. Validation — store'a dokunmadan ÖNCE; bozuk input hiçbir sorgu tetiklemez
// 2. Hash — persist edilecek değer hesaplanır; plaintext asla DB'ye gitmez
// 3. Persist — duplicate email burada ErrAlreadyExists olarak yüzeye çıkar
// 4. Token üret + refresh token'ı kullanıcıya bağla
//
// Rol HER ZAMAN "user" olarak set edilir — SignUpRequest'te rol alanı yoktur,
// client ne gönderirse göndersin privilege yükseltemez.
func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (*AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir (duplicate email)
	}

	return s.openSession(ctx, user)
}

// SignIn, kullanıcı girişi yapar.
//
// Bilinen zayıflık (bilinçli taşınıyor): bilinmeyen email 404, yanlış şifre
// 401 döner — bu fark kayıtlı email'lerin enumerate edilmesine izin verir.
// Tek tip 401'e geçmek bir ürün kararıdır, sessizce "düzeltilmedi".
func (s *authService) SignIn(ctx context.Context, req *models.SignInRequest) (*AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	ok, err := password.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
	}

	return s.openSession(ctx, user)
}

// Refresh, refresh token rotasyonu yapar.
//
// Rotasyon atomiktir: stored token sunulan ile CAS karşılaştırılarak tek
// UPDATE'te değiştirilir. İki eşzamanlı refresh aynı token ile gelirse
// yalnızca biri kazanır; kaybeden (ve süperseded token'ı tekrar sunan
// herkes) 401 alır.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired refresh token", pkg.ErrUnauthorized)
	}

	tokens, err := s.issuer.Issue(claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RotateRefreshToken(ctx, claims.UserID, refreshToken, tokens.RefreshToken); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Stored token sunulanla eşleşmedi: süperseded token reuse'u,
			// kaybedilen rotation yarışı veya silinmiş kullanıcı.
			return nil, fmt.Errorf("%w: invalid or expired refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	sanitize(user)
	return &AuthSession{Tokens: *tokens, User: *user}, nil
}

// SignOut, oturumu sonlandırır.
//
// Token imza/expiry kontrolünden geçerse stored token server-side
// NULL'lanır (revocation). Geçmezse store'a DOKUNULMAZ ama hata da
// dönülmez — handler her durumda cookie'leri temizler; işe yaramaz bir
// token için 401 dönmek client'ı çıkışsız bırakırdı.
func (s *authService) SignOut(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	return s.userRepo.ClearRefreshToken(ctx, claims.UserID, refreshToken)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
// Access guard (middleware) bu method'u kullanır.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	return s.issuer.VerifyAccess(tokenString)
}

// UpdateProfile, profil alanlarını günceller.
// Şifre hash'ine ve refresh token'a ASLA dokunmaz — repository'nin
// UpdateProfile query'si bu kolonları içermez.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	sanitize(user)
	return user, nil
}

// ChangePassword, kullanıcının şifresini değiştirir.
//
// Hash'in yeniden hesaplandığı TEK yol budur (sign-up dışında).
// "Şifre değişti" bilgisi bu method'un çağrılmış olmasının kendisidir —
// dirty-tracking veya pre-save hook yoktur. Zaten hash'lenmiş bir değerin
// tekrar hash'lenmesi bu tasarımda mümkün değildir: UpdatePassword'e giden
// değer her zaman bu method içinde taze hesaplanır.
func (s *authService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := password.Verify(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	newHash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, newHash)
}

// ─── Private Helpers ───

// openSession, token çifti üretir, refresh token'ı kullanıcıya bağlar
// (önceki oturum varsa süperseder) ve response'a hazır AuthSession döner.
func (s *authService) openSession(ctx context.Context, user *models.User) (*AuthSession, error) {
	tokens, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to bind refresh token: %w", err)
	}

	sanitize(user)
	return &AuthSession{Tokens: *tokens, User: *user}, nil
}

// sanitize, response'a gitmemesi gereken alanları temizler.
// json:"-" tag'leri zaten serialize etmez ama context'e/log'a sızma
// ihtimaline karşı struct üzerinde de sıfırlıyoruz.
func sanitize(user *models.User) {
	user.PasswordHash = ""
	user.RefreshToken = nil
}
