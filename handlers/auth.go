package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lucamori/vinea/config"
	"github.com/lucamori/vinea/models"
	"github.com/lucamori/vinea/pkg"
	"github.com/lucamori/vinea/pkg/ratelimit"
	"github.com/lucamori/vinea/services"
)

// Cookie isimleri — guard ve handler aynı sabitleri kullanır.
const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// AuthHandler, kimlik/oturum endpoint'lerini yönetir.
//
// Token transport config'e bağlıdır:
//   - cookie: token'lar httpOnly + SameSite=Strict cookie'lerde taşınır,
//     response body'sinde GÖRÜNMEZ (XSS'e karşı JS erişimi kapalı)
//   - body:   token'lar JSON body'de döner, client kendisi saklar
//     (mobil/CLI client'lar için)
type AuthHandler struct {
	authService services.AuthService
	issuer      *services.TokenIssuer
	gate        ratelimit.Gate
	cfg         *config.Config
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService, issuer *services.TokenIssuer, gate ratelimit.Gate, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
		gate:        gate,
		cfg:         cfg,
	}
}

// authResponse, sign-up/sign-in/refresh yanıtı.
// Cookie transport'ta token alanları boş bırakılır → omitempty sayesinde
// body'ye hiç girmez.
type authResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
}

// SignUp — POST /sign-up
// Başarıda 201 + yeni oturum (kayıt aynı zamanda giriştir).
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.writeSession(w, http.StatusCreated, session)
}

// SignIn — POST /sign-in
// Başarılı girişte client'ın rate limit sayacı sıfırlanır — meşru
// kullanıcı, önceki başarısız denemeleri yüzünden bloke kalmaz.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.SignIn(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.gate.Reset(ratelimit.ExtractIP(r), "sign-in")
	h.writeSession(w, http.StatusOK, session)
}

// Refresh — POST /refresh-token
// Sunulan refresh token karşılığında yeni bir çift döner (rotation).
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.readRefreshToken(r)
	if refreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "refresh token is required")
		return
	}

	session, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		// Başarısız refresh'te cookie'ler temizlenir — client ölü token'ı
		// tekrar tekrar sunup durmasın.
		if h.cfg.Auth.TokenTransport == config.TransportCookie {
			h.clearAuthCookies(w)
		}
		pkg.Error(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, session)
}

// SignOut — POST /sign-out
// Stored refresh token server-side iptal edilir, cookie'ler her durumda
// temizlenir. Token geçersiz bile olsa 200 döner — çıkış her zaman mümkündür.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.readRefreshToken(r)
	if refreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "refresh token is required")
		return
	}

	if err := h.authService.SignOut(r.Context(), refreshToken); err != nil {
		pkg.Error(w, err)
		return
	}

	if h.cfg.Auth.TokenTransport == config.TransportCookie {
		h.clearAuthCookies(w)
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "signed out successfully"})
}

// Me — GET /me
// Guard'ın context'e koyduğu kullanıcıyı döner.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile — PATCH /me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"user": updated})
}

// ChangePassword — POST /me/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// ─── Private Helpers ───

// writeSession, oturumu transport'a göre serialize eder.
// Cookie modunda token'lar SADECE cookie'lerde, body'de sadece user vardır.
func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, session *services.AuthSession) {
	resp := authResponse{User: session.User}

	if h.cfg.Auth.TokenTransport == config.TransportCookie {
		h.setAuthCookies(w, session.Tokens)
	} else {
		resp.AccessToken = session.Tokens.AccessToken
		resp.RefreshToken = session.Tokens.RefreshToken
	}

	pkg.JSON(w, status, resp)
}

// readRefreshToken, transport'a göre refresh token'ı bulur:
// cookie modunda "refresh_token" cookie'si, body modunda JSON body.
func (h *AuthHandler) readRefreshToken(r *http.Request) string {
	if h.cfg.Auth.TokenTransport == config.TransportCookie {
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	return body.RefreshToken
}

// setAuthCookies, token çiftini httpOnly cookie'lere yazar.
//
// Cookie güvenlik ayarları:
//   - HttpOnly: JS'den okunamaz (XSS'te token çalınamaz)
//   - SameSite=Strict: cross-site isteklerde gönderilmez (CSRF)
//   - Secure: production'da sadece HTTPS üzerinden
//   - MaxAge: token'ın imzalı expiry'si ile AYNI kaynaktan (issuer TTL)
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens models.TokenPair) {
	secure := h.cfg.Server.IsProduction()

	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    tokens.AccessToken,
		Path:     "/",
		MaxAge:   int(h.issuer.AccessTTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.issuer.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies, her iki cookie'yi MaxAge=-1 ile siler.
func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cfg.Server.IsProduction(),
			SameSite: http.SameSiteStrictMode,
		})
	}
}
