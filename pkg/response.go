package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// APIResponse, tüm API yanıtları için standart format.
// Frontend her zaman aynı yapıyı bekler — tutarlılık önemli.
//
// Başarılı yanıt: {"status":"success","data":{...}}
// Hata yanıtı:    {"status":"error","message":"..."} (+ varsa "errors" listesi)
type APIResponse struct {
	Status  string   `json:"status"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidationErrors, birden fazla validation hatasını tek bir error olarak taşır.
// Sign-up gibi çok alanlı formlarda kullanıcıya tüm hataları aynı anda göstermek isteriz,
// ilk hatada durmak yerine.
//
// Unwrap() ErrBadRequest döner — errors.Is(err, pkg.ErrBadRequest) true olur,
// dolayısıyla formatter otomatik olarak 400'e map'ler.
type ValidationErrors struct {
	Issues []string
}

func (e *ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return ErrBadRequest
}

// JSON, başarılı bir yanıt gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status: "success",
		Data:   data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları tek noktadan uygun HTTP status code'a çevrilir.
// ValidationErrors ise ayrıca "errors" listesi olarak serialize edilir.
//
// Güvenlik: internal error'ların detayı (SQL, stack trace) client'a sızmamalı.
// 500 durumunda sabit bir mesaj döneriz; gerçek hata server log'unda kalır.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	resp := APIResponse{
		Status:  "error",
		Message: err.Error(),
	}

	var verrs *ValidationErrors
	if errors.As(err, &verrs) {
		resp.Message = "validation failed"
		resp.Errors = verrs.Issues
	}

	if status == http.StatusInternalServerError {
		resp.Message = "internal server error: an unexpected error occurred"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status:  "error",
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() kullanarak error chain'ini kontrol eder —
// wrap edilmiş error'lar da doğru match eder.
//
// Not: ErrAlreadyExists 400'e map'lenir (409 değil) — duplicate email,
// client açısından düzeltilebilir bir input hatasıdır.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
