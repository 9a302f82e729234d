package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUnderLimit(t *testing.T) {
	gate := NewFixedWindow(3, time.Minute)
	defer gate.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, gate.Allow("1.2.3.4", "sign-in"), "istek %d limit içinde olmalı", i+1)
	}
}

func TestBlockOverLimit(t *testing.T) {
	gate := NewFixedWindow(2, time.Minute)
	defer gate.Stop()

	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))
}

func TestRouteKeysAreIndependent(t *testing.T) {
	gate := NewFixedWindow(1, time.Minute)
	defer gate.Stop()

	// sign-in kotası dolsa bile catalog kotası etkilenmez
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.True(t, gate.Allow("1.2.3.4", "catalog"))
}

func TestClientKeysAreIndependent(t *testing.T) {
	gate := NewFixedWindow(1, time.Minute)
	defer gate.Stop()

	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.True(t, gate.Allow("5.6.7.8", "sign-in"))
}

func TestResetClearsCounter(t *testing.T) {
	gate := NewFixedWindow(1, time.Minute)
	defer gate.Stop()

	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))

	// Başarılı sign-in sonrası reset — sayaç sıfırlanır
	gate.Reset("1.2.3.4", "sign-in")
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
}

func TestWindowExpiry(t *testing.T) {
	gate := NewFixedWindow(2, 20*time.Millisecond)
	defer gate.Stop()

	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))

	time.Sleep(30 * time.Millisecond)

	// Pencere süresi doldu — sayaç topluca sıfırlanır, tam kota yeniden açılır
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.True(t, gate.Allow("1.2.3.4", "sign-in"))
	assert.False(t, gate.Allow("1.2.3.4", "sign-in"))
}

func TestRetryAfterSeconds(t *testing.T) {
	gate := NewFixedWindow(1, time.Minute)
	defer gate.Stop()

	// Hiç istek yokken 0
	assert.Equal(t, 0, gate.RetryAfterSeconds("1.2.3.4", "sign-in"))

	gate.Allow("1.2.3.4", "sign-in")

	retry := gate.RetryAfterSeconds("1.2.3.4", "sign-in")
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 61)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		realIP   string
		remote   string
		expected string
	}{
		{"x-forwarded-for tek IP", "10.0.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-forwarded-for zincir — ilk IP client", "10.0.0.1, 10.0.0.2", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-real-ip fallback", "", "10.0.0.5", "192.168.1.1:1234", "10.0.0.5"},
		{"remote addr fallback", "", "", "192.168.1.1:1234", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.expected, ExtractIP(r))
		})
	}
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
}
