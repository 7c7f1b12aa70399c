package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedSecretGrant(t *testing.T) {
	grant := &SharedSecretGrant{Token: "devtoken"}

	tests := []struct {
		name    string
		setup   func(r *http.Request)
		wantErr error
	}{
		{
			name:    "header match",
			setup:   func(r *http.Request) { r.Header.Set("X-Admin-Token", "devtoken") },
			wantErr: nil,
		},
		{
			name:    "query match",
			setup:   func(r *http.Request) { r.URL.RawQuery = "admin_token=devtoken" },
			wantErr: nil,
		},
		{
			name:    "header wins over query",
			setup: func(r *http.Request) {
				r.Header.Set("X-Admin-Token", "wrong")
				r.URL.RawQuery = "admin_token=devtoken"
			},
			wantErr: common.ErrorUnauthorized,
		},
		{
			name:    "wrong token",
			setup:   func(r *http.Request) { r.Header.Set("X-Admin-Token", "nope") },
			wantErr: common.ErrorUnauthorized,
		},
		{
			name:    "missing token",
			setup:   func(r *http.Request) {},
			wantErr: common.ErrorUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
			tt.setup(r)
			assert.Equal(t, tt.wantErr, grant.Authorize(r))
		})
	}
}

func TestSessionCookieGrant(t *testing.T) {
	key := []byte("signing-key")
	grant := &SessionCookieGrant{SigningKey: key}

	tok, err := GenerateAdminToken(key, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.AddCookie(&http.Cookie{Name: AdminCookieName, Value: tok})
	assert.NoError(t, grant.Authorize(r))

	// no cookie
	r = httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	assert.ErrorIs(t, grant.Authorize(r), common.ErrorUnauthorized)

	// cookie signed with another key
	other, err := GenerateAdminToken([]byte("other-key"), time.Hour)
	require.NoError(t, err)
	r = httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.AddCookie(&http.Cookie{Name: AdminCookieName, Value: other})
	assert.ErrorIs(t, grant.Authorize(r), common.ErrorUnauthorized)
}

func TestGate_AnyGrantPasses(t *testing.T) {
	key := []byte("signing-key")
	gate := NewGate(
		&SharedSecretGrant{Token: "devtoken"},
		&SessionCookieGrant{SigningKey: key},
	)

	// shared secret path
	r := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.Header.Set("X-Admin-Token", "devtoken")
	assert.NoError(t, gate.Authorize(r))

	// cookie path
	tok, err := GenerateAdminToken(key, time.Hour)
	require.NoError(t, err)
	r = httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.AddCookie(&http.Cookie{Name: AdminCookieName, Value: tok})
	assert.NoError(t, gate.Authorize(r))

	// neither
	r = httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	assert.ErrorIs(t, gate.Authorize(r), common.ErrorUnauthorized)
}
