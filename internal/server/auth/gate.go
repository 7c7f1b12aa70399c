package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/Berkcanaskin/stellar/internal/common"
)

// AdminCookieName is the cookie carrying the signed admin session token.
const AdminCookieName = "__nf_admin"

// Grant is one way of proving admin access on an incoming request.
type Grant interface {
	Authorize(r *http.Request) error
}

// SharedSecretGrant accepts the deployment's admin token verbatim, from
// the X-Admin-Token header or the admin_token query parameter. This is the
// path automation uses; browsers go through SessionCookieGrant.
type SharedSecretGrant struct {
	Token string
}

func (g *SharedSecretGrant) Authorize(r *http.Request) error {
	presented := r.Header.Get("X-Admin-Token")
	if presented == "" {
		presented = r.URL.Query().Get("admin_token")
	}
	if presented == "" {
		return common.ErrorUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(g.Token)) != 1 {
		return common.ErrorUnauthorized
	}
	return nil
}

// SessionCookieGrant accepts a valid admin session cookie.
type SessionCookieGrant struct {
	SigningKey []byte
}

func (g *SessionCookieGrant) Authorize(r *http.Request) error {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil {
		return common.ErrorUnauthorized
	}
	if err := VerifyAdminToken(cookie.Value, g.SigningKey); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}

// Gate authorizes a request if any of its grants does.
type Gate struct {
	grants []Grant
}

func NewGate(grants ...Grant) *Gate {
	return &Gate{grants: grants}
}

func (g *Gate) Authorize(r *http.Request) error {
	for _, grant := range g.grants {
		if err := grant.Authorize(r); err == nil {
			return nil
		}
	}
	return common.ErrorUnauthorized
}
