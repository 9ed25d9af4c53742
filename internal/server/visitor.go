package server

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// cidCookie carries the opaque visitor ID; assignCookie carries the
	// encoded assignment set. Both live for a year.
	cidCookie    = "ab_cid"
	assignCookie = "ab_assign"
	cookieMaxAge = 365 * 24 * 60 * 60
)

type visitor struct {
	id    string
	isNew bool
}

// identify returns the visitor from the request cookie, minting a fresh ID
// for first-time visitors.
func identify(r *http.Request) visitor {
	if c, err := r.Cookie(cidCookie); err == nil && c.Value != "" {
		return visitor{id: c.Value}
	}
	return visitor{id: uuid.NewString(), isNew: true}
}

// assignToken returns the persisted assignment token, or "" when absent.
// A damaged token is handled downstream by the tolerant decoder.
func assignToken(r *http.Request) string {
	if c, err := r.Cookie(assignCookie); err == nil {
		return c.Value
	}
	return ""
}

func setVisitorCookies(w http.ResponseWriter, v visitor, token string) {
	if v.isNew {
		http.SetCookie(w, &http.Cookie{
			Name:     cidCookie,
			Value:    v.id,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.SetCookie(w, &http.Cookie{
		Name:     assignCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
