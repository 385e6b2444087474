package handlers

import (
	"net/http"

	"github.com/handsomefox/cinestream/internal/env"
)

// welcomeCookieName marks a browser session that has already seen the
// welcome toast. It carries no Max-Age so it ends with the session.
const welcomeCookieName = "cs_welcome"

// cookieMarker adapts the request's cookie jar to browse.Marker.
type cookieMarker struct {
	w http.ResponseWriter
	r *http.Request
}

func (m cookieMarker) Seen() bool {
	c, err := m.r.Cookie(welcomeCookieName)
	return err == nil && c.Value == "1"
}

func (m cookieMarker) MarkSeen() {
	http.SetCookie(m.w, &http.Cookie{
		Name:     welcomeCookieName,
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		SameSite: sameSite(),
		Secure:   secure(),
	})
}

func sameSite() http.SameSite {
	switch env.Current {
	case env.Production:
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func secure() bool {
	switch env.Current {
	case env.Production:
		return true
	default:
		return false
	}
}
