package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/prefs"
)

// sessionCookie identifies the browser session backing the primary
// preference channel.
const sessionCookie = "mealtrack_session"

// sessionID returns the request's session ID, minting and setting one
// when the cookie is absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.HTTP.SecureCookies,
	}
	http.SetCookie(w, cookie)
	return id
}

// prefStore builds the per-request dual-channel preference store:
// session rows in the metadata store as the primary channel, cookies
// as the fallback.
func (s *Server) prefStore(w http.ResponseWriter, r *http.Request) *prefs.Store {
	sid := s.sessionID(w, r)
	primary := prefs.NewSessionChannel(r.Context(), sid, s.store)
	fallback := prefs.NewCookieChannel(w, r, s.cfg.Preferences.CookieTTLDays, s.cfg.HTTP.SecureCookies)
	return prefs.NewStore(primary, fallback)
}
