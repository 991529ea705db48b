package prefs

import (
	"net/http"
	"net/url"
)

// DefaultTTLDays is the cookie lifetime applied when no explicit TTL
// is configured.
const DefaultTTLDays = 365

// CookieChannel persists preferences as URL-encoded cookies scoped to
// path "/". Over plain HTTP the cookies are SameSite=Lax; when the
// service is served over HTTPS they switch to SameSite=None with the
// Secure attribute so cross-origin proxying keeps working.
type CookieChannel struct {
	w       http.ResponseWriter
	r       *http.Request
	ttlDays int
	secure  bool
}

// NewCookieChannel builds a per-request cookie channel. ttlDays <= 0
// falls back to DefaultTTLDays.
func NewCookieChannel(w http.ResponseWriter, r *http.Request, ttlDays int, secure bool) *CookieChannel {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}
	return &CookieChannel{w: w, r: r, ttlDays: ttlDays, secure: secure}
}

// Get reads the cookie for name. An absent or undecodable cookie is a
// miss, not an error.
func (c *CookieChannel) Get(name string) (string, error) {
	if c.r == nil {
		return "", nil
	}
	cookie, err := c.r.Cookie(url.QueryEscape(name))
	if err != nil {
		return "", nil
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", nil
	}
	return value, nil
}

// Set writes the cookie with Max-Age derived from the configured TTL
// in days.
func (c *CookieChannel) Set(name, value string) error {
	if c.w == nil {
		return nil
	}
	cookie := &http.Cookie{
		Name:     url.QueryEscape(name),
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   c.ttlDays * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	}
	if c.secure {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	}
	http.SetCookie(c.w, cookie)
	return nil
}
