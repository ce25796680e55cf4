package preference

import (
	"net/http"
	"time"

	"isoatthetop.com/web/internal/routing"
)

// StorageKey is the logical key of the preferred season.
const StorageKey = "isoatthetop:season"

// CookieName is StorageKey made legal as a cookie name (":" is not a token character).
const CookieName = "isoatthetop_season"

const cookieMaxAge = 365 * 24 * time.Hour

// Store persists the visitor's last chosen season.
type Store interface {
	Get(r *http.Request) (routing.Season, bool)
	Set(w http.ResponseWriter, season routing.Season)
}

// CookieStore keeps the preference in a long-lived cookie holding the literal
// season name. Unreadable or invalid values are treated as absent.
type CookieStore struct {
	Secure bool
	now    func() time.Time
}

// NewCookieStore returns a cookie-backed store.
func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{Secure: secure, now: time.Now}
}

// Get returns the stored season if present and valid.
func (s *CookieStore) Get(r *http.Request) (routing.Season, bool) {
	if r == nil {
		return "", false
	}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return routing.ParseSeason(c.Value)
}

// Set stores season. Invalid seasons are ignored.
func (s *CookieStore) Set(w http.ResponseWriter, season routing.Season) {
	if w == nil {
		return
	}
	if _, ok := routing.ParseSeason(string(season)); !ok {
		return
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(season),
		Path:     "/",
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  now().Add(cookieMaxAge),
	})
}
