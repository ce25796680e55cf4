package contact

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// BannerKind selects the message shown after a submission.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// DismissAfter is how long a banner stays on screen.
const DismissAfter = 5 * time.Second

// Banner is the transient outcome message of the form.
type Banner struct {
	Kind BannerKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// Visible reports whether there is anything to show.
func (b Banner) Visible() bool { return b.Kind == BannerSuccess || b.Kind == BannerError }

// DismissAfterMillis is the data-dismiss-after attribute value.
func (b Banner) DismissAfterMillis() int64 { return DismissAfter.Milliseconds() }

const flashCookieName = "isoatthetop_flash"

// Flash carries a Banner across the post/redirect/get round trip in a signed cookie.
type Flash struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewFlash builds a Flash signing cookies with hashKey.
func NewFlash(hashKey []byte, secure bool) (*Flash, error) {
	if len(hashKey) < 32 {
		return nil, fmt.Errorf("contact: flash hash key must be at least 32 bytes")
	}
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(time.Minute.Seconds()))
	return &Flash{codec: codec, secure: secure}, nil
}

// Set stores b for the next page view.
func (f *Flash) Set(w http.ResponseWriter, b Banner) error {
	encoded, err := f.codec.Encode(flashCookieName, b)
	if err != nil {
		return fmt.Errorf("contact: encode flash: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
	return nil
}

// Pop returns the pending banner, if any, and clears the cookie.
// Tampered or expired cookies are discarded.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) (Banner, bool) {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return Banner{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	var b Banner
	if err := f.codec.Decode(flashCookieName, c.Value, &b); err != nil {
		return Banner{}, false
	}
	return b, b.Visible()
}
