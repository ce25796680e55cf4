package middleware

import (
	"context"

	"isoatthetop.com/web/internal/routing"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeyLocale    ctxKey = "locale"
	ctxKeyCSRF      ctxKey = "csrf"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithLocale stores the page locale.
func WithLocale(ctx context.Context, l routing.Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, l)
}

// LocaleFrom returns the page locale, English when unset.
func LocaleFrom(ctx context.Context) routing.Locale {
	if l, ok := ctx.Value(ctxKeyLocale).(routing.Locale); ok && l != "" {
		return l
	}
	return routing.LocaleEN
}

func withCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, token)
}

// CSRFToken returns the token forms must echo back.
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyCSRF).(string)
	return v
}
