package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"isoatthetop.com/web/internal/routing"
)

// Locale reads the {locale} URL parameter, stores it on the request context
// and surfaces it as Content-Language. Unknown locales fall through to
// notFound.
func Locale(notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l, ok := routing.ParseLocale(chi.URLParam(r, "locale"))
			if !ok {
				notFound.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Language", string(l))
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), l)))
		})
	}
}
