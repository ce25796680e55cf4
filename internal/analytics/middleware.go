package analytics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const countTimeout = 5 * time.Second

// Track counts successful HTML page views after they were served. Counting
// runs in the background with a context detached from the request.
func Track(counter Counter) func(http.Handler) http.Handler {
	if counter == nil {
		counter = Nop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if r.Method != http.MethodGet || status != http.StatusOK {
				return
			}
			if !strings.HasPrefix(ww.Header().Get("Content-Type"), "text/html") {
				return
			}
			path := r.URL.Path
			ctx := context.WithoutCancel(r.Context())
			go func() {
				ctx, cancel := context.WithTimeout(ctx, countTimeout)
				defer cancel()
				counter.Count(ctx, path)
			}()
		})
	}
}
