package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	done  chan struct{}
}

func newRecorder() *recorder { return &recorder{done: make(chan struct{}, 8)} }

func (r *recorder) Count(_ context.Context, path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func TestMultiFansOut(t *testing.T) {
	a, b := newRecorder(), newRecorder()
	Multi{a, nil, b, Nop{}}.Count(context.Background(), "/fr/hiver/")
	require.Equal(t, []string{"/fr/hiver/"}, a.paths)
	require.Equal(t, []string{"/fr/hiver/"}, b.paths)
}

func TestGoatCounterPostsHit(t *testing.T) {
	var got goatCount
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	g := NewGoatCounter("iso", "secret", srv.Client(), nil)
	require.Equal(t, "https://iso.goatcounter.com/api/v0/count", g.endpoint)
	g.endpoint = srv.URL
	require.NoError(t, g.send(context.Background(), "/en/summer/"))
	require.Equal(t, "Bearer secret", auth)
	require.True(t, got.NoSessions)
	require.Equal(t, "/en/summer/", got.Hits[0].Path)
}

func TestGoatCounterReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGoatCounter("iso", "bad", srv.Client(), nil)
	g.endpoint = srv.URL
	require.Error(t, g.send(context.Background(), "/"))
	// Count swallows the error
	g.Count(context.Background(), "/")
}

func TestTrackCountsHTMLPagesOnly(t *testing.T) {
	rec := newRecorder()
	h := Track(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>ok</p>"))
		case "/missing":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		}
	}))

	for _, p := range []string{"/data", "/missing", "/page"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("page view was not counted")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, []string{"/page"}, rec.paths)
}

func TestTrackKeepsFlusher(t *testing.T) {
	rec := newRecorder()
	h := Track(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must still flush")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>streamed</p>"))
		f.Flush()
	}))

	out := httptest.NewRecorder()
	h.ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/stream", nil))
	require.True(t, out.Flushed)
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("flushed page view was not counted")
	}
}

func TestSettings(t *testing.T) {
	require.False(t, Settings{}.Enabled())
	s := Settings{Code: "iso"}
	require.True(t, s.Enabled())
	require.Equal(t, "https://iso.goatcounter.com/count", s.ScriptEndpoint())
}
