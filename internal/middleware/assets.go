package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

const defaultAssetMaxAge = "604800"

// AssetsWithCache serves dir under prefix (e.g. "/media") with
// Cache-Control, Vary and weak ETags computed once at startup. maxAge is in
// seconds; empty means one week.
func AssetsWithCache(dir, prefix string, maxAge string) http.Handler {
	root := os.DirFS(dir)
	etags := assetETags(root)
	if maxAge == "" {
		maxAge = defaultAssetMaxAge
	}
	cacheControl := "public, max-age=" + maxAge + ", stale-while-revalidate=86400"
	files := http.StripPrefix(prefix, http.FileServer(http.FS(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			// no directory listings
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Vary", "Accept-Encoding")
		h.Set("Cache-Control", cacheControl)
		if et, ok := etags[name]; ok {
			h.Set("ETag", et)
			if etagMatches(r.Header.Get("If-None-Match"), et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

// assetETags maps "/rel/path" to the weak ETag of every regular file.
func assetETags(root fs.FS) map[string]string {
	etags := map[string]string{}
	_ = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if et, err := fileETag(root, p); err == nil {
			etags[path.Join("/", p)] = et
		}
		return nil
	})
	return etags
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		if c := strings.TrimSpace(candidate); c == etag || c == "*" {
			return true
		}
	}
	return false
}

func fileETag(root fs.FS, name string) (string, error) {
	f, err := root.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
