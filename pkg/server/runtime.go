package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	clientdist "github.com/vango-dev/mathfield/client/dist"
)

var runtimeETag = func() string {
	sum := sha256.Sum256(clientdist.MathfieldJS)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:16]))
}()

// serveRuntime serves the embedded browser runtime. The URL is not
// versioned, so clients revalidate through the ETag.
func serveRuntime(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "file") != RuntimeName {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("ETag", runtimeETag)
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), runtimeETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write(clientdist.MathfieldJS)
}

func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
