package middleware

import (
	"net/http"
	"strings"
)

type notFoundRewriteResponseWriter struct {
	http.ResponseWriter
	headerWritten bool
	status        int
	header        http.Header
}

func (w *notFoundRewriteResponseWriter) Header() http.Header {
	if w.header == nil {
		w.header = w.ResponseWriter.Header().Clone()
	}
	return w.header
}

func (w *notFoundRewriteResponseWriter) WriteHeader(status int) {
	w.status = status
	if status != http.StatusNotFound {
		w.flushHeader()
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *notFoundRewriteResponseWriter) Write(p []byte) (int, error) {
	if w.status != http.StatusNotFound {
		w.flushHeader()
		return w.ResponseWriter.Write(p)
	}
	return len(p), nil // body of the 404 is dropped
}

func (w *notFoundRewriteResponseWriter) flushHeader() {
	if w.headerWritten {
		return
	}
	for key, values := range w.header {
		w.ResponseWriter.Header()[key] = values
	}
	w.headerWritten = true
}

// Rewrite404 serves rewritePath instead of a 404 for GET requests outside of
// the excluded prefixes, so the dashboard pages survive a reload.
func Rewrite404(h http.Handler, rewritePath string, excludedPrefixes ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || hasAnyPrefix(r.URL.Path, excludedPrefixes) {
			h.ServeHTTP(w, r)
			return
		}
		newW := &notFoundRewriteResponseWriter{ResponseWriter: w}
		h.ServeHTTP(newW, r)
		if newW.status == http.StatusNotFound {
			r.URL.Path = rewritePath
			h.ServeHTTP(w, r)
		}
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
