// Package playground serves a one page form for trying the chat endpoint from a browser
package playground

import (
	_ "embed"
	"net/http"

	phttp "taxkaki/internal/platform/net/http"
)

//go:embed index.html
var page []byte

// Mount serves the page at path when enabled
func Mount(r phttp.Router, path string, enabled bool) {
	if !enabled {
		return
	}
	r.Get(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(page)
	})
}
