package middleware

import (
	"net/http"
	"os"
	"path/filepath"
)

const cardBackSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 280"><rect width="200" height="280" rx="14" fill="#1d5c3a"/><rect x="12" y="12" width="176" height="256" rx="10" fill="none" stroke="#f4e9c8" stroke-width="4"/><circle cx="100" cy="140" r="38" fill="#f4e9c8"/><path d="M100 112v44" stroke="#1d5c3a" stroke-width="4"/><path d="M100 112l20 8-20 8z" fill="#c0392b"/><text x="100" y="236" text-anchor="middle" font-family="Arial" font-size="18" fill="#f4e9c8">3 PUTT</text></svg>`

// StaticFileServer serves card faces from dir and falls back to a card back for anything missing
func StaticFileServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "public, max-age=2592000")
			http.ServeFile(w, r, path)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write([]byte(cardBackSVG))
	})
}
