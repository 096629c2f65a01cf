package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin to read responses and to send Content-Type.
// The allow headers are written on every response, not only on requests
// that carry an Origin header.
func CORS() func(http.Handler) http.Handler {
	preflight := cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false, // must be false when using "*"
		MaxAge:           300,
	})

	return func(next http.Handler) http.Handler {
		h := preflight(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			h.ServeHTTP(w, r)
		})
	}
}
