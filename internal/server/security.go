package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig holds configuration for security headers and CORS.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists allowed CORS origins. "*" allows all.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised to CORS preflights.
	AllowedMethods []string
}

// DefaultSecurityConfig allows cross-origin GET and POST from any origin.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}
}

// SecurityMiddleware sets hardening headers on every response and answers
// CORS preflight requests directly.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			origin := r.Header.Get("Origin")
			if slices.Contains(config.AllowedOrigins, "*") {
				h.Set("Access-Control-Allow-Origin", "*")
			} else if origin != "" && slices.Contains(config.AllowedOrigins, origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Accept-Encoding")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}
