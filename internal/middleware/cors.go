// Package middleware holds the HTTP middleware shared by every API route.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler allows browser clients served from allowedOrigins (full
// origins without a trailing slash) to call the API with the session
// cookie. Retry-After and Content-Disposition are readable by scripts so a
// rate-limited sign-in can back off and an export keeps its file name.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
