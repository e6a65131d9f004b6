package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the open cross-origin policy every routed response carries.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"OPTIONS", "POST", "GET", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}).Handler
}
