package middleware

import (
	"net/http"
	"strings"
)

// CORS разрешает запросы с credentials с перечисленных источников фронтенда
type CORS struct {
	allowedOrigins map[string]bool
}

// NewCORS создает CORS middleware
func NewCORS(allowedOrigins []string) *CORS {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[strings.TrimRight(strings.TrimSpace(origin), "/")] = true
	}
	return &CORS{allowedOrigins: origins}
}

// Handler оборачивает весь роутер: preflight отвечает 204 до маршрутизации
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && c.allowedOrigins[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			h.Set("Access-Control-Max-Age", "3600")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
