package middleware

import (
	"net/http"
	"strings"

	"salon-booking/pkg/utils"
)

// CORS lets the browser front-end call the API from another origin and read
// the client id header.
func CORS() func(http.Handler) http.Handler {
	allowHeaders := strings.Join([]string{"Content-Type", "Accept", utils.ClientIDHeader}, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Expose-Headers", utils.ClientIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
