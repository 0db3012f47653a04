package middleware

import (
	"net/http"

	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientID resolves the browser client a request belongs to. A missing or
// malformed X-Client-ID header gets a fresh id, echoed back so the client
// can keep using it.
func ClientID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, err := uuid.Parse(r.Header.Get(utils.ClientIDHeader))
			if err != nil || clientID == uuid.Nil {
				clientID = uuid.New()
				logger.Debug("Issued client id",
					zap.String("client_id", clientID.String()),
					zap.String("path", r.URL.Path),
				)
			}

			w.Header().Set(utils.ClientIDHeader, clientID.String())
			next.ServeHTTP(w, r.WithContext(utils.SetClientContext(r.Context(), clientID)))
		})
	}
}
