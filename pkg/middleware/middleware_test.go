package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func echoClient(t *testing.T, seen *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetClientIDFromContext(r.Context())
		require.True(t, ok)
		*seen = id
	})
}

func TestClientID(t *testing.T) {
	t.Run("keeps a valid header", func(t *testing.T) {
		var seen uuid.UUID
		id := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/api/booking", nil)
		req.Header.Set(utils.ClientIDHeader, id.String())
		rec := httptest.NewRecorder()

		ClientID(zap.NewNop())(echoClient(t, &seen)).ServeHTTP(rec, req)

		assert.Equal(t, id, seen)
		assert.Equal(t, id.String(), rec.Header().Get(utils.ClientIDHeader))
	})

	t.Run("issues an id when missing or malformed", func(t *testing.T) {
		for _, header := range []string{"", "not-a-uuid", uuid.Nil.String()} {
			var seen uuid.UUID

			req := httptest.NewRequest(http.MethodGet, "/api/booking", nil)
			if header != "" {
				req.Header.Set(utils.ClientIDHeader, header)
			}
			rec := httptest.NewRecorder()

			ClientID(zap.NewNop())(echoClient(t, &seen)).ServeHTTP(rec, req)

			assert.NotEqual(t, uuid.Nil, seen)
			assert.Equal(t, seen.String(), rec.Header().Get(utils.ClientIDHeader))
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/api/booking", nil)
	rec := httptest.NewRecorder()
	CORS()(next).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), utils.ClientIDHeader)
}

func TestRecover(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":false`)
}
