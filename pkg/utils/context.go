package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ClientIDKey contextKey = "client_id"

// ClientIDHeader carries the browser's client id on every request.
const ClientIDHeader = "X-Client-ID"

func GetClientIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(ClientIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	clientID, ok := val.(uuid.UUID)
	if !ok || clientID == uuid.Nil {
		return uuid.Nil, false
	}

	return clientID, true
}

func SetClientContext(ctx context.Context, clientID uuid.UUID) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}
