package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

// ClientIDHeader selects the favorites slot of the caller.
const ClientIDHeader = "X-Shobi-Client"

type contextKey string

const ctxClientID contextKey = "client_id"

func ClientIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxClientID).(string); ok {
		return v
	}
	return ""
}

// WithClientID injects the client identifier into the context.
func WithClientID(ctx context.Context, clientID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClientID, clientID)
}

// ClientContext copies the client header into the request context. Validation
// happens where the id is used.
func ClientContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := strings.TrimSpace(r.Header.Get(ClientIDHeader))
			if clientID == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithClientID(r.Context(), clientID)
			if logg != nil {
				ctx = logg.WithClientID(ctx, clientID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
