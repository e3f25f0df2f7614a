package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/events"
)

// CorrelationID reuses the caller's X-Correlation-Id or mints one, echoes it
// on the response and makes it available to published events.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(HeaderCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, cid)

		ctx := context.WithValue(r.Context(), ctxCorrelationID, cid)
		ctx = events.WithCorrelationID(ctx, cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
