package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserID takes the user from X-User-Id, falling back to defaultID. There is no
// authentication; the header only selects a session.
func UserID(defaultID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if uid == "" {
				uid = defaultID
			}
			if uid == "" {
				writeError(w, r, http.StatusBadRequest, "missing required header: "+HeaderUserID)
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
