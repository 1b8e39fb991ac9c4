package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amolina-dev/postapi/internal/store"
	"github.com/amolina-dev/postapi/internal/token"
)

type ctxKey string

const (
	ctxUserID  ctxKey = "user_id"
	ctxTokenID ctxKey = "token_id"
)

// UserID returns the authenticated user's id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserID).(int64)
	return id, ok
}

// TokenID returns the jti of the bearer token that authenticated the request.
func TokenID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxTokenID).(string)
	return id, ok
}

// Auth rejects requests without a valid bearer token. A token must carry a
// good signature, be unexpired, and still have an active (non-revoked) row in
// the token store; logout revokes the row, so old tokens fail here even
// though the JWT itself still verifies.
func Auth(issuer *token.Issuer, tokens store.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w)
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				unauthorized(w)
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				unauthorized(w)
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			rec, err := tokens.ActiveToken(r.Context(), claims.ID)
			if err != nil || rec.UserID != claims.UserID() {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, rec.UserID)
			ctx = context.WithValue(ctx, ctxTokenID, rec.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
}
