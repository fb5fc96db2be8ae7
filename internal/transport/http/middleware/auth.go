package httpmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// TokenParser validates an access token and returns the user it belongs to.
type TokenParser interface {
	UserIDFromAccessToken(token string) (domain.UserID, error)
}

// AuthMiddleware requires a valid Bearer access token and puts the user id
// on the request context.
func AuthMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || len(auth) <= 7 {
				http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}

			uid, err := parser.UserIDFromAccessToken(strings.TrimSpace(auth[7:]))
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, int64(uid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserIDFromCtx(ctx context.Context) int64 {
	if v := ctx.Value(ctxKeyUserID); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
