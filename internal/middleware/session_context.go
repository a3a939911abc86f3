package middleware

import (
	"context"
	"net/http"

	"vet-patient-records/internal/ports/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionContext:
// - Lee la sesión activa del store y, si existe, la deja en el contexto.
// - Si no hay sesión, el request sigue igual; los handlers deciden si exigen login.
// Hay una sola sesión por store (modelo de un único perfil), no una por cliente.
func SessionContext(src auth.SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if src == nil {
				next.ServeHTTP(w, r)
				return
			}

			s, ok := src.CurrentSession(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}
