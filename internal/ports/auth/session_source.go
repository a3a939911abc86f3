package auth

import "context"

// SessionSource expone la sesión activa (si existe).
// Lo implementa users.Manager; el middleware depende solo de esta interfaz.
type SessionSource interface {
	CurrentSession(ctx context.Context) (Session, bool)
}
