package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, m *Manager) {
	r.Route("/session", func(sr chi.Router) {
		sr.Post("/", loginHandler(m))
		sr.Get("/", currentSessionHandler(m))
		sr.Delete("/", logoutHandler(m))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida email y contraseña contra los usuarios guardados y persiste la sesión activa.
// @Tags session
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid credentials"
// @Router /session [post]
func loginHandler(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := m.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{Email: s.Email, Name: s.Name})
	}
}

// currentSessionHandler godoc
// @Summary Sesión actual
// @Tags session
// @Produce json
// @Success 200 {object} sessionResponse
// @Failure 401 {string} string "unauthorized"
// @Router /session [get]
func currentSessionHandler(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := m.CurrentSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Email: s.Email, Name: s.Name})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags session
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /session [delete]
func logoutHandler(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Logout(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
