package auth

// Session es la proyección del usuario logueado que se persiste.
// Nunca lleva la contraseña.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
