package users

// User es una cuenta del consultorio. La contraseña se guarda y compara en texto plano
// (limitación conocida; no hay flujo de registro ni hashing).
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Cuenta sembrada en el primer arranque.
const (
	DefaultEmail    = "admin@vet.local"
	DefaultPassword = "admin123"
	DefaultName     = "Admin Veterinaria"
)
