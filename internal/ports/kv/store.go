package kv

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded lo devuelve un backend cuando la escritura superaría su capacidad.
	// La escritura no se aplica (nunca hay valores a medio escribir).
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store es el almacenamiento clave-valor opaco donde vive todo el estado
// (equivalente al localStorage de un perfil de navegador).
type Store interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set reemplaza el valor completo de la clave.
	Set(ctx context.Context, key, value string) error
	// Remove borra la clave; borrar una clave inexistente no es error.
	Remove(ctx context.Context, key string) error
}
