package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrTransport indica que la llamada a la API de inventario falló (distinto de "sin resultados").
	// Es una condición reintentable para el caller.
	ErrTransport = errors.New("fallo de comunicación con la API de inventario")
)

// TransportError detalla un fallo de transporte: endpoint y status HTTP (0 si no hubo respuesta).
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api inventario %s: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api inventario %s: %v", e.Endpoint, e.Err)
}

// Unwrap permite errors.Is(err, ErrTransport) y también alcanzar la causa original.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NewTransportError construye un TransportError; err nil se sustituye por un mensaje genérico.
func NewTransportError(endpoint string, status int, err error) *TransportError {
	if err == nil {
		err = errors.New("respuesta inesperada")
	}
	return &TransportError{Endpoint: endpoint, StatusCode: status, Err: err}
}
