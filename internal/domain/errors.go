package domain

import "errors"

var (
	// ErrInvalidInput datos de formulario incompletos o mal formados.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedPayload respuesta del backend que no cumple la forma esperada.
	// Se valida en la frontera (cliente HTTP) para no arrastrar datos sin tipo por las vistas.
	ErrMalformedPayload = errors.New("malformed payload")
)
