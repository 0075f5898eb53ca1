// Package backend implementa el cliente HTTP autenticado contra el API REST
// de MyTeam. Toda llamada de red de la aplicación pasa por aquí: negociación
// JSON, token Bearer cuando existe y traducción del 401 a una señal de sesión
// expirada que la capa web convierte en purga de sesión + redirección a login.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fuenr/myteam-web/pkg/logger"
)

// ErrSessionExpired señal que emite el cliente ante cualquier HTTP 401.
// Quien la recibe no debe intentar recuperarse: la operación en curso termina
// y la capa superior limpia la sesión y navega a login.
var ErrSessionExpired = errors.New("backend: sesión expirada")

// APIError error de negocio o de validación devuelto por el backend
// (cualquier estado no-2xx distinto de 401). Se interpreta por vista.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// Client cliente del backend de MyTeam.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New construye el cliente con la URL base del backend y un timeout por petición.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do emite una petición JSON. Siempre envía Content-Type: application/json;
// añade Authorization: Bearer <token> solo si hay token. Si out no es nil,
// decodifica en él el cuerpo de una respuesta 2xx.
func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar cuerpo: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("fallo de transporte hacia el backend")
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn().Str("method", method).Str("path", path).Msg("backend respondió 401, sesión expirada")
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: decodificar respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

// decodeError interpreta un cuerpo de error {"error": "..."}; si el cuerpo no
// es JSON se usa el status text genérico.
func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: body.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}
