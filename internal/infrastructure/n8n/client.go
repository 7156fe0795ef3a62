// Package n8n implementa el cliente hacia los webhooks del servicio de
// automatización: login por email, CRUD de usuarios/proyectos/propiedades y
// carga masiva de archivos. Toda la persistencia y validación relacional vive
// del otro lado; aquí solo se traducen errores y formas de respuesta.
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/pkg/config"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// Asegura que Client implementa el puerto.
var _ ports.WebhookClient = (*Client)(nil)

// Client habla con los webhooks n8n. Reintenta solo ante fallos de transporte;
// una respuesta del servidor, buena o mala, nunca se reintenta (las mutaciones
// no son idempotentes del lado remoto).
type Client struct {
	http     *retryablehttp.Client
	baseURL  string
	loginURL string
	cargaURL string
	log      *logger.Logger
}

// NewClient construye el cliente con la configuración de webhooks.
func NewClient(cfg config.WebhookConfig, log *logger.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}

	return &Client{
		http:     rc,
		baseURL:  cfg.BaseURL,
		loginURL: cfg.LoginURL(),
		cargaURL: cfg.CargaURL,
		log:      log.Componente("n8n"),
	}
}

// Login autentica por email y devuelve el envoltorio crudo del perfil, en
// cualquiera de las formas históricas (el normalizador las resuelve).
func (c *Client) Login(ctx context.Context, email string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("serializar login: %w", err)
	}
	return c.post(ctx, c.loginURL, body, false)
}

// Crud ejecuta una operación genérica contra el webhook. Un estado no-2xx o un
// campo error en el cuerpo producen *domain.RechazoServidor con el mensaje del
// servidor cuando lo hay.
func (c *Client) Crud(ctx context.Context, op ports.OperacionCrud) (json.RawMessage, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("serializar operación: %w", err)
	}
	c.log.Debug().
		Str("entity", op.Entity).
		Str("operation", op.Operation).
		Msg("operación CRUD hacia el webhook")
	return c.post(ctx, c.baseURL, body, true)
}

// post envía el cuerpo JSON y normaliza errores de transporte y de servidor.
// Si inspeccionarCuerpo es true, un campo error en una respuesta 2xx también
// cuenta como rechazo.
func (c *Client) post(ctx context.Context, url string, body []byte, inspeccionarCuerpo bool) (json.RawMessage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSinConexion, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrSinConexion, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RechazoServidor{
			Codigo:  resp.StatusCode,
			Mensaje: mensajeDeError(raw),
		}
	}

	if inspeccionarCuerpo {
		if msg := mensajeDeError(raw); msg != "" {
			return nil, &domain.RechazoServidor{Mensaje: msg}
		}
	}

	return raw, nil
}

// mensajeDeError extrae el campo error del cuerpo, si es un objeto y lo trae.
func mensajeDeError(raw []byte) string {
	var cuerpo struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &cuerpo); err != nil {
		return ""
	}
	return cuerpo.Error
}
