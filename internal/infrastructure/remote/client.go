package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos del editor.
var (
	_ editor.RemoteService = (*Client)(nil)
	_ editor.Uploader      = (*Client)(nil)
)

const maxResponseBytes = 4 << 20

// Client adaptador HTTP contra la API REST de inventario.
// Usa net/http de la librería estándar; cada petición lleva un X-Request-ID nuevo.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. baseURL sin barra final, p. ej. "http://localhost:4000".
// token vacío = sin cabecera Authorization.
func NewClient(baseURL, token string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("remote"),
	}
}

// ── Consultas y mutaciones ────────────────────────────────────────────────────

// GetInventories GET /api/inventories.
func (c *Client) GetInventories(ctx context.Context) ([]editor.Record, error) {
	var items []dto.InventoryResponse
	if err := c.doJSON(ctx, "get", http.MethodGet, "/api/inventories", nil, &items); err != nil {
		return nil, err
	}
	out := make([]editor.Record, 0, len(items))
	for _, it := range items {
		out = append(out, toRecord(it))
	}
	return out, nil
}

// CreateInventory POST /api/inventories.
func (c *Client) CreateInventory(ctx context.Context, in editor.NewRecord) (editor.Record, error) {
	req := dto.CreateInventoryRequest{
		Quantity:    in.Quantity,
		SKU:         in.SKU,
		Description: in.Description,
		Store:       in.Store,
	}
	var created dto.InventoryResponse
	if err := c.doJSON(ctx, "create", http.MethodPost, "/api/inventories", req, &created); err != nil {
		return editor.Record{}, err
	}
	return toRecord(created), nil
}

// UpdateInventory PUT /api/inventories/:id. Solo se envían los campos no nil del patch.
func (c *Client) UpdateInventory(ctx context.Context, id int64, patch editor.RecordPatch) (editor.Record, error) {
	req := dto.UpdateInventoryRequest{
		Quantity:    patch.Quantity,
		SKU:         patch.SKU,
		Description: patch.Description,
		Store:       patch.Store,
	}
	var updated dto.InventoryResponse
	if err := c.doJSON(ctx, "update", http.MethodPut, inventoryPath(id), req, &updated); err != nil {
		return editor.Record{}, err
	}
	return toRecord(updated), nil
}

// DeleteInventory DELETE /api/inventories/:id. Devuelve el ID que confirma el servicio.
func (c *Client) DeleteInventory(ctx context.Context, id int64) (int64, error) {
	var out dto.DeleteInventoryResponse
	if err := c.doJSON(ctx, "delete", http.MethodDelete, inventoryPath(id), nil, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// ── Autenticación ─────────────────────────────────────────────────────────────

// Login POST /api/auth/login; el token obtenido se usa en las peticiones siguientes.
// Se llama antes de compartir el cliente.
func (c *Client) Login(ctx context.Context, operator, password string) error {
	var out dto.LoginResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", dto.LoginRequest{Operator: operator, Password: password}, &out); err != nil {
		return err
	}
	c.token = out.Token
	c.log.Info().Str("operator", out.Operator).Int("expires_in", out.ExpiresIn).Msg("sesión iniciada")
	return nil
}

// ── Subida de archivos ────────────────────────────────────────────────────────

// ImportCSV POST /upload-csv con multipart: campo "file" y, si se indica, "charset".
func (c *Client) ImportCSV(ctx context.Context, payload editor.FilePayload) (editor.ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := payload.Name
	if name == "" {
		name = "inventario.csv"
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return editor.ImportResult{}, &editor.TransportFailure{Op: "upload", Err: err}
	}
	if _, err := fw.Write(payload.Data); err != nil {
		return editor.ImportResult{}, &editor.TransportFailure{Op: "upload", Err: err}
	}
	if payload.Charset != "" {
		if err := mw.WriteField("charset", payload.Charset); err != nil {
			return editor.ImportResult{}, &editor.TransportFailure{Op: "upload", Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return editor.ImportResult{}, &editor.TransportFailure{Op: "upload", Err: err}
	}

	var out dto.ImportCSVResponse
	if err := c.do(ctx, "upload", http.MethodPost, "/upload-csv", &buf, mw.FormDataContentType(), &out); err != nil {
		return editor.ImportResult{}, err
	}
	c.log.Debug().Str("file", name).Int("count", out.Count).Int("skipped", out.Skipped).Msg("archivo importado")
	return editor.ImportResult{Count: out.Count}, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &editor.TransportFailure{Op: op, Err: fmt.Errorf("serializar request: %w", err)}
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType, out)
}

// do ejecuta la petición. Un status no 2xx es RemoteRejection con el mensaje del servicio;
// red, timeout o respuesta ilegible son TransportFailure.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &editor.TransportFailure{Op: op, Err: fmt.Errorf("crear HTTP request: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return &editor.TransportFailure{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &editor.TransportFailure{Op: op, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", reqID).
		Msg("petición al servicio")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &editor.TransportFailure{Op: op, Err: fmt.Errorf("deserializar respuesta: %w", err)}
	}
	return nil
}

func rejection(status int, raw []byte) error {
	var er dto.ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Message != "" {
		return &editor.RemoteRejection{Status: status, Code: er.Code, Message: er.Message}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &editor.RemoteRejection{Status: status, Message: msg}
}

func inventoryPath(id int64) string {
	return "/api/inventories/" + strconv.FormatInt(id, 10)
}

func toRecord(in dto.InventoryResponse) editor.Record {
	return editor.Record{
		ID:          in.ID,
		SKU:         in.SKU,
		Store:       in.Store,
		Quantity:    in.Quantity,
		Description: in.Description,
	}
}
