// Package salesapi adaptador HTTP del backend de ventas (métricas del día y
// aplicación de descuentos).
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
)

var _ ports.SalesBackend = (*Client)(nil)

const (
	dashboardPath     = "/api/admindis/dashboard"
	applyDiscountPath = "/api/discount/apply-discount"
	maxBodyBytes      = 4 << 20
)

// StatusError respuesta no 2xx del backend. El texto es el que ve el operador
// tras "Error applying discount: ".
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Unwrap permite errors.Is(err, domain.ErrUpstream).
func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// Client habla JSON con el backend de ventas.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout es el tope de red; los casos de uso
// imponen además su propio context.WithTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type applyDiscountRequest struct {
	Type string `json:"type"`
}

// FetchDashboard GET /api/admindis/dashboard. Un cuerpo vacío o null se trata
// como un dashboard sin datos.
func (c *Client) FetchDashboard(ctx context.Context) (*entity.DashboardData, error) {
	raw, err := c.do(ctx, http.MethodGet, dashboardPath, nil)
	if err != nil {
		return nil, err
	}
	data := &entity.DashboardData{}
	if isEmpty(raw) {
		return data, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("salesapi: deserializar dashboard: %w: %w", domain.ErrUpstream, err)
	}
	return data, nil
}

// ApplyDiscount POST /api/discount/apply-discount con {"type": discountType}.
// Null o cuerpo vacío equivalen a lista vacía.
func (c *Client) ApplyDiscount(ctx context.Context, discountType string) ([]entity.AffectedItem, error) {
	body, err := json.Marshal(applyDiscountRequest{Type: discountType})
	if err != nil {
		return nil, fmt.Errorf("salesapi: serializar request: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, applyDiscountPath, body)
	if err != nil {
		return nil, err
	}
	items := []entity.AffectedItem{}
	if isEmpty(raw) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("salesapi: deserializar ítems: %w: %w", domain.ErrUpstream, err)
	}
	if items == nil {
		items = []entity.AffectedItem{}
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("salesapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("salesapi: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("salesapi: %s %s: %w: %w", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("salesapi: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

func isEmpty(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
