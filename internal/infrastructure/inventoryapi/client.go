// Package inventoryapi adaptador HTTP/JSON hacia la API de inventario que alimenta el dashboard.
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa InventoryAPI.
var _ ports.InventoryAPI = (*Client)(nil)

const (
	pathGroupedProducts = "/dashboard/grouped-products"
	pathInventoryLog    = "/dashboard/inventory-log"
	pathManualCheck     = "/dashboard/manual-check"
	pathSKUBreakdown    = "/dashboard/sku-breakdown/"
	pathUpdatePrice     = "/dashboard/update-price"
	pathPODetails       = "/dashboard/insights/po-details"
	pathUnitDetails     = "/dashboard/insights/unit-details"
	pathMonthlyReport   = "/dashboard/export-monthly-report"

	maxBodyBytes   = 8 << 20
	maxErrorBytes  = 4 << 10
	defaultTimeout = 15 * time.Second
)

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client cliente de la API de inventario sobre net/http.
// Un 404 se devuelve como domain.ErrNotFound; cualquier otro fallo como *domain.TransportError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. Timeout cero usa 15 s.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.Component("inventoryapi"),
	}
}

// FetchProductRows GET /dashboard/grouped-products.
func (c *Client) FetchProductRows(ctx context.Context) ([]interface{}, error) {
	return c.getList(ctx, pathGroupedProducts, nil)
}

// FetchShipmentLog GET /dashboard/inventory-log.
func (c *Client) FetchShipmentLog(ctx context.Context) ([]interface{}, error) {
	return c.getList(ctx, pathInventoryLog, nil)
}

// FetchManualChecks GET /dashboard/manual-check.
func (c *Client) FetchManualChecks(ctx context.Context) ([]interface{}, error) {
	return c.getList(ctx, pathManualCheck, nil)
}

// FetchBreakdown GET /dashboard/sku-breakdown/{master_sku_id}.
func (c *Client) FetchBreakdown(ctx context.Context, masterSKUID string) ([]interface{}, error) {
	return c.getList(ctx, pathSKUBreakdown+url.PathEscape(masterSKUID), nil)
}

// updatePriceRequest price viaja como número JSON (decimal.Decimal se serializa entre comillas).
type updatePriceRequest struct {
	ProductID string      `json:"product_id"`
	Price     json.Number `json:"price"`
}

// SubmitPrice POST /dashboard/update-price. El cuerpo de la respuesta se ignora.
func (c *Client) SubmitPrice(ctx context.Context, productID string, price decimal.Decimal) error {
	body, err := json.Marshal(updatePriceRequest{ProductID: productID, Price: json.Number(price.String())})
	if err != nil {
		return fmt.Errorf("serializar precio: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, pathUpdatePrice, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
	return nil
}

// LookupPO GET /dashboard/insights/po-details?po_number=. Lista vacía = sin coincidencia.
func (c *Client) LookupPO(ctx context.Context, poNumber string) ([]interface{}, error) {
	return c.getList(ctx, pathPODetails, url.Values{"po_number": {poNumber}})
}

// LookupUnit GET /dashboard/insights/unit-details?serial_number=. 404 = domain.ErrNotFound.
func (c *Client) LookupUnit(ctx context.Context, serialNumber string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.getJSON(ctx, pathUnitDetails, url.Values{"serial_number": {serialNumber}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportMonthlyReport GET /dashboard/export-monthly-report. El llamador cierra el stream.
// Devuelve también el Content-Type original.
func (c *Client) ExportMonthlyReport(ctx context.Context) (io.ReadCloser, string, error) {
	resp, err := c.do(ctx, http.MethodGet, pathMonthlyReport, nil, nil)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) getList(ctx context.Context, path string, query url.Values) ([]interface{}, error) {
	var out []interface{}
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []interface{}{}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// UseNumber conserva los precios tal como llegan; el normalizador los convierte a decimal.
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return domain.NewTransportError(path, resp.StatusCode, fmt.Errorf("deserializar respuesta: %w", err))
	}
	return nil
}

// do ejecuta la petición y traduce los fallos. Con error nil el cuerpo queda abierto.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, domain.NewTransportError(path, 0, fmt.Errorf("crear request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("llamada HTTP fallida")
		return nil, domain.NewTransportError(path, 0, err)
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("respuesta de inventario")

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		resp.Body.Close()
		var detail error
		if msg := strings.TrimSpace(string(raw)); msg != "" {
			detail = errors.New(msg)
		}
		c.log.Error().Str("path", path).Int("status", resp.StatusCode).Msg("respuesta no exitosa")
		return nil, domain.NewTransportError(path, resp.StatusCode, detail)
	}
	return resp, nil
}
