// Package api is a typed client for the supply chain optimization
// backend. It covers the prediction, optimization, forecasting, batch,
// and model management endpoints, validates payloads before sending,
// and normalizes the backend's loosely versioned response shapes into
// stable structs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"chainboard/internal/jsonutil"
)

// DefaultBaseURL is the backend's standard local address.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds each request when the caller does not supply
// its own http.Client.
const DefaultTimeout = 15 * time.Second

// modelsCacheTTL is how long a models/info response stays fresh.
const modelsCacheTTL = 45 * time.Second

// RequestRecord describes one completed request, successful or not.
// Status is zero when the request never produced a response.
type RequestRecord struct {
	Method   string
	Path     string
	Status   int
	Start    time.Time
	Duration time.Duration
	Err      error
}

// RequestObserver receives a record of every request the client sends.
// Implementations must not block.
type RequestObserver interface {
	ObserveRequest(rec RequestRecord)
}

// Client talks to one backend instance. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   RequestObserver

	modelsMu  sync.RWMutex
	models    ModelsInfo
	modelsAt  time.Time
	modelsTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithObserver registers an observer for request records.
func WithObserver(obs RequestObserver) Option {
	return func(c *Client) { c.observer = obs }
}

// NewClient returns a client for the backend at baseURL. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		modelsTTL:  modelsCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the backend address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the backend's root status summary.
func (c *Client) Status(ctx context.Context) (Status, error) {
	m, err := c.getJSON(ctx, "/", nil)
	if err != nil {
		return Status{}, err
	}
	return decodeStatus(m), nil
}

// Health fetches the backend's health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	m, err := c.getJSON(ctx, "/health", nil)
	if err != nil {
		return Health{}, err
	}
	return decodeHealth(m), nil
}

// PredictSupplier evaluates one supplier's reliability.
func (c *Client) PredictSupplier(ctx context.Context, in SupplierInput) (SupplierPrediction, error) {
	if err := in.Validate(); err != nil {
		return SupplierPrediction{}, err
	}
	m, err := c.postJSON(ctx, "/api/v1/predict/supplier", in)
	if err != nil {
		return SupplierPrediction{}, err
	}
	return decodeSupplierPrediction(m), nil
}

// PredictShipment evaluates one shipment's delay risk.
func (c *Client) PredictShipment(ctx context.Context, in ShipmentInput) (ShipmentPrediction, error) {
	if err := in.Validate(); err != nil {
		return ShipmentPrediction{}, err
	}
	m, err := c.postJSON(ctx, "/api/v1/predict/shipment", in)
	if err != nil {
		return ShipmentPrediction{}, err
	}
	return decodeShipmentPrediction(m), nil
}

// OptimizeInventory computes an inventory policy for the given demand
// profile.
func (c *Client) OptimizeInventory(ctx context.Context, in InventoryInput) (InventoryPlan, error) {
	if err := in.Validate(); err != nil {
		return InventoryPlan{}, err
	}
	m, err := c.postJSON(ctx, "/api/v1/optimize/inventory", in)
	if err != nil {
		return InventoryPlan{}, err
	}
	return decodeInventoryPlan(m), nil
}

// ForecastDemand fetches a demand forecast with confidence bounds.
func (c *Client) ForecastDemand(ctx context.Context, req ForecastRequest) (Forecast, error) {
	if err := req.Validate(); err != nil {
		return Forecast{}, err
	}
	query := url.Values{
		"steps":            {strconv.Itoa(req.Steps)},
		"confidence_level": {strconv.FormatFloat(req.ConfidenceLevel, 'g', -1, 64)},
	}
	m, err := c.getJSON(ctx, "/api/v1/predict/inventory", query)
	if err != nil {
		return Forecast{}, err
	}
	return decodeForecast(m), nil
}

// OptimizeRoutes plans vehicle routes from the depot to all customers.
func (c *Client) OptimizeRoutes(ctx context.Context, req RoutingRequest) (RoutingPlan, error) {
	if err := req.Validate(); err != nil {
		return RoutingPlan{}, err
	}
	m, err := c.postJSON(ctx, "/api/v1/optimize/routing", req)
	if err != nil {
		return RoutingPlan{}, err
	}
	plan := decodeRoutingPlan(m)
	if plan.Algorithm == "" {
		plan.Algorithm = req.Algorithm
	}
	return plan, nil
}

// EvaluateSuppliers scores a batch of suppliers in one request.
func (c *Client) EvaluateSuppliers(ctx context.Context, suppliers []SupplierInput) (BatchResult, error) {
	if len(suppliers) == 0 {
		return BatchResult{}, fmt.Errorf("at least one supplier is required")
	}
	for i, s := range suppliers {
		if err := s.Validate(); err != nil {
			return BatchResult{}, fmt.Errorf("supplier %d: %w", i+1, err)
		}
	}
	m, err := c.postJSON(ctx, "/api/v1/batch/suppliers", suppliers)
	if err != nil {
		return BatchResult{}, err
	}
	return decodeBatchResult(m), nil
}

// ModelsInfo fetches the backend's model registry. Responses are cached
// briefly so dashboard refreshes do not hammer the endpoint.
func (c *Client) ModelsInfo(ctx context.Context) (ModelsInfo, error) {
	c.modelsMu.RLock()
	if !c.modelsAt.IsZero() && time.Since(c.modelsAt) < c.modelsTTL {
		cached := c.models
		c.modelsMu.RUnlock()
		return cached, nil
	}
	c.modelsMu.RUnlock()

	m, err := c.getJSON(ctx, "/api/v1/models/info", nil)
	if err != nil {
		return ModelsInfo{}, err
	}
	info := decodeModelsInfo(m)

	c.modelsMu.Lock()
	c.models = info
	c.modelsAt = time.Now()
	c.modelsMu.Unlock()
	return info, nil
}

// ReloadModels asks the backend to reload its models and drops the
// local registry cache.
func (c *Client) ReloadModels(ctx context.Context) (ReloadResult, error) {
	m, err := c.postJSON(ctx, "/api/v1/models/reload", nil)
	if err != nil {
		return ReloadResult{}, err
	}
	c.modelsMu.Lock()
	c.modelsAt = time.Time{}
	c.modelsMu.Unlock()
	return decodeReloadResult(m), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, path, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, query url.Values) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(RequestRecord{
			Method: method, Path: path, Start: start,
			Duration: time.Since(start), Err: err,
		})
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(RequestRecord{
			Method: method, Path: path, Status: resp.StatusCode,
			Start: start, Duration: time.Since(start), Err: err,
		})
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := ParseError(resp.StatusCode, data)
		c.observe(RequestRecord{
			Method: method, Path: path, Status: resp.StatusCode,
			Start: start, Duration: time.Since(start), Err: apiErr,
		})
		return nil, apiErr
	}

	c.observe(RequestRecord{
		Method: method, Path: path, Status: resp.StatusCode,
		Start: start, Duration: time.Since(start),
	})
	return jsonutil.DecodeObject(data, fmt.Sprintf("decode %s response", path))
}

func (c *Client) observe(rec RequestRecord) {
	if c.observer != nil {
		c.observer.ObserveRequest(rec)
	}
}
