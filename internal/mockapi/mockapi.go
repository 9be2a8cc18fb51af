// Package mockapi serves a stand-in supply-chain backend for demos and
// tests. Responses are deterministic functions of the request rather
// than real model output, but they follow the same shapes, validation
// rules, and error envelopes as the production API.
package mockapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"chainboard/internal/api"
)

// Model names the backend reports.
const (
	ModelSupplier  = "supplier"
	ModelShipment  = "shipment"
	ModelInventory = "inventory"
)

// Backend holds mock state and serves the API routes.
type Backend struct {
	mu              sync.Mutex
	models          map[string]bool
	loadedAt        string
	vehicleCapacity float64
	parallelWorkers int
}

// NewBackend creates a mock backend with all models loaded.
func NewBackend() *Backend {
	return &Backend{
		models: map[string]bool{
			ModelSupplier:  true,
			ModelShipment:  true,
			ModelInventory: true,
		},
		loadedAt:        time.Now().UTC().Format(time.RFC3339),
		vehicleCapacity: 1000,
		parallelWorkers: 4,
	}
}

// SetModelLoaded marks a model as loaded or unloaded. Unloaded models
// make the corresponding endpoints fail the way the real backend does.
func (b *Backend) SetModelLoaded(name string, loaded bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.models[name] = loaded
}

func (b *Backend) modelLoaded(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.models[name]
}

// Handler returns the mock API routes.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", b.handleRoot)
	mux.HandleFunc("/health", b.handleHealth)
	mux.HandleFunc("/api/v1/predict/supplier", b.handlePredictSupplier)
	mux.HandleFunc("/api/v1/predict/shipment", b.handlePredictShipment)
	mux.HandleFunc("/api/v1/predict/inventory", b.handleForecast)
	mux.HandleFunc("/api/v1/optimize/inventory", b.handleOptimizeInventory)
	mux.HandleFunc("/api/v1/optimize/routing", b.handleOptimizeRouting)
	mux.HandleFunc("/api/v1/batch/suppliers", b.handleBatchSuppliers)
	mux.HandleFunc("/api/v1/models/info", b.handleModelsInfo)
	mux.HandleFunc("/api/v1/models/reload", b.handleModelsReload)
	return mux
}

func (b *Backend) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "online",
		"message":       "Supply Chain Optimization API v2.0",
		"environment":   "mock",
		"models_loaded": b.loadedModels(),
		"features": map[string]bool{
			"predictions":            true,
			"inventory_optimization": true,
			"vehicle_routing":        true,
			"parallel_processing":    true,
		},
	})
}

func (b *Backend) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	b.mu.Lock()
	workers := b.parallelWorkers
	capacity := b.vehicleCapacity
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"models": b.modelInfo(),
		"config": map[string]any{
			"parallel_workers": workers,
			"vehicle_capacity": capacity,
		},
	})
}

func (b *Backend) handlePredictSupplier(w http.ResponseWriter, r *http.Request) {
	var in api.SupplierInput
	if !readBody(w, r, &in) {
		return
	}
	if errs := validateSupplier(in, nil); len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}
	if !b.modelLoaded(ModelSupplier) {
		writeModelNotLoaded(w, ModelSupplier)
		return
	}
	writeJSON(w, http.StatusOK, supplierPrediction(in))
}

func (b *Backend) handlePredictShipment(w http.ResponseWriter, r *http.Request) {
	var in api.ShipmentInput
	if !readBody(w, r, &in) {
		return
	}
	if errs := validateShipment(in); len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}
	if !b.modelLoaded(ModelShipment) {
		writeModelNotLoaded(w, ModelShipment)
		return
	}
	writeJSON(w, http.StatusOK, shipmentPrediction(in))
}

func (b *Backend) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	req := api.ForecastRequest{Steps: 5, ConfidenceLevel: 0.95}
	query := r.URL.Query()
	if v := query.Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
				Loc: []any{"query", "steps"}, Msg: "Input should be a valid integer", Type: "int_parsing",
			}})
			return
		}
		req.Steps = n
	}
	if v := query.Get("confidence_level"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
				Loc: []any{"query", "confidence_level"}, Msg: "Input should be a valid number", Type: "float_parsing",
			}})
			return
		}
		req.ConfidenceLevel = f
	}
	if errs := validateForecast(req); len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}
	if !b.modelLoaded(ModelInventory) {
		writeModelNotLoaded(w, ModelInventory)
		return
	}
	writeJSON(w, http.StatusOK, forecast(req))
}

func (b *Backend) handleOptimizeInventory(w http.ResponseWriter, r *http.Request) {
	var in api.InventoryInput
	if !readBody(w, r, &in) {
		return
	}
	if errs := validateInventory(in); len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}
	writeJSON(w, http.StatusOK, inventoryPlan(in))
}

func (b *Backend) handleOptimizeRouting(w http.ResponseWriter, r *http.Request) {
	var req api.RoutingRequest
	if !readBody(w, r, &req) {
		return
	}
	if errs := validateRouting(req); len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = api.AlgorithmClarkeWright
	}
	known := false
	for _, a := range api.Algorithms() {
		if a == algorithm {
			known = true
			break
		}
	}
	if !known {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Unknown algorithm: %s", algorithm))
		return
	}

	b.mu.Lock()
	capacity := b.vehicleCapacity
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, routingPlan(req, algorithm, capacity))
}

func (b *Backend) handleBatchSuppliers(w http.ResponseWriter, r *http.Request) {
	var suppliers []api.SupplierInput
	if !readBody(w, r, &suppliers) {
		return
	}

	var errs []fieldError
	for i, in := range suppliers {
		errs = append(errs, validateSupplier(in, []any{i})...)
	}
	if len(errs) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, errs)
		return
	}

	results := make([]any, 0, len(suppliers))
	for i, in := range suppliers {
		if !b.modelLoaded(ModelSupplier) {
			results = append(results, map[string]any{
				"error":  fmt.Sprintf("Model '%s' is not loaded", ModelSupplier),
				"status": "failed",
				"index":  i,
			})
			continue
		}
		results = append(results, supplierPrediction(in))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_suppliers": len(suppliers),
		"results":         results,
	})
}

func (b *Backend) handleModelsInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeJSON(w, http.StatusOK, b.modelInfo())
}

func (b *Backend) handleModelsReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	b.mu.Lock()
	for name := range b.models {
		b.models[name] = true
	}
	b.loadedAt = time.Now().UTC().Format(time.RFC3339)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Models reloaded",
	})
}

func (b *Backend) loadedModels() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	loaded := []string{}
	for _, name := range []string{ModelSupplier, ModelShipment, ModelInventory} {
		if b.models[name] {
			loaded = append(loaded, name)
		}
	}
	return loaded
}

func (b *Backend) modelInfo() map[string]any {
	loaded := b.loadedModels()

	b.mu.Lock()
	loadedAt := b.loadedAt
	b.mu.Unlock()

	types := map[string]string{
		ModelSupplier:  "RandomForestClassifier",
		ModelShipment:  "LogisticRegression",
		ModelInventory: "ARIMA",
	}
	features := map[string][]string{
		ModelSupplier: {"lead_time", "cost", "past_orders"},
		ModelShipment: {"delivery_time", "quantity", "delay_time"},
	}

	metadata := map[string]any{}
	for _, name := range loaded {
		meta := map[string]any{
			"type":      types[name],
			"loaded_at": loadedAt,
		}
		if f, ok := features[name]; ok {
			meta["features"] = f
		}
		metadata[name] = meta
	}

	return map[string]any{
		"loaded_models": loaded,
		"model_count":   len(loaded),
		"metadata":      metadata,
	}
}

// readBody decodes a JSON POST body, replying like the real backend on
// wrong methods and malformed payloads.
func readBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []any{"body"}, Msg: "JSON decode error", Type: "json_invalid",
		}})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail wraps a payload in the {"detail": ...} envelope.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeModelNotLoaded(w http.ResponseWriter, model string) {
	writeDetail(w, http.StatusBadRequest, map[string]any{
		"error":      "ModelNotLoadedError",
		"message":    fmt.Sprintf("Model '%s' is not loaded", model),
		"error_code": "MODEL_NOT_LOADED",
		"details":    map[string]any{"model_name": model},
	})
}
