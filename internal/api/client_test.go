package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictSupplier(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/predict/supplier", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reliability":1,"reliability_label":"Reliable","confidence":0.92,"probability_reliable":0.92,"probability_unreliable":0.08,"model":"RandomForestClassifier"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.PredictSupplier(context.Background(), SupplierInput{LeadTime: 7, Cost: 50, PastOrders: 100})
	require.NoError(t, err)

	assert.Equal(t, float64(7), gotBody["lead_time"])
	assert.Equal(t, float64(50), gotBody["cost"])
	assert.Equal(t, float64(100), gotBody["past_orders"])

	assert.True(t, got.Reliable)
	assert.Equal(t, "Reliable", got.Label)
	assert.InDelta(t, 0.92, got.Confidence, 1e-9)
	assert.Equal(t, "RandomForestClassifier", got.Model)
}

func TestPredictSupplierRejectsBadInputLocally(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PredictSupplier(context.Background(), SupplierInput{LeadTime: 0, Cost: 50, PastOrders: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead_time")
	assert.Zero(t, hits, "invalid input must not reach the backend")
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":{"error":"ModelNotLoadedError","message":"Model 'supplier' is not loaded","error_code":"MODEL_NOT_LOADED","details":{"model_name":"supplier"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PredictSupplier(context.Background(), SupplierInput{LeadTime: 7, Cost: 50, PastOrders: 100})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "MODEL_NOT_LOADED", apiErr.Code)
	assert.Equal(t, "Model 'supplier' is not loaded", apiErr.Message)
	assert.Equal(t, "supplier", apiErr.Details["model_name"])
}

func TestForecastDemandQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/predict/inventory", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("steps"))
		assert.Equal(t, "0.9", r.URL.Query().Get("confidence_level"))
		w.Write([]byte(`{"forecast":[100,101],"lower_bound":[90,91],"upper_bound":[110,111],"steps":10,"confidence_level":0.9,"model":"ARIMA","statistics":{"mean":100.5,"std":0.5,"min":100,"max":101}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.ForecastDemand(context.Background(), ForecastRequest{Steps: 10, ConfidenceLevel: 0.9})
	require.NoError(t, err)
	assert.Len(t, got.Values, 2)
	assert.Equal(t, "ARIMA", got.Model)
}

func TestEvaluateSuppliers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/batch/suppliers", r.URL.Path)
		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 2)
		w.Write([]byte(`{"total_suppliers":2,"results":[{"reliability":1,"confidence":0.9},{"error":"boom"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.EvaluateSuppliers(context.Background(), []SupplierInput{
		{LeadTime: 7, Cost: 50, PastOrders: 100},
		{LeadTime: 30, Cost: 75, PastOrders: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Successful)
	assert.Equal(t, 1, got.Failed)
}

func TestEvaluateSuppliersValidatesEachRow(t *testing.T) {
	c := NewClient("http://unreachable.invalid")
	_, err := c.EvaluateSuppliers(context.Background(), []SupplierInput{
		{LeadTime: 7, Cost: 50, PastOrders: 100},
		{LeadTime: 7, Cost: 0, PastOrders: 100},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supplier 2")
}

func TestModelsInfoCaching(t *testing.T) {
	infoHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/models/info", func(w http.ResponseWriter, r *http.Request) {
		infoHits++
		w.Write([]byte(`{"loaded_models":["supplier"],"model_count":1}`))
	})
	mux.HandleFunc("/api/v1/models/reload", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","message":"Models reloaded"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		info, err := c.ModelsInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, info.ModelCount)
	}
	assert.Equal(t, 1, infoHits, "repeat calls should hit the cache")

	// Reload drops the cache.
	_, err := c.ReloadModels(ctx)
	require.NoError(t, err)
	_, err = c.ModelsInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, infoHits)

	// An expired entry refetches too.
	c.modelsMu.Lock()
	c.modelsAt = time.Now().Add(-time.Minute)
	c.modelsMu.Unlock()
	_, err = c.ModelsInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, infoHits)
}

type recordingObserver struct {
	records []RequestRecord
}

func (o *recordingObserver) ObserveRequest(rec RequestRecord) {
	o.records = append(o.records, rec)
}

func TestClientObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte(`{"status":"healthy","models":{"loaded_models":[],"model_count":0},"config":{}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(srv.URL, WithObserver(obs))
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.NoError(t, err)
	_, err = c.Status(ctx)
	require.Error(t, err)

	require.Len(t, obs.records, 2)
	assert.Equal(t, "/health", obs.records[0].Path)
	assert.Equal(t, http.StatusOK, obs.records[0].Status)
	assert.NoError(t, obs.records[0].Err)
	assert.Equal(t, "/", obs.records[1].Path)
	assert.Equal(t, http.StatusInternalServerError, obs.records[1].Status)
	assert.Error(t, obs.records[1].Err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient("http://example.com/")
	assert.Equal(t, "http://example.com", c.BaseURL(), "trailing slash is trimmed")
}

func TestOptimizeRoutesEchoesAlgorithm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Older backends omit the algorithm in the response.
		w.Write([]byte(`{"routes":[],"statistics":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.OptimizeRoutes(context.Background(), RoutingRequest{
		Depot:     Location{Lat: 0, Lon: 0},
		Customers: []Location{{Lat: 1, Lon: 1, Demand: 10}},
		Algorithm: AlgorithmNearestNeighbor,
	})
	require.NoError(t, err)
	assert.Equal(t, AlgorithmNearestNeighbor, got.Algorithm)
}
