package api

import (
	"testing"

	"chainboard/internal/jsonutil"
)

func mustDecode(t *testing.T, raw string) map[string]any {
	t.Helper()
	m, err := jsonutil.DecodeObject([]byte(raw), "test payload")
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return m
}

func TestDecodeSupplierPrediction(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantReliable bool
		wantLabel    string
	}{
		{
			name:         "numeric flag with label",
			raw:          `{"reliability":1,"reliability_label":"Reliable","confidence":0.92,"probability_reliable":0.92,"probability_unreliable":0.08,"model":"RandomForestClassifier"}`,
			wantReliable: true,
			wantLabel:    "Reliable",
		},
		{
			name:         "label derived from flag",
			raw:          `{"reliability":0,"confidence":0.81}`,
			wantReliable: false,
			wantLabel:    "Unreliable",
		},
		{
			name:         "boolean alias",
			raw:          `{"reliable":true,"confidence":0.7}`,
			wantReliable: true,
			wantLabel:    "Reliable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeSupplierPrediction(mustDecode(t, tt.raw))
			if got.Reliable != tt.wantReliable {
				t.Errorf("Reliable = %v, want %v", got.Reliable, tt.wantReliable)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestDecodeShipmentPrediction(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantDelayed bool
		wantStatus  string
		wantRisk    string
		wantProb    float64
		wantOnTime  float64
	}{
		{
			name:        "full response",
			raw:         `{"delayed":true,"status":"Delayed","risk_level":"High","probability_delayed":0.85,"probability_ontime":0.15,"confidence":0.85}`,
			wantDelayed: true,
			wantStatus:  "Delayed",
			wantRisk:    "High",
			wantProb:    0.85,
			wantOnTime:  0.15,
		},
		{
			name:        "legacy field names",
			raw:         `{"will_delay":true,"delay_probability":0.45}`,
			wantDelayed: true,
			wantStatus:  "Delayed",
			wantRisk:    "Medium",
			wantProb:    0.45,
			wantOnTime:  0.55,
		},
		{
			name:        "derived status and risk",
			raw:         `{"delayed":false,"probability_delayed":0.1}`,
			wantDelayed: false,
			wantStatus:  "On Time",
			wantRisk:    "Low",
			wantProb:    0.1,
			wantOnTime:  0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeShipmentPrediction(mustDecode(t, tt.raw))
			if got.Delayed != tt.wantDelayed {
				t.Errorf("Delayed = %v, want %v", got.Delayed, tt.wantDelayed)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, tt.wantRisk)
			}
			if got.ProbabilityDelayed != tt.wantProb {
				t.Errorf("ProbabilityDelayed = %v, want %v", got.ProbabilityDelayed, tt.wantProb)
			}
			if got.ProbabilityOnTime != tt.wantOnTime {
				t.Errorf("ProbabilityOnTime = %v, want %v", got.ProbabilityOnTime, tt.wantOnTime)
			}
		})
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		probability float64
		want        string
	}{
		{0, RiskLow},
		{0.29, RiskLow},
		{0.3, RiskMedium},
		{0.69, RiskMedium},
		{0.7, RiskHigh},
		{1, RiskHigh},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.probability); got != tt.want {
			t.Errorf("RiskLevelFor(%v) = %q, want %q", tt.probability, got, tt.want)
		}
	}
}

func TestDecodeBatchResult(t *testing.T) {
	raw := `{
		"total_suppliers": 3,
		"results": [
			{"reliability": 1, "confidence": 0.9},
			{"error": "prediction failed", "status": "failed", "index": 1},
			{"reliability": 0, "confidence": 0.6}
		]
	}`
	got := decodeBatchResult(mustDecode(t, raw))

	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	if got.Successful != 2 {
		t.Errorf("Successful = %d, want 2", got.Successful)
	}
	if got.Failed != 1 {
		t.Errorf("Failed = %d, want 1", got.Failed)
	}
	if got.Items[0].Prediction == nil || !got.Items[0].Prediction.Reliable {
		t.Error("Items[0] should carry a reliable prediction")
	}
	if got.Items[1].Error != "prediction failed" {
		t.Errorf("Items[1].Error = %q, want %q", got.Items[1].Error, "prediction failed")
	}
	if got.Items[2].Index != 2 {
		t.Errorf("Items[2].Index = %d, want 2", got.Items[2].Index)
	}
}

func TestDecodeBatchResultLegacyTotal(t *testing.T) {
	raw := `{"total": 1, "results": [{"reliability": 1}]}`
	got := decodeBatchResult(mustDecode(t, raw))
	if got.Total != 1 {
		t.Errorf("Total = %d, want 1", got.Total)
	}
}

func TestDecodeRoutingPlan(t *testing.T) {
	raw := `{
		"routes": [
			{
				"vehicle_id": 1,
				"locations": [
					{"name": "Depot", "lat": 40.7, "lon": -74.0},
					{"name": "Store A", "lat": 40.8, "lon": -73.9, "demand": 300}
				],
				"total_distance": 25.4,
				"total_demand": 300
			},
			{
				"vehicle_id": 2,
				"locations": [{"name": "Depot", "lat": 40.7, "lon": -74.0}],
				"total_distance": 10.1,
				"total_demand": 150
			}
		],
		"statistics": {
			"num_vehicles": 2,
			"total_distance": 35.5,
			"total_demand": 450,
			"avg_distance_per_route": 17.75,
			"vehicle_utilization": 0.225
		},
		"algorithm": "clarke_wright"
	}`
	got := decodeRoutingPlan(mustDecode(t, raw))

	if len(got.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(got.Routes))
	}
	if got.Routes[0].VehicleID != 1 {
		t.Errorf("Routes[0].VehicleID = %d, want 1", got.Routes[0].VehicleID)
	}
	if len(got.Routes[0].Stops) != 2 {
		t.Errorf("len(Routes[0].Stops) = %d, want 2", len(got.Routes[0].Stops))
	}
	if got.Routes[0].Stops[1].Name != "Store A" {
		t.Errorf("stop name = %q, want %q", got.Routes[0].Stops[1].Name, "Store A")
	}
	if got.Statistics.NumVehicles != 2 {
		t.Errorf("NumVehicles = %d, want 2", got.Statistics.NumVehicles)
	}
	if got.Statistics.TotalDistance != 35.5 {
		t.Errorf("TotalDistance = %v, want 35.5", got.Statistics.TotalDistance)
	}
	if got.Algorithm != "clarke_wright" {
		t.Errorf("Algorithm = %q, want %q", got.Algorithm, "clarke_wright")
	}
}

func TestDecodeRoutingPlanDefaultsVehicleCount(t *testing.T) {
	raw := `{"routes": [{"vehicle_id": 1}, {"vehicle_id": 2}, {"vehicle_id": 3}]}`
	got := decodeRoutingPlan(mustDecode(t, raw))
	if got.Statistics.NumVehicles != 3 {
		t.Errorf("NumVehicles = %d, want 3", got.Statistics.NumVehicles)
	}
}

func TestDecodeForecast(t *testing.T) {
	raw := `{
		"forecast": [104.2, 103.8, 105.1],
		"lower_bound": [95.0, 94.1, 95.5],
		"upper_bound": [113.4, 113.5, 114.7],
		"steps": 3,
		"confidence_level": 0.95,
		"model": "ARIMA",
		"statistics": {"mean": 104.4, "std": 0.5, "min": 103.8, "max": 105.1}
	}`
	got := decodeForecast(mustDecode(t, raw))

	if len(got.Values) != 3 || got.Values[0] != 104.2 {
		t.Errorf("Values = %v, want 3 values starting 104.2", got.Values)
	}
	if got.Steps != 3 {
		t.Errorf("Steps = %d, want 3", got.Steps)
	}
	if got.Model != "ARIMA" {
		t.Errorf("Model = %q, want ARIMA", got.Model)
	}
	if got.Statistics.Mean != 104.4 {
		t.Errorf("Statistics.Mean = %v, want 104.4", got.Statistics.Mean)
	}
}

func TestDecodeForecastStepsFallBackToLength(t *testing.T) {
	raw := `{"forecast": [1, 2, 3, 4]}`
	got := decodeForecast(mustDecode(t, raw))
	if got.Steps != 4 {
		t.Errorf("Steps = %d, want 4", got.Steps)
	}
}

func TestDecodeModelsInfo(t *testing.T) {
	raw := `{
		"loaded_models": ["supplier", "shipment", "inventory"],
		"model_count": 3,
		"metadata": {
			"supplier": {"type": "RandomForestClassifier", "features": ["lead_time", "cost", "past_orders"], "loaded_at": "2026-08-20T10:00:00"}
		}
	}`
	got := decodeModelsInfo(mustDecode(t, raw))

	if got.ModelCount != 3 {
		t.Errorf("ModelCount = %d, want 3", got.ModelCount)
	}
	if len(got.LoadedModels) != 3 {
		t.Errorf("len(LoadedModels) = %d, want 3", len(got.LoadedModels))
	}
	meta, ok := got.Metadata["supplier"]
	if !ok {
		t.Fatal("missing supplier metadata")
	}
	if meta.Type != "RandomForestClassifier" {
		t.Errorf("Type = %q, want RandomForestClassifier", meta.Type)
	}
	if len(meta.Features) != 3 {
		t.Errorf("len(Features) = %d, want 3", len(meta.Features))
	}
}

func TestDecodeStatus(t *testing.T) {
	raw := `{
		"status": "online",
		"message": "Supply Chain Optimization API v2.0",
		"environment": "development",
		"models_loaded": ["supplier", "shipment"],
		"features": {"predictions": true, "vehicle_routing": true}
	}`
	got := decodeStatus(mustDecode(t, raw))

	if got.Status != "online" {
		t.Errorf("Status = %q, want online", got.Status)
	}
	if len(got.ModelsLoaded) != 2 {
		t.Errorf("len(ModelsLoaded) = %d, want 2", len(got.ModelsLoaded))
	}
	if !got.Features["predictions"] {
		t.Error("Features[predictions] = false, want true")
	}
}

func TestDecodeHealth(t *testing.T) {
	raw := `{
		"status": "healthy",
		"models": {"loaded_models": ["supplier"], "model_count": 1},
		"config": {"parallel_workers": 4, "vehicle_capacity": 1000}
	}`
	got := decodeHealth(mustDecode(t, raw))

	if got.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", got.Status)
	}
	if got.Models.ModelCount != 1 {
		t.Errorf("Models.ModelCount = %d, want 1", got.Models.ModelCount)
	}
	if got.Config.ParallelWorkers != 4 {
		t.Errorf("Config.ParallelWorkers = %d, want 4", got.Config.ParallelWorkers)
	}
	if got.Config.VehicleCapacity != 1000 {
		t.Errorf("Config.VehicleCapacity = %v, want 1000", got.Config.VehicleCapacity)
	}
}
