package api

import "fmt"

// Routing algorithms the backend accepts.
const (
	AlgorithmClarkeWright    = "clarke_wright"
	AlgorithmNearestNeighbor = "nearest_neighbor"
)

// Algorithms lists the accepted routing algorithms in display order.
func Algorithms() []string {
	return []string{AlgorithmClarkeWright, AlgorithmNearestNeighbor}
}

// SupplierInput is the payload for a supplier reliability prediction.
type SupplierInput struct {
	LeadTime   int     `json:"lead_time"`
	Cost       float64 `json:"cost"`
	PastOrders int     `json:"past_orders"`
}

// Validate checks the payload against the ranges the backend enforces,
// so bad requests fail before they leave the process.
func (s SupplierInput) Validate() error {
	if s.LeadTime < 1 || s.LeadTime > 365 {
		return fmt.Errorf("lead_time must be between 1 and 365 days, got %d", s.LeadTime)
	}
	if s.Cost <= 0 {
		return fmt.Errorf("cost must be greater than zero, got %g", s.Cost)
	}
	if s.PastOrders < 0 {
		return fmt.Errorf("past_orders must not be negative, got %d", s.PastOrders)
	}
	return nil
}

// SupplierPrediction is the classifier verdict for one supplier.
type SupplierPrediction struct {
	Reliable              bool    `json:"reliable"`
	Label                 string  `json:"reliability_label"`
	Confidence            float64 `json:"confidence"`
	ProbabilityReliable   float64 `json:"probability_reliable"`
	ProbabilityUnreliable float64 `json:"probability_unreliable"`
	Model                 string  `json:"model,omitempty"`
}

// ShipmentInput is the payload for a shipment delay prediction.
type ShipmentInput struct {
	DeliveryTime int `json:"delivery_time"`
	Quantity     int `json:"quantity"`
	DelayTime    int `json:"delay_time"`
}

// Validate checks the payload against the ranges the backend enforces.
func (s ShipmentInput) Validate() error {
	if s.DeliveryTime < 1 {
		return fmt.Errorf("delivery_time must be at least 1 day, got %d", s.DeliveryTime)
	}
	if s.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", s.Quantity)
	}
	if s.DelayTime < 0 {
		return fmt.Errorf("delay_time must not be negative, got %d", s.DelayTime)
	}
	return nil
}

// Risk levels derived from the delay probability.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ShipmentPrediction is the delay verdict for one shipment.
type ShipmentPrediction struct {
	Delayed            bool               `json:"delayed"`
	Status             string             `json:"status"`
	RiskLevel          string             `json:"risk_level"`
	ProbabilityDelayed float64            `json:"probability_delayed"`
	ProbabilityOnTime  float64            `json:"probability_ontime"`
	Confidence         float64            `json:"confidence"`
	FeatureImportance  map[string]float64 `json:"feature_importance,omitempty"`
	Model              string             `json:"model,omitempty"`
}

// InventoryInput is the payload for an inventory policy optimization.
type InventoryInput struct {
	AnnualDemand float64 `json:"annual_demand"`
	UnitCost     float64 `json:"unit_cost"`
	DemandStd    float64 `json:"demand_std"`
	LeadTimeDays int     `json:"lead_time_days"`
}

// Validate checks the payload against the ranges the backend enforces.
func (i InventoryInput) Validate() error {
	if i.AnnualDemand <= 0 {
		return fmt.Errorf("annual_demand must be greater than zero, got %g", i.AnnualDemand)
	}
	if i.UnitCost <= 0 {
		return fmt.Errorf("unit_cost must be greater than zero, got %g", i.UnitCost)
	}
	if i.DemandStd < 0 {
		return fmt.Errorf("demand_std must not be negative, got %g", i.DemandStd)
	}
	if i.LeadTimeDays < 1 {
		return fmt.Errorf("lead_time_days must be at least 1, got %d", i.LeadTimeDays)
	}
	return nil
}

// InventoryPlan is the optimized inventory policy.
type InventoryPlan struct {
	EconomicOrderQuantity float64 `json:"economic_order_quantity"`
	ReorderPoint          float64 `json:"reorder_point"`
	SafetyStock           float64 `json:"safety_stock"`
	AverageInventory      float64 `json:"average_inventory"`
	TotalAnnualCost       float64 `json:"total_annual_cost"`
	ServiceLevel          float64 `json:"service_level"`
	NumberOfOrders        float64 `json:"number_of_orders"`
}

// ForecastRequest selects the horizon and interval width for a demand
// forecast.
type ForecastRequest struct {
	Steps           int     `json:"steps"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// Validate checks the parameters against the ranges the backend enforces.
func (f ForecastRequest) Validate() error {
	if f.Steps < 1 || f.Steps > 90 {
		return fmt.Errorf("steps must be between 1 and 90, got %d", f.Steps)
	}
	if f.ConfidenceLevel < 0.5 || f.ConfidenceLevel > 0.99 {
		return fmt.Errorf("confidence_level must be between 0.5 and 0.99, got %g", f.ConfidenceLevel)
	}
	return nil
}

// ForecastStatistics summarizes the forecast series.
type ForecastStatistics struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Forecast is a demand forecast with confidence bounds.
type Forecast struct {
	Values          []float64          `json:"forecast"`
	LowerBound      []float64          `json:"lower_bound"`
	UpperBound      []float64          `json:"upper_bound"`
	Steps           int                `json:"steps"`
	ConfidenceLevel float64            `json:"confidence_level"`
	Model           string             `json:"model,omitempty"`
	Statistics      ForecastStatistics `json:"statistics"`
}

// Location is a point on the routing map. Demand is zero for depots.
type Location struct {
	Name   string  `json:"name,omitempty"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Demand float64 `json:"demand,omitempty"`
}

func (l Location) validate(role string) error {
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%s latitude must be between -90 and 90, got %g", role, l.Lat)
	}
	if l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%s longitude must be between -180 and 180, got %g", role, l.Lon)
	}
	return nil
}

// RoutingRequest is the payload for a vehicle routing optimization.
type RoutingRequest struct {
	Depot     Location   `json:"depot"`
	Customers []Location `json:"customers"`
	Algorithm string     `json:"algorithm,omitempty"`
}

// Validate checks coordinates, demands, and the algorithm name.
func (r RoutingRequest) Validate() error {
	if err := r.Depot.validate("depot"); err != nil {
		return err
	}
	if len(r.Customers) == 0 {
		return fmt.Errorf("at least one customer is required")
	}
	for i, c := range r.Customers {
		if err := c.validate(fmt.Sprintf("customer %d", i+1)); err != nil {
			return err
		}
		if c.Demand < 0 {
			return fmt.Errorf("customer %d demand must not be negative, got %g", i+1, c.Demand)
		}
	}
	switch r.Algorithm {
	case "", AlgorithmClarkeWright, AlgorithmNearestNeighbor:
	default:
		return fmt.Errorf("unknown routing algorithm %q", r.Algorithm)
	}
	return nil
}

// Route is one vehicle's assigned trip.
type Route struct {
	VehicleID     int        `json:"vehicle_id"`
	Stops         []Location `json:"locations"`
	TotalDistance float64    `json:"total_distance"`
	TotalDemand   float64    `json:"total_demand"`
}

// RoutingStatistics summarizes a routing plan across vehicles.
type RoutingStatistics struct {
	NumVehicles         int     `json:"num_vehicles"`
	TotalDistance       float64 `json:"total_distance"`
	TotalDemand         float64 `json:"total_demand"`
	AvgDistancePerRoute float64 `json:"avg_distance_per_route"`
	VehicleUtilization  float64 `json:"vehicle_utilization"`
}

// RoutingPlan is the optimized set of vehicle routes.
type RoutingPlan struct {
	Routes     []Route           `json:"routes"`
	Statistics RoutingStatistics `json:"statistics"`
	Algorithm  string            `json:"algorithm,omitempty"`
}

// BatchItem is the outcome for one supplier in a batch evaluation.
// Exactly one of Prediction and Error is set.
type BatchItem struct {
	Index      int                 `json:"index"`
	Prediction *SupplierPrediction `json:"prediction,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchResult is the aggregate outcome of a batch supplier evaluation.
// Successful and Failed are derived from the per-item outcomes.
type BatchResult struct {
	Items      []BatchItem `json:"results"`
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
}

// Status is the backend's root status summary.
type Status struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Environment  string          `json:"environment,omitempty"`
	ModelsLoaded []string        `json:"models_loaded"`
	Features     map[string]bool `json:"features,omitempty"`
}

// ModelMeta describes one loaded model.
type ModelMeta struct {
	Type     string   `json:"type"`
	Features []string `json:"features,omitempty"`
	LoadedAt string   `json:"loaded_at,omitempty"`
}

// ModelsInfo describes the backend's loaded model registry.
type ModelsInfo struct {
	LoadedModels []string             `json:"loaded_models"`
	ModelCount   int                  `json:"model_count"`
	Metadata     map[string]ModelMeta `json:"metadata,omitempty"`
}

// BackendConfig is the operational configuration the backend reports.
type BackendConfig struct {
	ParallelWorkers int     `json:"parallel_workers"`
	VehicleCapacity float64 `json:"vehicle_capacity"`
}

// Health is the backend's health report.
type Health struct {
	Status string        `json:"status"`
	Models ModelsInfo    `json:"models"`
	Config BackendConfig `json:"config"`
}

// ReloadResult reports the outcome of a model reload.
type ReloadResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
