package mockapi

import (
	"fmt"
	"math"

	"chainboard/internal/api"
)

// fieldError mirrors the validation error items the real backend emits.
type fieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func bodyLoc(prefix []any, field string) []any {
	loc := make([]any, 0, len(prefix)+2)
	loc = append(loc, "body")
	loc = append(loc, prefix...)
	return append(loc, field)
}

func validateSupplier(in api.SupplierInput, prefix []any) []fieldError {
	var errs []fieldError
	if in.LeadTime < 1 {
		errs = append(errs, fieldError{bodyLoc(prefix, "lead_time"), "Input should be greater than or equal to 1", "greater_than_equal"})
	} else if in.LeadTime > 365 {
		errs = append(errs, fieldError{bodyLoc(prefix, "lead_time"), "Input should be less than or equal to 365", "less_than_equal"})
	}
	if in.Cost <= 0 {
		errs = append(errs, fieldError{bodyLoc(prefix, "cost"), "Input should be greater than 0", "greater_than"})
	}
	if in.PastOrders < 0 {
		errs = append(errs, fieldError{bodyLoc(prefix, "past_orders"), "Input should be greater than or equal to 0", "greater_than_equal"})
	}
	return errs
}

func validateShipment(in api.ShipmentInput) []fieldError {
	var errs []fieldError
	if in.DeliveryTime < 1 {
		errs = append(errs, fieldError{bodyLoc(nil, "delivery_time"), "Input should be greater than or equal to 1", "greater_than_equal"})
	}
	if in.Quantity < 1 {
		errs = append(errs, fieldError{bodyLoc(nil, "quantity"), "Input should be greater than or equal to 1", "greater_than_equal"})
	}
	if in.DelayTime < 0 {
		errs = append(errs, fieldError{bodyLoc(nil, "delay_time"), "Input should be greater than or equal to 0", "greater_than_equal"})
	}
	return errs
}

func validateInventory(in api.InventoryInput) []fieldError {
	var errs []fieldError
	if in.AnnualDemand <= 0 {
		errs = append(errs, fieldError{bodyLoc(nil, "annual_demand"), "Input should be greater than 0", "greater_than"})
	}
	if in.UnitCost <= 0 {
		errs = append(errs, fieldError{bodyLoc(nil, "unit_cost"), "Input should be greater than 0", "greater_than"})
	}
	if in.DemandStd < 0 {
		errs = append(errs, fieldError{bodyLoc(nil, "demand_std"), "Input should be greater than or equal to 0", "greater_than_equal"})
	}
	if in.LeadTimeDays < 1 {
		errs = append(errs, fieldError{bodyLoc(nil, "lead_time_days"), "Input should be greater than or equal to 1", "greater_than_equal"})
	}
	return errs
}

func validateForecast(req api.ForecastRequest) []fieldError {
	var errs []fieldError
	if req.Steps < 1 {
		errs = append(errs, fieldError{[]any{"query", "steps"}, "Input should be greater than or equal to 1", "greater_than_equal"})
	} else if req.Steps > 90 {
		errs = append(errs, fieldError{[]any{"query", "steps"}, "Input should be less than or equal to 90", "less_than_equal"})
	}
	if req.ConfidenceLevel < 0.5 {
		errs = append(errs, fieldError{[]any{"query", "confidence_level"}, "Input should be greater than or equal to 0.5", "greater_than_equal"})
	} else if req.ConfidenceLevel > 0.99 {
		errs = append(errs, fieldError{[]any{"query", "confidence_level"}, "Input should be less than or equal to 0.99", "less_than_equal"})
	}
	return errs
}

func validateLocation(loc api.Location, prefix []any) []fieldError {
	var errs []fieldError
	if loc.Lat < -90 || loc.Lat > 90 {
		errs = append(errs, fieldError{bodyLoc(prefix, "lat"), "Input should be between -90 and 90", "value_error"})
	}
	if loc.Lon < -180 || loc.Lon > 180 {
		errs = append(errs, fieldError{bodyLoc(prefix, "lon"), "Input should be between -180 and 180", "value_error"})
	}
	if loc.Demand < 0 {
		errs = append(errs, fieldError{bodyLoc(prefix, "demand"), "Input should be greater than or equal to 0", "greater_than_equal"})
	}
	return errs
}

func validateRouting(req api.RoutingRequest) []fieldError {
	errs := validateLocation(req.Depot, []any{"depot"})
	if len(req.Customers) == 0 {
		errs = append(errs, fieldError{bodyLoc(nil, "customers"), "List should have at least 1 item", "too_short"})
	}
	for i, c := range req.Customers {
		errs = append(errs, validateLocation(c, []any{"customers", i})...)
	}
	return errs
}

// supplierPrediction scores a supplier with a fixed logistic curve.
// Short lead times, low costs, and long order history score reliable.
func supplierPrediction(in api.SupplierInput) map[string]any {
	p := logistic(3.0 - 0.04*float64(in.LeadTime) - 0.001*in.Cost + 0.02*float64(in.PastOrders))
	reliable := 0
	label := "Unreliable"
	confidence := 1 - p
	if p >= 0.5 {
		reliable = 1
		label = "Reliable"
		confidence = p
	}
	return map[string]any{
		"reliability":            reliable,
		"reliability_label":      label,
		"confidence":             round4(confidence),
		"probability_reliable":   round4(p),
		"probability_unreliable": round4(1 - p),
		"input":                  in,
		"model":                  "RandomForestClassifier",
	}
}

// shipmentPrediction scores delay risk, dominated by the reported
// delay time.
func shipmentPrediction(in api.ShipmentInput) map[string]any {
	p := logistic(-2.5 + 0.05*float64(in.DelayTime) + 0.01*float64(in.DeliveryTime) + 0.0002*float64(in.Quantity))
	delayed := 0
	status := "On Time"
	confidence := 1 - p
	if p >= 0.5 {
		delayed = 1
		status = "Delayed"
		confidence = p
	}
	return map[string]any{
		"delayed":             delayed,
		"status":              status,
		"risk_level":          api.RiskLevelFor(p),
		"probability_delayed": round4(p),
		"probability_ontime":  round4(1 - p),
		"confidence":          round4(confidence),
		"input":               in,
		"model":               "LogisticRegression",
		"feature_importance": map[string]float64{
			"delivery_time": 0.21,
			"quantity":      0.14,
			"delay_time":    0.65,
		},
	}
}

// Cost model constants matching the real optimizer's defaults.
const (
	orderingCost    = 100.0
	holdingCostRate = 0.25
	serviceLevel    = 0.95
	zScore95        = 1.6449
)

func inventoryPlan(in api.InventoryInput) map[string]any {
	holdingCost := in.UnitCost * holdingCostRate
	eoq := math.Sqrt(2 * in.AnnualDemand * orderingCost / holdingCost)

	dailyMean := in.AnnualDemand / 365
	dailyStd := in.DemandStd / math.Sqrt(365)
	lead := float64(in.LeadTimeDays)

	safetyStock := zScore95 * dailyStd * math.Sqrt(lead)
	reorderPoint := dailyMean*lead + safetyStock
	numOrders := in.AnnualDemand / eoq
	avgInventory := eoq/2 + safetyStock
	totalCost := avgInventory*holdingCost + numOrders*orderingCost

	return map[string]any{
		"economic_order_quantity": round2(eoq),
		"reorder_point":           round2(reorderPoint),
		"safety_stock":            round2(safetyStock),
		"average_inventory":       round2(avgInventory),
		"total_annual_cost":       round2(totalCost),
		"service_level":           serviceLevel,
		"number_of_orders":        int(math.Ceil(numOrders)),
	}
}

// forecast builds a trending weekly-seasonal series with a widening
// confidence cone.
func forecast(req api.ForecastRequest) map[string]any {
	values := make([]float64, req.Steps)
	lower := make([]float64, req.Steps)
	upper := make([]float64, req.Steps)

	spread := 1.0 + 3.0*(req.ConfidenceLevel-0.5)
	for i := range values {
		t := float64(i)
		values[i] = round2(500 + 2.5*t + 40*math.Sin(2*math.Pi*t/7))
		margin := spread * 12 * math.Sqrt(t+1)
		lower[i] = round2(values[i] - margin)
		upper[i] = round2(values[i] + margin)
	}

	return map[string]any{
		"forecast":         values,
		"lower_bound":      lower,
		"upper_bound":      upper,
		"steps":            req.Steps,
		"confidence_level": req.ConfidenceLevel,
		"model":            "ARIMA",
		"statistics": map[string]any{
			"mean": round2(mean(values)),
			"std":  round2(stddev(values)),
			"min":  round2(minOf(values)),
			"max":  round2(maxOf(values)),
		},
	}
}

// routingPlan splits customers into capacity-bounded trips in input
// order. Good enough to demo against; no savings optimization here.
func routingPlan(req api.RoutingRequest, algorithm string, capacity float64) map[string]any {
	depot := req.Depot
	if depot.Name == "" {
		depot.Name = "Depot"
	}

	var trips [][]api.Location
	var current []api.Location
	var load float64
	for i, c := range req.Customers {
		if c.Name == "" {
			c.Name = fmt.Sprintf("Customer %d", i+1)
		}
		if len(current) > 0 && load+c.Demand > capacity {
			trips = append(trips, current)
			current = nil
			load = 0
		}
		current = append(current, c)
		load += c.Demand
	}
	if len(current) > 0 {
		trips = append(trips, current)
	}

	routes := make([]any, 0, len(trips))
	var totalDistance, totalDemand float64
	for id, trip := range trips {
		stops := append([]api.Location{depot}, trip...)
		stops = append(stops, depot)

		var dist, demand float64
		locs := make([]any, 0, len(stops))
		for i, loc := range stops {
			if i > 0 {
				dist += haversineKM(stops[i-1], loc)
			}
			demand += loc.Demand
			locs = append(locs, map[string]any{"name": loc.Name, "lat": loc.Lat, "lon": loc.Lon})
		}
		demand -= 2 * depot.Demand

		routes = append(routes, map[string]any{
			"vehicle_id":     id,
			"locations":      locs,
			"total_distance": round2(dist),
			"total_demand":   round2(demand),
		})
		totalDistance += dist
		totalDemand += demand
	}

	numVehicles := len(trips)
	avgDistance := 0.0
	utilization := 0.0
	if numVehicles > 0 {
		avgDistance = totalDistance / float64(numVehicles)
		utilization = totalDemand / (float64(numVehicles) * capacity) * 100
	}

	return map[string]any{
		"routes": routes,
		"statistics": map[string]any{
			"num_vehicles":           numVehicles,
			"total_distance":         round2(totalDistance),
			"total_demand":           round2(totalDemand),
			"avg_distance_per_route": round2(avgDistance),
			"vehicle_utilization":    round2(utilization),
		},
		"algorithm": algorithm,
	}
}

const earthRadiusKM = 6371.0

func haversineKM(a, b api.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
