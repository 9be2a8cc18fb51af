package api

import "chainboard/internal/jsonutil"

// Response decoding goes through map[string]any rather than struct tags:
// deployed backends disagree on field names (delayed vs will_delay,
// total vs total_suppliers) and omit fields older versions never sent.
// Each decoder reads every known spelling and derives display fields
// that are missing.

func decodeSupplierPrediction(m map[string]any) SupplierPrediction {
	p := SupplierPrediction{
		Reliable:              jsonutil.GetBool(m, "reliability"),
		Label:                 jsonutil.GetString(m, "reliability_label"),
		Confidence:            jsonutil.GetFloat(m, "confidence"),
		ProbabilityReliable:   jsonutil.GetFloat(m, "probability_reliable"),
		ProbabilityUnreliable: jsonutil.GetFloat(m, "probability_unreliable"),
		Model:                 jsonutil.GetString(m, "model"),
	}
	if !jsonutil.Has(m, "reliability") {
		p.Reliable = jsonutil.GetBool(m, "reliable")
	}
	if p.Label == "" {
		if p.Reliable {
			p.Label = "Reliable"
		} else {
			p.Label = "Unreliable"
		}
	}
	return p
}

func decodeShipmentPrediction(m map[string]any) ShipmentPrediction {
	p := ShipmentPrediction{
		Status:     jsonutil.GetString(m, "status"),
		RiskLevel:  jsonutil.GetString(m, "risk_level"),
		Confidence: jsonutil.GetFloat(m, "confidence"),
		Model:      jsonutil.GetString(m, "model"),
	}
	if jsonutil.Has(m, "delayed") {
		p.Delayed = jsonutil.GetBool(m, "delayed")
	} else {
		p.Delayed = jsonutil.GetBool(m, "will_delay")
	}
	if v, ok := jsonutil.GetFloatFirst(m, "probability_delayed", "delay_probability"); ok {
		p.ProbabilityDelayed = v
	}
	if v, ok := jsonutil.GetFloatFirst(m, "probability_ontime", "probability_on_time"); ok {
		p.ProbabilityOnTime = v
	} else if jsonutil.Has(m, "probability_delayed") || jsonutil.Has(m, "delay_probability") {
		p.ProbabilityOnTime = 1 - p.ProbabilityDelayed
	}
	if p.Status == "" {
		if p.Delayed {
			p.Status = "Delayed"
		} else {
			p.Status = "On Time"
		}
	}
	if p.RiskLevel == "" {
		p.RiskLevel = RiskLevelFor(p.ProbabilityDelayed)
	}
	if fi := floatValues(jsonutil.GetMap(m, "feature_importance")); len(fi) > 0 {
		p.FeatureImportance = fi
	}
	return p
}

// RiskLevelFor buckets a delay probability into the risk levels the
// backend reports: below 0.3 is Low, below 0.7 is Medium, else High.
func RiskLevelFor(probability float64) string {
	switch {
	case probability < 0.3:
		return RiskLow
	case probability < 0.7:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func decodeInventoryPlan(m map[string]any) InventoryPlan {
	plan := InventoryPlan{
		ReorderPoint:     jsonutil.GetFloat(m, "reorder_point"),
		SafetyStock:      jsonutil.GetFloat(m, "safety_stock"),
		AverageInventory: jsonutil.GetFloat(m, "average_inventory"),
		TotalAnnualCost:  jsonutil.GetFloat(m, "total_annual_cost"),
		ServiceLevel:     jsonutil.GetFloat(m, "service_level"),
		NumberOfOrders:   jsonutil.GetFloat(m, "number_of_orders"),
	}
	if v, ok := jsonutil.GetFloatFirst(m, "economic_order_quantity", "eoq"); ok {
		plan.EconomicOrderQuantity = v
	}
	return plan
}

func decodeForecast(m map[string]any) Forecast {
	f := Forecast{
		Values:          jsonutil.GetFloats(m, "forecast"),
		LowerBound:      jsonutil.GetFloats(m, "lower_bound"),
		UpperBound:      jsonutil.GetFloats(m, "upper_bound"),
		ConfidenceLevel: jsonutil.GetFloat(m, "confidence_level"),
		Model:           jsonutil.GetString(m, "model"),
	}
	f.Steps = jsonutil.GetIntOr(m, "steps", len(f.Values))
	stats := jsonutil.GetMap(m, "statistics")
	f.Statistics = ForecastStatistics{
		Mean: jsonutil.GetFloat(stats, "mean"),
		Std:  jsonutil.GetFloat(stats, "std"),
		Min:  jsonutil.GetFloat(stats, "min"),
		Max:  jsonutil.GetFloat(stats, "max"),
	}
	return f
}

func decodeLocation(m map[string]any) Location {
	return Location{
		Name:   jsonutil.GetString(m, "name"),
		Lat:    jsonutil.GetFloat(m, "lat"),
		Lon:    jsonutil.GetFloat(m, "lon"),
		Demand: jsonutil.GetFloat(m, "demand"),
	}
}

func decodeRoutingPlan(m map[string]any) RoutingPlan {
	plan := RoutingPlan{
		Algorithm: jsonutil.GetString(m, "algorithm"),
	}
	for _, rm := range jsonutil.GetMaps(m, "routes") {
		route := Route{
			VehicleID:     jsonutil.GetInt(rm, "vehicle_id"),
			TotalDistance: jsonutil.GetFloat(rm, "total_distance"),
			TotalDemand:   jsonutil.GetFloat(rm, "total_demand"),
		}
		for _, lm := range jsonutil.GetMaps(rm, "locations") {
			route.Stops = append(route.Stops, decodeLocation(lm))
		}
		plan.Routes = append(plan.Routes, route)
	}
	stats := jsonutil.GetMap(m, "statistics")
	plan.Statistics = RoutingStatistics{
		NumVehicles:         jsonutil.GetIntOr(stats, "num_vehicles", len(plan.Routes)),
		TotalDistance:       jsonutil.GetFloat(stats, "total_distance"),
		TotalDemand:         jsonutil.GetFloat(stats, "total_demand"),
		AvgDistancePerRoute: jsonutil.GetFloat(stats, "avg_distance_per_route"),
		VehicleUtilization:  jsonutil.GetFloat(stats, "vehicle_utilization"),
	}
	return plan
}

func decodeBatchResult(m map[string]any) BatchResult {
	var result BatchResult
	for i, item := range jsonutil.GetMaps(m, "results") {
		entry := BatchItem{Index: jsonutil.GetIntOr(item, "index", i)}
		if errMsg := jsonutil.GetString(item, "error"); errMsg != "" || jsonutil.GetString(item, "status") == "failed" {
			if errMsg == "" {
				errMsg = "evaluation failed"
			}
			entry.Error = errMsg
			result.Failed++
		} else {
			pred := decodeSupplierPrediction(item)
			entry.Prediction = &pred
			result.Successful++
		}
		result.Items = append(result.Items, entry)
	}
	if v, ok := jsonutil.GetFloatFirst(m, "total_suppliers", "total"); ok {
		result.Total = int(v)
	} else {
		result.Total = len(result.Items)
	}
	return result
}

func decodeStatus(m map[string]any) Status {
	s := Status{
		Status:       jsonutil.GetString(m, "status"),
		Message:      jsonutil.GetString(m, "message"),
		Environment:  jsonutil.GetString(m, "environment"),
		ModelsLoaded: jsonutil.GetStrings(m, "models_loaded"),
	}
	if features := boolValues(jsonutil.GetMap(m, "features")); len(features) > 0 {
		s.Features = features
	}
	return s
}

func decodeModelsInfo(m map[string]any) ModelsInfo {
	info := ModelsInfo{
		LoadedModels: jsonutil.GetStrings(m, "loaded_models"),
	}
	info.ModelCount = jsonutil.GetIntOr(m, "model_count", len(info.LoadedModels))
	meta := jsonutil.GetMap(m, "metadata")
	if len(meta) > 0 {
		info.Metadata = make(map[string]ModelMeta, len(meta))
		for name := range meta {
			entry := jsonutil.GetMap(meta, name)
			info.Metadata[name] = ModelMeta{
				Type:     jsonutil.GetString(entry, "type"),
				Features: jsonutil.GetStrings(entry, "features"),
				LoadedAt: jsonutil.GetString(entry, "loaded_at"),
			}
		}
	}
	return info
}

func decodeHealth(m map[string]any) Health {
	models := jsonutil.GetMap(m, "models")
	config := jsonutil.GetMap(m, "config")
	return Health{
		Status: jsonutil.GetString(m, "status"),
		Models: decodeModelsInfo(models),
		Config: BackendConfig{
			ParallelWorkers: jsonutil.GetInt(config, "parallel_workers"),
			VehicleCapacity: jsonutil.GetFloat(config, "vehicle_capacity"),
		},
	}
}

func decodeReloadResult(m map[string]any) ReloadResult {
	return ReloadResult{
		Status:  jsonutil.GetString(m, "status"),
		Message: jsonutil.GetString(m, "message"),
	}
}

func floatValues(m map[string]any) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k := range m {
		out[k] = jsonutil.GetFloat(m, k)
	}
	return out
}

func boolValues(m map[string]any) map[string]bool {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = jsonutil.GetBool(m, k)
	}
	return out
}
