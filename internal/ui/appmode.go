package ui

// AppMode selects the active dashboard panel.
type AppMode int

const (
	ModeSupplier AppMode = iota
	ModeShipment
	ModeInventory
	ModeForecast
	ModeRouting
	ModeBatch
	ModeModels
)

func (m AppMode) String() string {
	switch m {
	case ModeSupplier:
		return "Supplier"
	case ModeShipment:
		return "Shipment"
	case ModeInventory:
		return "Inventory"
	case ModeForecast:
		return "Forecast"
	case ModeRouting:
		return "Routing"
	case ModeBatch:
		return "Batch"
	case ModeModels:
		return "Models"
	default:
		return "Unknown"
	}
}

// PanelModes lists the panels in tab order. Number keys (SPC 1..7) and
// tab/shift+tab follow this order.
func PanelModes() []AppMode {
	return []AppMode{
		ModeSupplier,
		ModeShipment,
		ModeInventory,
		ModeForecast,
		ModeRouting,
		ModeBatch,
		ModeModels,
	}
}
