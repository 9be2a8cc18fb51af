package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"chainboard/internal/api"
	"chainboard/internal/format"
	"chainboard/internal/scenario"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run backend optimizations",
	}
	cmd.AddCommand(optimizeInventoryCmd(), optimizeRoutingCmd())
	return cmd
}

func optimizeInventoryCmd() *cobra.Command {
	var in api.InventoryInput
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Compute an inventory policy (EOQ, reorder point, safety stock)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := client.OptimizeInventory(cmd.Context(), in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(plan)
			}
			printKV("Order quantity", format.Quantity(plan.EconomicOrderQuantity)+" units")
			printKV("Reorder point", format.Quantity(plan.ReorderPoint)+" units")
			printKV("Safety stock", format.Quantity(plan.SafetyStock)+" units")
			printKV("Avg inventory", format.Quantity(plan.AverageInventory)+" units")
			printKV("Orders / year", format.Quantity(plan.NumberOfOrders))
			printKV("Service level", format.Percent(plan.ServiceLevel))
			printKV("Annual cost", format.Money(plan.TotalAnnualCost))
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.AnnualDemand, "annual-demand", 0, "annual demand in units")
	cmd.Flags().Float64Var(&in.UnitCost, "unit-cost", 0, "unit cost in dollars")
	cmd.Flags().Float64Var(&in.DemandStd, "demand-std", 0, "demand standard deviation")
	cmd.Flags().IntVar(&in.LeadTimeDays, "lead-time", 0, "replenishment lead time in days")
	_ = cmd.MarkFlagRequired("annual-demand")
	_ = cmd.MarkFlagRequired("unit-cost")
	_ = cmd.MarkFlagRequired("lead-time")
	return cmd
}

func optimizeRoutingCmd() *cobra.Command {
	var (
		scenarioRef string
		depotName   string
		depotLat    float64
		depotLon    float64
		customers   []string
		algorithm   string
	)
	cmd := &cobra.Command{
		Use:   "routing",
		Short: "Plan vehicle routes from a depot to customers",
		Long: `Plan vehicle routes. The problem comes either from a saved scenario
(--scenario name or HCL file path) or from --depot-* and repeated
--customer flags. Customers are "lat,lon,demand" or "lat,lon,demand,name".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := routingProblem(scenarioRef, depotName, depotLat, depotLon, customers)
			if err != nil {
				return err
			}
			if algorithm != "" {
				req.Algorithm = algorithm
			}
			if req.Algorithm == "" {
				req.Algorithm = cfg.DefaultAlgorithm
			}

			plan, err := client.OptimizeRoutes(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(plan)
			}
			printRoutingPlan(plan)
			return nil
		},
	}
	cmd.Flags().StringVar(&scenarioRef, "scenario", "", "saved scenario name or HCL file path")
	cmd.Flags().StringVar(&depotName, "depot-name", "Depot", "depot display name")
	cmd.Flags().Float64Var(&depotLat, "depot-lat", 0, "depot latitude")
	cmd.Flags().Float64Var(&depotLon, "depot-lon", 0, "depot longitude")
	cmd.Flags().StringArrayVar(&customers, "customer", nil, `customer as "lat,lon,demand[,name]" (repeatable)`)
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "clarke_wright or nearest_neighbor")
	return cmd
}

// routingProblem builds the request from a scenario or from flags.
func routingProblem(scenarioRef, depotName string, depotLat, depotLon float64, customers []string) (api.RoutingRequest, error) {
	if scenarioRef != "" {
		store, err := scenario.NewStore("")
		if err != nil {
			return api.RoutingRequest{}, err
		}
		sc, err := store.Load(scenarioRef)
		if err != nil {
			return api.RoutingRequest{}, err
		}
		return sc.Request(""), nil
	}

	if len(customers) == 0 {
		return api.RoutingRequest{}, fmt.Errorf("either --scenario or at least one --customer is required")
	}
	req := api.RoutingRequest{
		Depot: api.Location{Name: depotName, Lat: depotLat, Lon: depotLon},
	}
	for i, raw := range customers {
		loc, err := parseCustomer(raw)
		if err != nil {
			return api.RoutingRequest{}, fmt.Errorf("customer %d: %w", i+1, err)
		}
		req.Customers = append(req.Customers, loc)
	}
	return req, nil
}

// parseCustomer reads "lat,lon,demand" with an optional trailing name.
func parseCustomer(raw string) (api.Location, error) {
	parts := strings.SplitN(raw, ",", 4)
	if len(parts) < 3 {
		return api.Location{}, fmt.Errorf("want lat,lon,demand[,name], got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return api.Location{}, fmt.Errorf("bad latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return api.Location{}, fmt.Errorf("bad longitude %q", parts[1])
	}
	demand, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return api.Location{}, fmt.Errorf("bad demand %q", parts[2])
	}
	loc := api.Location{Lat: lat, Lon: lon, Demand: demand}
	if len(parts) == 4 {
		loc.Name = strings.TrimSpace(parts[3])
	}
	return loc, nil
}

func printRoutingPlan(plan api.RoutingPlan) {
	s := plan.Statistics
	fmt.Printf("%s: %d vehicles, %s total, demand %s\n",
		plan.Algorithm, s.NumVehicles, format.Distance(s.TotalDistance), format.Quantity(s.TotalDemand))
	for _, route := range plan.Routes {
		stops := make([]string, len(route.Stops))
		for i, stop := range route.Stops {
			stops[i] = stop.Name
			if stops[i] == "" {
				stops[i] = format.Coord(stop.Lat, stop.Lon)
			}
		}
		fmt.Printf("vehicle %d: %s (%s, demand %s)\n",
			route.VehicleID, strings.Join(stops, " -> "),
			format.Distance(route.TotalDistance), format.Quantity(route.TotalDemand))
	}
	printKV("Utilization", format.Percent(s.VehicleUtilization))
	printKV("Avg distance", format.Distance(s.AvgDistancePerRoute))
}
