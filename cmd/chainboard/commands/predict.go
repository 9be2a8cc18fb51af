package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run single predictions",
	}
	cmd.AddCommand(predictSupplierCmd(), predictShipmentCmd())
	return cmd
}

func predictSupplierCmd() *cobra.Command {
	var in api.SupplierInput
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Score one supplier's reliability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.PredictSupplier(cmd.Context(), in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(p)
			}
			printKV("Verdict", p.Label)
			printKV("Confidence", format.Percent(p.Confidence))
			printKV("P(reliable)", format.Percent(p.ProbabilityReliable))
			printKV("P(unreliable)", format.Percent(p.ProbabilityUnreliable))
			if p.Model != "" {
				printKV("Model", p.Model)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&in.LeadTime, "lead-time", 0, "lead time in days (1-365)")
	cmd.Flags().Float64Var(&in.Cost, "cost", 0, "unit cost in dollars")
	cmd.Flags().IntVar(&in.PastOrders, "past-orders", 0, "number of past orders")
	_ = cmd.MarkFlagRequired("lead-time")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func predictShipmentCmd() *cobra.Command {
	var in api.ShipmentInput
	cmd := &cobra.Command{
		Use:   "shipment",
		Short: "Score one shipment's delay risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.PredictShipment(cmd.Context(), in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(p)
			}
			printKV("Status", p.Status)
			printKV("Risk level", p.RiskLevel)
			printKV("Confidence", format.Percent(p.Confidence))
			printKV("P(delayed)", format.Percent(p.ProbabilityDelayed))
			printKV("P(on time)", format.Percent(p.ProbabilityOnTime))
			if p.Model != "" {
				printKV("Model", p.Model)
			}
			if len(p.FeatureImportance) > 0 {
				printHeader("Feature importance")
				for _, name := range importanceOrder(p.FeatureImportance) {
					printKV("  "+name, format.Percent(p.FeatureImportance[name]))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&in.DeliveryTime, "delivery-time", 0, "planned delivery time in days")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 0, "shipment quantity in units")
	cmd.Flags().IntVar(&in.DelayTime, "delay-time", 0, "days already late")
	_ = cmd.MarkFlagRequired("delivery-time")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

// importanceOrder sorts feature names by weight, heaviest first.
func importanceOrder(weights map[string]float64) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
