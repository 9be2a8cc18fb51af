package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

func forecastCmd() *cobra.Command {
	req := api.ForecastRequest{Steps: 30, ConfidenceLevel: 0.95}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Fetch a demand forecast with confidence bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := client.ForecastDemand(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(f)
			}
			header := fmt.Sprintf("%d steps at %s confidence", f.Steps, format.Percent(f.ConfidenceLevel))
			if f.Model != "" {
				header += ", model " + f.Model
			}
			fmt.Println(header)
			fmt.Printf("%4s  %10s  %10s  %10s\n", "step", "forecast", "lower", "upper")
			for i, v := range f.Values {
				lower, upper := "", ""
				if i < len(f.LowerBound) {
					lower = format.Quantity(f.LowerBound[i])
				}
				if i < len(f.UpperBound) {
					upper = format.Quantity(f.UpperBound[i])
				}
				fmt.Printf("%4d  %10s  %10s  %10s\n", i+1, format.Quantity(v), lower, upper)
			}
			fmt.Printf("mean %s, std %s, min %s, max %s\n",
				format.Quantity(f.Statistics.Mean), format.Quantity(f.Statistics.Std),
				format.Quantity(f.Statistics.Min), format.Quantity(f.Statistics.Max))
			return nil
		},
	}
	cmd.Flags().IntVar(&req.Steps, "steps", req.Steps, "forecast horizon in days (1-90)")
	cmd.Flags().Float64Var(&req.ConfidenceLevel, "confidence", req.ConfidenceLevel, "confidence level (0.5-0.99)")
	return cmd
}
