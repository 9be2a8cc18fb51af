package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chainboard/internal/batch"
	"chainboard/internal/format"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate rosters in bulk",
	}
	cmd.AddCommand(batchSuppliersCmd())
	return cmd
}

func batchSuppliersCmd() *cobra.Command {
	var (
		file   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Evaluate a supplier roster CSV",
		Long: `Evaluate every supplier in a CSV roster. The file needs a
name,lead_time,cost,past_orders header; results can be written back out
as CSV with --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suppliers, err := batch.LoadSuppliers(file)
			if err != nil {
				return err
			}
			result, err := client.EvaluateSuppliers(cmd.Context(), batch.Inputs(suppliers))
			if err != nil {
				return err
			}
			if output != "" {
				if err := batch.WriteResults(output, suppliers, result); err != nil {
					return err
				}
			}
			if jsonOut {
				return printJSON(result)
			}
			for _, item := range result.Items {
				name := batch.Name(suppliers, item.Index)
				if item.Error != "" {
					fmt.Printf("%-20s error: %s\n", name, item.Error)
					continue
				}
				if p := item.Prediction; p != nil {
					fmt.Printf("%-20s %-12s %s\n", name, p.Label, format.Percent(p.Confidence))
				}
			}
			fmt.Printf("%d evaluated, %d successful, %d failed\n",
				result.Total, result.Successful, result.Failed)
			if output != "" {
				fmt.Println("results written to " + output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "supplier roster CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write per-supplier results to this CSV")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
