package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"chainboard/internal/format"
)

// ping hits the backend root endpoint; health fetches the richer
// /health report.
func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the backend's root status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(status)
			}
			line := status.Status
			if status.Message != "" {
				line += ": " + status.Message
			}
			if status.Environment != "" {
				line += " (" + status.Environment + ")"
			}
			fmt.Println(line)
			if len(status.ModelsLoaded) > 0 {
				fmt.Println("models: " + strings.Join(status.ModelsLoaded, ", "))
			}
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show backend health, models, and config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(h)
			}
			printKV("Status", h.Status)
			printKV("Models loaded", format.Count(h.Models.ModelCount))
			names := append([]string(nil), h.Models.LoadedModels...)
			sort.Strings(names)
			for _, name := range names {
				line := name
				if meta, ok := h.Models.Metadata[name]; ok && meta.Type != "" {
					line += " (" + meta.Type + ")"
				}
				printKV("", line)
			}
			if h.Config.ParallelWorkers > 0 {
				printKV("Batch workers", format.Count(h.Config.ParallelWorkers))
			}
			if h.Config.VehicleCapacity > 0 {
				printKV("Vehicle capacity", format.Quantity(h.Config.VehicleCapacity))
			}
			return nil
		},
	}
}
