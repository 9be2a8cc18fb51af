package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect or reload the model registry",
	}
	cmd.AddCommand(modelsInfoCmd(), modelsReloadCmd())
	return cmd
}

func modelsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List loaded models and their metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := client.ModelsInfo(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(info)
			}
			fmt.Printf("%d models loaded\n", info.ModelCount)
			names := append([]string(nil), info.LoadedModels...)
			sort.Strings(names)
			for _, name := range names {
				line := fmt.Sprintf("%-24s", name)
				if meta, ok := info.Metadata[name]; ok {
					line += fmt.Sprintf(" %-24s", meta.Type)
					if len(meta.Features) > 0 {
						line += " " + strings.Join(meta.Features, ", ")
					}
					if meta.LoadedAt != "" {
						line += "  loaded " + meta.LoadedAt
					}
				}
				fmt.Println(strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

func modelsReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the backend to reload its models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.ReloadModels(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(result)
			}
			message := result.Message
			if message == "" {
				message = result.Status
			}
			fmt.Println(message)
			return nil
		},
	}
}
