package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chainboard/internal/format"
	"chainboard/internal/scenario"
)

func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage saved routing scenarios",
	}
	cmd.AddCommand(scenarioListCmd(), scenarioShowCmd(), scenarioDeleteCmd())
	return cmd
}

func scenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := scenario.NewStore("")
			if err != nil {
				return err
			}
			scenarios, err := store.List()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(scenarios)
			}
			if len(scenarios) == 0 {
				fmt.Println("no scenarios in " + store.Dir())
				return nil
			}
			for _, sc := range scenarios {
				algorithm := sc.Algorithm
				if algorithm == "" {
					algorithm = "default"
				}
				fmt.Printf("%-20s %d customers, demand %s, %s\n",
					sc.Name, len(sc.Customers), format.Quantity(sc.TotalDemand()), algorithm)
			}
			return nil
		},
	}
}

func scenarioShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one scenario's problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := scenario.NewStore("")
			if err != nil {
				return err
			}
			sc, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(sc)
			}
			printKV("Name", sc.Name)
			printKV("File", sc.Path)
			if sc.Algorithm != "" {
				printKV("Algorithm", sc.Algorithm)
			}
			depot := sc.Depot.Name
			if depot == "" {
				depot = "Depot"
			}
			printKV("Depot", depot+" at "+format.Coord(sc.Depot.Lat, sc.Depot.Lon))
			for _, c := range sc.Customers {
				name := c.Name
				if name == "" {
					name = format.Coord(c.Lat, c.Lon)
				}
				printKV("", fmt.Sprintf("%s, demand %s", name, format.Quantity(c.Demand)))
			}
			printKV("Total demand", format.Quantity(sc.TotalDemand()))
			return nil
		},
	}
}

func scenarioDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := scenario.NewStore("")
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])
			if err := store.Delete(name); err != nil {
				return err
			}
			fmt.Println("deleted " + name)
			return nil
		},
	}
}
