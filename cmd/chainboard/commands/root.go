package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chainboard/internal/api"
	"chainboard/internal/config"
	"chainboard/internal/scenario"
	"chainboard/internal/trace"
	"chainboard/internal/ui"
)

var (
	apiURL     string
	configPath string
	timeout    time.Duration
	jsonOut    bool
	verbose    bool

	cfg      config.Config
	client   *api.Client
	recorder *trace.Recorder
)

func Execute() error {
	root := &cobra.Command{
		Use:   "chainboard",
		Short: "Terminal dashboard for a supply chain optimization backend",
		Long: `chainboard talks to a supply chain optimization API: supplier and
shipment predictions, inventory policies, demand forecasts, vehicle
routing, and batch supplier evaluation.

Run it without a subcommand for the full-screen dashboard, or use the
subcommands for one-shot requests in scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default "+api.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/chainboard/config.hcl)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (default 15s)")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		pingCmd(),
		healthCmd(),
		predictCmd(),
		optimizeCmd(),
		forecastCmd(),
		batchCmd(),
		modelsCmd(),
		scenarioCmd(),
	)
	return root.Execute()
}

// setup resolves configuration and builds the shared client. Flags win
// over environment and file settings.
func setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeout
	}

	var exporter *trace.OTLPExporter
	if cfg.OTLPEndpoint != "" {
		exporter, err = trace.NewOTLPExporter(cmd.Context(), cfg.OTLPEndpoint, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("otlp exporter: %w", err)
		}
		slog.Debug("span export enabled", "endpoint", cfg.OTLPEndpoint)
	}
	recorder = trace.NewRecorder(trace.DefaultMaxEntries, exporter)
	client = api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithObserver(recorder),
	)
	slog.Debug("configured", "api_url", cfg.APIBaseURL, "timeout", cfg.Timeout)
	return nil
}

// teardown flushes pending span exports.
func teardown() error {
	if recorder == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return recorder.Shutdown(ctx)
}

func runDashboard(ctx context.Context) error {
	scenarios, err := scenario.NewStore("")
	if err != nil {
		return err
	}
	model := ui.NewAppModel(client, recorder, scenarios, cfg)
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	recorder.SetOnChange(func() { p.Send(ui.HistoryChangedMsg{}) })
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
