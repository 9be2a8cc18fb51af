// Package config resolves chainboard settings from defaults, an optional
// HCL config file, and environment variables, in that order. Command-line
// flags are layered on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"chainboard/internal/api"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "CHAINBOARD_CONFIG"
	// EnvAPIURL overrides the backend base URL.
	EnvAPIURL = "CHAINBOARD_API_URL"
	// EnvTimeout overrides the request timeout. Accepts a duration
	// string ("20s") or a bare number of seconds.
	EnvTimeout = "CHAINBOARD_TIMEOUT"

	// defaultConfigBase is the default config path under $HOME.
	defaultConfigBase = ".config/chainboard/config.hcl"
)

// Config is the resolved chainboard configuration.
type Config struct {
	// APIBaseURL is the backend address.
	APIBaseURL string
	// Timeout bounds each backend request.
	Timeout time.Duration
	// DefaultAlgorithm seeds the routing panel's algorithm choice.
	DefaultAlgorithm string
	// VehicleCapacity is the per-vehicle capacity shown alongside
	// routing results.
	VehicleCapacity float64
	// OTLPEndpoint enables span export when non-empty.
	OTLPEndpoint string
	// ServiceName labels exported spans.
	ServiceName string
	// RefreshInterval is the dashboard's background status poll period.
	RefreshInterval time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:       api.DefaultBaseURL,
		Timeout:          api.DefaultTimeout,
		DefaultAlgorithm: api.AlgorithmClarkeWright,
		VehicleCapacity:  1000,
		ServiceName:      "chainboard",
		RefreshInterval:  5 * time.Second,
	}
}

// DefaultPath returns the config file path used when neither the flag
// nor CHAINBOARD_CONFIG selects one.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultConfigBase), nil
}

// hcl file structure; every block and attribute is optional.
type fileConfig struct {
	API     *apiBlock     `hcl:"api,block"`
	Routing *routingBlock `hcl:"routing,block"`
	Trace   *traceBlock   `hcl:"trace,block"`
	UI      *uiBlock      `hcl:"ui,block"`
}

type apiBlock struct {
	BaseURL string `hcl:"base_url,optional"`
	Timeout string `hcl:"timeout,optional"`
}

type routingBlock struct {
	DefaultAlgorithm string  `hcl:"default_algorithm,optional"`
	VehicleCapacity  float64 `hcl:"vehicle_capacity,optional"`
}

type traceBlock struct {
	OTLPEndpoint string `hcl:"otlp_endpoint,optional"`
	ServiceName  string `hcl:"service_name,optional"`
}

type uiBlock struct {
	RefreshInterval string `hcl:"refresh_interval,optional"`
}

// Load resolves the configuration. An explicitly requested file (path
// argument or CHAINBOARD_CONFIG) must exist; the default location is
// skipped silently when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			path = ""
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
		} else if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("parse config %s: %w", path, diags)
	}

	var parsed fileConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("decode config %s: %w", path, diags)
	}

	if b := parsed.API; b != nil {
		if b.BaseURL != "" {
			c.APIBaseURL = b.BaseURL
		}
		if b.Timeout != "" {
			d, err := parseDuration(b.Timeout)
			if err != nil {
				return fmt.Errorf("config %s: api.timeout: %w", path, err)
			}
			c.Timeout = d
		}
	}
	if b := parsed.Routing; b != nil {
		if b.DefaultAlgorithm != "" {
			c.DefaultAlgorithm = b.DefaultAlgorithm
		}
		if b.VehicleCapacity != 0 {
			c.VehicleCapacity = b.VehicleCapacity
		}
	}
	if b := parsed.Trace; b != nil {
		if b.OTLPEndpoint != "" {
			c.OTLPEndpoint = b.OTLPEndpoint
		}
		if b.ServiceName != "" {
			c.ServiceName = b.ServiceName
		}
	}
	if b := parsed.UI; b != nil {
		if b.RefreshInterval != "" {
			d, err := parseDuration(b.RefreshInterval)
			if err != nil {
				return fmt.Errorf("config %s: ui.refresh_interval: %w", path, err)
			}
			c.RefreshInterval = d
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate rejects configurations the client cannot operate with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.DefaultAlgorithm {
	case api.AlgorithmClarkeWright, api.AlgorithmNearestNeighbor:
	default:
		return fmt.Errorf("unknown routing algorithm %q", c.DefaultAlgorithm)
	}
	if c.VehicleCapacity <= 0 {
		return fmt.Errorf("vehicle capacity must be positive, got %g", c.VehicleCapacity)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}
	return nil
}

// evalContext exposes the process environment to config expressions as
// the `env` object, e.g. base_url = env.BACKEND_URL.
func evalContext() *hcl.EvalContext {
	envVars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		envVars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}

// parseDuration accepts a Go duration string or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}
