// Package scenario stores reusable routing scenarios as HCL files: one
// depot block, any number of customer blocks. Scenarios feed the routing
// panel and the routing CLI so realistic networks do not have to be
// retyped per request.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"chainboard/internal/api"
)

const (
	// DirEnv is the env var override for the scenarios directory.
	DirEnv = "CHAINBOARD_SCENARIOS_DIR"
	// defaultDirBase is the default scenarios directory under $HOME.
	defaultDirBase = ".config/chainboard/scenarios"
)

// ResolveDir returns the scenarios directory, using the
// CHAINBOARD_SCENARIOS_DIR env var if set, otherwise
// ~/.config/chainboard/scenarios.
func ResolveDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultDirBase), nil
}

// Scenario is one saved routing problem.
type Scenario struct {
	Name      string
	Path      string
	Algorithm string
	Depot     api.Location
	Customers []api.Location
}

// Request converts the scenario into a routing request. The scenario's
// algorithm wins over the supplied default.
func (s Scenario) Request(defaultAlgorithm string) api.RoutingRequest {
	algorithm := s.Algorithm
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	return api.RoutingRequest{
		Depot:     s.Depot,
		Customers: s.Customers,
		Algorithm: algorithm,
	}
}

// TotalDemand sums customer demand for display.
func (s Scenario) TotalDemand() float64 {
	var total float64
	for _, c := range s.Customers {
		total += c.Demand
	}
	return total
}

// Validate checks the scenario the same way a routing request is checked.
func (s Scenario) Validate() error {
	return s.Request("").Validate()
}

type scenarioFile struct {
	Name      string          `hcl:"name,optional"`
	Algorithm string          `hcl:"algorithm,optional"`
	Depot     *locationBlock  `hcl:"depot,block"`
	Customers []locationBlock `hcl:"customer,block"`
}

type locationBlock struct {
	Name   string  `hcl:"name,optional"`
	Lat    float64 `hcl:"lat"`
	Lon    float64 `hcl:"lon"`
	Demand float64 `hcl:"demand,optional"`
}

func (b locationBlock) location() api.Location {
	return api.Location{Name: b.Name, Lat: b.Lat, Lon: b.Lon, Demand: b.Demand}
}

// Store reads and writes scenarios in one directory.
type Store struct {
	dir string
}

// NewStore returns a store over dir; an empty dir resolves the default
// directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = ResolveDir()
		if err != nil {
			return nil, fmt.Errorf("resolve scenarios dir: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

// Dir reports the directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// List returns all parseable scenarios sorted by name. A missing
// directory yields an empty list; files that fail to parse are skipped.
func (s *Store) List() ([]Scenario, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Scenario
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".hcl") {
			continue
		}
		sc, err := s.loadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load reads one scenario by name or path. Names resolve inside the
// store directory; anything containing a separator or .hcl suffix is
// treated as a path.
func (s *Store) Load(nameOrPath string) (Scenario, error) {
	path := nameOrPath
	if !strings.ContainsRune(nameOrPath, os.PathSeparator) && !strings.HasSuffix(nameOrPath, ".hcl") {
		path = filepath.Join(s.dir, nameOrPath+".hcl")
	}
	return s.loadFile(path)
}

func (s *Store) loadFile(path string) (Scenario, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, diags)
	}

	var parsed scenarioFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("decode scenario %s: %w", path, diags)
	}
	if parsed.Depot == nil {
		return Scenario{}, fmt.Errorf("scenario %s: missing depot block", path)
	}

	sc := Scenario{
		Name:      parsed.Name,
		Path:      path,
		Algorithm: parsed.Algorithm,
		Depot:     parsed.Depot.location(),
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), ".hcl")
	}
	for _, c := range parsed.Customers {
		sc.Customers = append(sc.Customers, c.location())
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Save writes the scenario under a slug of its name and returns the
// file path. Existing files with the same slug are overwritten.
func (s *Store) Save(sc Scenario) (string, error) {
	if sc.Name == "" {
		return "", fmt.Errorf("scenario name must not be empty")
	}
	if err := sc.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create scenarios dir: %w", err)
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("name", cty.StringVal(sc.Name))
	if sc.Algorithm != "" {
		body.SetAttributeValue("algorithm", cty.StringVal(sc.Algorithm))
	}
	body.AppendNewline()
	writeLocation(body.AppendNewBlock("depot", nil).Body(), sc.Depot, false)
	for _, c := range sc.Customers {
		body.AppendNewline()
		writeLocation(body.AppendNewBlock("customer", nil).Body(), c, true)
	}

	path := filepath.Join(s.dir, Slug(sc.Name)+".hcl")
	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write scenario %s: %w", path, err)
	}
	return path, nil
}

// Delete removes a saved scenario by name.
func (s *Store) Delete(name string) error {
	path := filepath.Join(s.dir, Slug(name)+".hcl")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete scenario %s: %w", name, err)
	}
	return nil
}

func writeLocation(body *hclwrite.Body, loc api.Location, withDemand bool) {
	if loc.Name != "" {
		body.SetAttributeValue("name", cty.StringVal(loc.Name))
	}
	body.SetAttributeValue("lat", cty.NumberFloatVal(loc.Lat))
	body.SetAttributeValue("lon", cty.NumberFloatVal(loc.Lon))
	if withDemand {
		body.SetAttributeValue("demand", cty.NumberFloatVal(loc.Demand))
	}
}

// Slug normalizes a scenario name into a file name: lowercase, spaces
// to dashes, everything else outside [a-z0-9-_] dropped.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "scenario"
	}
	return b.String()
}
