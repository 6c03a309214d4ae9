package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines one scripted run against the storage core.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order against a fresh store.
	Steps []Step `yaml:"steps"`
}

// Step is a single command in a scenario.
type Step struct {
	// Op selects the command: create, update, delete, clear, rebuild,
	// or reopen.
	Op string `yaml:"op"`

	// Date is a calendar date (YYYY-MM-DD) for create and update.
	Date string `yaml:"date,omitempty"`

	// Minutes is the duration for create and update. Fractional values
	// are passed through so validation failures can be scripted.
	Minutes *float64 `yaml:"minutes,omitempty"`

	// Description is the entry text for create and update.
	Description *string `yaml:"description,omitempty"`

	// ID names the target of update and delete: either an alias bound
	// by an earlier create, or a literal id.
	ID string `yaml:"id,omitempty"`

	// As binds an alias to the id generated by a create step.
	As string `yaml:"as,omitempty"`

	// Error, when set, requires the step to fail with an error whose
	// message contains this substring.
	Error string `yaml:"error,omitempty"`
}

// Step op constants.
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpClear   = "clear"
	OpRebuild = "rebuild"
	OpReopen  = "reopen"
)

var knownOps = map[string]bool{
	OpCreate:  true,
	OpUpdate:  true,
	OpDelete:  true,
	OpClear:   true,
	OpRebuild: true,
	OpReopen:  true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently skipping a check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario is missing a name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}

	aliases := map[string]bool{}
	for i, step := range s.Steps {
		if !knownOps[step.Op] {
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
		switch step.Op {
		case OpCreate:
			if step.Minutes == nil {
				return fmt.Errorf("step %d: create requires minutes", i+1)
			}
			if step.As != "" {
				aliases[step.As] = true
			}
		case OpUpdate, OpDelete:
			if step.ID == "" {
				return fmt.Errorf("step %d: %s requires an id", i+1, step.Op)
			}
			// Literal UUIDs are allowed for unknown-id scenarios.
			if !strings.Contains(step.ID, "-") && !aliases[step.ID] {
				return fmt.Errorf("step %d: id %q is not a bound alias", i+1, step.ID)
			}
		}
	}
	return nil
}
