package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// RunWithGolden executes a scenario and compares the final snapshot
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	snap := Run(t, scenario)
	AssertGolden(t, scenario.Name, snap)
}

// AssertGolden compares an already-captured snapshot against the golden
// file for name. Snapshots serialize with stable field order and indented
// JSON so diffs stay readable.
func AssertGolden(t *testing.T, name string, snap *Snapshot) {
	t.Helper()

	data, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
