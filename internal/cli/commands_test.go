package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyir/internal/frame"
	"github.com/roach88/lazyir/internal/testutil"
)

const ordersPlan = "testdata/plans/orders.yaml"

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// peopleCatalog writes testutil.PeopleFrame into a fresh SQLite catalog.
func peopleCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.db")
	c, err := frame.OpenCatalog(path)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.SaveTable(context.Background(), "people", testutil.PeopleFrame()))
	return path
}

func TestExplainGolden(t *testing.T) {
	out, err := execute(t, "explain", ordersPlan)
	require.NoError(t, err)
	golden(t).Assert(t, "explain_orders", []byte(out))
}

func TestExplainOptimizedGolden(t *testing.T) {
	out, err := execute(t, "explain", "--optimize", ordersPlan)
	require.NoError(t, err)
	golden(t).Assert(t, "explain_orders_optimized", []byte(out))
}

func TestExplainJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", SessionIDs: testutil.NewFixedSessionIDs("run")}
	cmd := NewExplainCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--optimize", "--passes", "fold_constants", ordersPlan})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status  string        `json:"status"`
		Session string        `json:"session"`
		Data    ExplainResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.Session)
	assert.Equal(t, "gross of big orders", resp.Data.Name)
	assert.Equal(t, []string{"order_id: i64", "gross: f64"}, resp.Data.Schema)
	assert.Equal(t, []string{"fold_constants"}, resp.Data.Passes)
	assert.Contains(t, resp.Data.Plan, "lit(10)")
}

func TestExplainUnknownPass(t *testing.T) {
	out, err := execute(t, "explain", "--optimize", "--passes", "push_down", ordersPlan)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E203]")
	assert.Contains(t, out, `unknown pass "push_down"`)
}

func TestExplainReadsCatalog(t *testing.T) {
	db := peopleCatalog(t)

	out, err := execute(t, "--db", db, "explain", "testdata/plans/people.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `FILTER [(col("age")) >= (lit(30))]`)
	assert.Contains(t, out, "DF {id: i64, name: str, age: i64}")
}

func TestExplainMissingTable(t *testing.T) {
	out, err := execute(t, "explain", "testdata/plans/people.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E105]")
}

func TestExplainErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", "testdata/plans/missing.yaml", ErrCodeNotFound},
		{"unknown kind", "testdata/plans/unknown_kind.yaml", ErrCodeUnknownPlanKind},
		{"future version", "testdata/plans/future_version.yaml", ErrCodeVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := NewExplainCommand(&RootOptions{Format: "json"})
			cmd.SetOut(buf)
			cmd.SetArgs([]string{tt.path})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestLowerGolden(t *testing.T) {
	out, err := execute(t, "lower", ordersPlan)
	require.NoError(t, err)
	golden(t).Assert(t, "lower_orders", []byte(out))
}

func TestLowerJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "lower", ordersPlan)
	require.NoError(t, err)

	var resp struct {
		Data LowerResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, uint32(2), resp.Data.Root)
	require.Len(t, resp.Data.Plans, 3)
	require.Len(t, resp.Data.Exprs, 10)
	assert.Equal(t, Slot{Node: 1, Kind: "Selection", Inputs: []uint32{0}, Exprs: []uint32{9}}, resp.Data.Plans[1])
	assert.Equal(t, Slot{Node: 4, Kind: "Alias", Label: "gross", Inputs: []uint32{3}}, resp.Data.Exprs[4])
}

func TestRoundTrip(t *testing.T) {
	out, err := execute(t, "roundtrip", ordersPlan)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ round trip preserved plan")
	assert.Contains(t, out, "(3 plan node(s), 10 expression node(s))")
}

func TestRoundTripWithCatalog(t *testing.T) {
	db := peopleCatalog(t)

	out, err := execute(t, "--db", db, "--format", "json", "roundtrip", "testdata/plans/people.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   RoundTripResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Data.Fingerprint, 64)
	assert.Equal(t, 2, resp.Data.Plans)
	assert.Equal(t, 3, resp.Data.Exprs)
}

func TestFingerprintIsStable(t *testing.T) {
	first, err := execute(t, "fingerprint", ordersPlan)
	require.NoError(t, err)
	second, err := execute(t, "fingerprint", ordersPlan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 65) // hex digest and newline
}

func TestFingerprintChangesWhenOptimized(t *testing.T) {
	plain, err := execute(t, "fingerprint", ordersPlan)
	require.NoError(t, err)
	optimized, err := execute(t, "fingerprint", "--optimize", ordersPlan)
	require.NoError(t, err)

	assert.NotEqual(t, plain, optimized)
}

func TestTables(t *testing.T) {
	db := peopleCatalog(t)

	out, err := execute(t, "--db", db, "tables")
	require.NoError(t, err)
	assert.Equal(t, "people (3 row(s))\n  id: i64\n  name: str\n  age: i64\n", out)
}

func TestTablesRequiresDatabase(t *testing.T) {
	out, err := execute(t, "tables")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}
