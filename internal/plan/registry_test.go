package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScanKindsHasParquet(t *testing.T) {
	k, ok := DefaultScanKinds.Lookup("Parquet")
	require.True(t, ok)
	assert.Equal(t, "parquet", k.Name)
	assert.True(t, k.PredicatePushdown)

	k, ok = DefaultScanKinds.ForPath("/data/events.PQ")
	require.True(t, ok)
	assert.Equal(t, "parquet", k.Name)
}

func TestScanRegistryRegister(t *testing.T) {
	reg := NewScanRegistry()
	require.NoError(t, reg.Register(ScanKind{Name: "orc", Extensions: []string{".orc"}}))
	require.NoError(t, reg.Register(ScanKind{Name: "ipc", Extensions: []string{".arrow", ".ipc"}}))

	assert.Equal(t, []string{"ipc", "orc"}, reg.Kinds())
	assert.ErrorIs(t, reg.Register(ScanKind{Name: "ORC"}), ErrDuplicateScanKind)
	assert.Error(t, reg.Register(ScanKind{}))

	_, ok := reg.ForPath("x.csv")
	assert.False(t, ok)
}

func TestNewColumnarScan(t *testing.T) {
	scan, err := NewColumnarScan(nil, "parquet", "a.parquet", xSchema)
	require.NoError(t, err)
	assert.Equal(t, &ColumnarScan{Kind: "parquet", Path: "a.parquet", FileSchema: xSchema}, scan)

	_, err = NewColumnarScan(NewScanRegistry(), "parquet", "a.parquet", xSchema)
	assert.ErrorIs(t, err, ErrUnknownScanKind)
}

func TestColumnarScanRoundTripsWithoutRegistration(t *testing.T) {
	// The variant belongs to the IR whatever kinds are registered.
	lp := &ColumnarScan{Kind: "unregistered", Path: "x.bin", FileSchema: xSchema}
	assertRoundTrip(t, lp)
}
