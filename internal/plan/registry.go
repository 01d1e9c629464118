package plan

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/roach88/lazyir/internal/ir"
)

// ErrUnknownScanKind is returned when a columnar scan names a kind that has
// not been registered.
var ErrUnknownScanKind = errors.New("unknown scan kind")

// ErrDuplicateScanKind is returned when a kind is registered twice.
var ErrDuplicateScanKind = errors.New("duplicate scan kind")

// ScanKind describes a columnar file format a ColumnarScan may read and
// the pushdowns its reader supports.
type ScanKind struct {
	Name               string
	Extensions         []string
	PredicatePushdown  bool
	AggregatePushdown  bool
	ProjectionPushdown bool
}

// ScanRegistry holds the scan kinds available at runtime. It is safe for
// concurrent use.
type ScanRegistry struct {
	mu    sync.RWMutex
	kinds map[string]ScanKind
}

// NewScanRegistry returns an empty registry.
func NewScanRegistry() *ScanRegistry {
	return &ScanRegistry{kinds: make(map[string]ScanKind)}
}

// DefaultScanKinds is the process-wide registry. Parquet is registered at
// init.
var DefaultScanKinds = NewScanRegistry()

func init() {
	if err := DefaultScanKinds.Register(ScanKind{
		Name:               "parquet",
		Extensions:         []string{".parquet", ".pq"},
		PredicatePushdown:  true,
		AggregatePushdown:  true,
		ProjectionPushdown: true,
	}); err != nil {
		panic(err)
	}
}

// Register adds kind. Names are case-insensitive.
func (r *ScanRegistry) Register(kind ScanKind) error {
	name := strings.ToLower(kind.Name)
	if name == "" {
		return fmt.Errorf("register scan kind: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateScanKind, name)
	}
	kind.Name = name
	kind.Extensions = slices.Clone(kind.Extensions)
	r.kinds[name] = kind
	return nil
}

// Lookup returns the kind registered under name.
func (r *ScanRegistry) Lookup(name string) (ScanKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[strings.ToLower(name)]
	return k, ok
}

// ForPath returns the kind whose extensions match path.
func (r *ScanRegistry) ForPath(path string) (ScanKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(path)
	for _, name := range r.sortedNames() {
		k := r.kinds[name]
		for _, ext := range k.Extensions {
			if strings.HasSuffix(lower, ext) {
				return k, true
			}
		}
	}
	return ScanKind{}, false
}

// Kinds returns the registered kind names in sorted order.
func (r *ScanRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

func (r *ScanRegistry) sortedNames() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewColumnarScan builds a ColumnarScan for a registered kind. A nil
// registry means DefaultScanKinds.
func NewColumnarScan(reg *ScanRegistry, kind, path string, schema *ir.Schema) (*ColumnarScan, error) {
	if reg == nil {
		reg = DefaultScanKinds
	}
	k, ok := reg.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownScanKind, kind, strings.Join(reg.Kinds(), ", "))
	}
	return &ColumnarScan{Kind: k.Name, Path: path, FileSchema: schema}, nil
}
