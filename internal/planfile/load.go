package planfile

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v3"

	"github.com/roach88/lazyir/internal/ir"
	"github.com/roach88/lazyir/internal/plan"
)

//go:embed schema.cue
var cueSchema string

// TableSource resolves the data frames named by df_scan nodes.
type TableSource interface {
	Table(ctx context.Context, name string) (ir.DataFrame, error)
}

// Option configures Build and Load.
type Option func(*builder)

// WithTables sets the source df_scan tables are read from. Without it a
// df_scan fails to build.
func WithTables(src TableSource) Option {
	return func(b *builder) { b.tables = src }
}

// WithScanKinds sets the registry columnar_scan formats are resolved
// against. The default is plan.DefaultScanKinds.
func WithScanKinds(reg *plan.ScanRegistry) Option {
	return func(b *builder) { b.scans = reg }
}

// WithLogger sets the logger used for debug output while building.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) { b.logger = logger }
}

// Load reads the plan file at path and builds its plan. Files ending in
// .cue are read as CUE; anything else as YAML, which includes JSON.
func Load(ctx context.Context, path string, opts ...Option) (plan.LogicalPlan, error) {
	f, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, f, opts...)
}

// Decode reads the plan file at path without building it.
func Decode(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err, path)
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return DecodeCUE(path, data)
	}
	f, err := DecodeYAML(data)
	if err != nil {
		return nil, readError(err, path)
	}
	return f, nil
}

// DecodeYAML parses a YAML or JSON plan file. Unknown fields are errors.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrMissingField.New("file", "plan file", "plan")
		}
		return nil, err
	}
	if err := checkFile(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeCUE evaluates a CUE plan file. The file is unified with the plan
// file schema, exported to JSON and then decoded like YAML, so both forms
// accept exactly the same fields.
func DecodeCUE(filename string, data []byte) (*File, error) {
	cctx := cuecontext.New()
	schema := cctx.CompileString(cueSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, ErrRead.Wrap(err, "schema.cue")
	}

	v := cctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, ErrRead.Wrap(err, filename)
	}
	v = schema.LookupPath(cue.ParsePath("#File")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, ErrRead.Wrap(err, filename)
	}

	out, err := v.MarshalJSON()
	if err != nil {
		return nil, ErrRead.Wrap(err, filename)
	}
	f, err := DecodeYAML(out)
	if err != nil {
		return nil, readError(err, filename)
	}
	return f, nil
}

// readError wraps a decoding failure in ErrRead. Errors that already
// carry a plan file kind are returned unchanged.
func readError(err error, name string) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return ErrRead.Wrap(err, name)
}

func checkFile(f *File) error {
	if f.Version != Version {
		return ErrVersion.New(f.Version, Version)
	}
	if f.Plan == nil {
		return ErrMissingField.New("file", "plan file", "plan")
	}
	return nil
}
