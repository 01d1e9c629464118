package frame

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cast"

	"github.com/roach88/lazyir/internal/ir"
)

// ErrTableNotFound is returned by LoadTable for a name the catalog does not
// hold.
var ErrTableNotFound = errors.New("table not found")

// Catalog loads data frames from a SQLite database.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog creates or opens the SQLite database at path. Use ":memory:"
// for a private in-memory catalog.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	// One connection, so an in-memory database is shared by every query.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	return &Catalog{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Tables lists the user tables in name order.
func (c *Catalog) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Table implements the plan file table source.
func (c *Catalog) Table(ctx context.Context, name string) (ir.DataFrame, error) {
	return c.LoadTable(ctx, name)
}

// LoadTable reads every row of the named table.
//
// Column types come from the declared SQLite type: INTEGER affinity maps to
// i64, REAL to f64, TEXT to str and BOOLEAN to bool. NULLs become null
// values of the column's type.
func (c *Catalog) LoadTable(ctx context.Context, name string) (*DataFrame, error) {
	if err := c.checkTable(ctx, name); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("load table %q: %w", name, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("load table %q: %w", name, err)
	}
	dtypes := make([]ir.DataType, len(colTypes))
	for i, ct := range colTypes {
		dtypes[i] = declaredType(ct.DatabaseTypeName())
	}

	values := make([][]ir.Value, len(colTypes))
	raw := make([]any, len(colTypes))
	ptrs := make([]any, len(colTypes))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %q: %w", name, err)
		}
		for i, r := range raw {
			v, err := toValue(r, dtypes[i])
			if err != nil {
				return nil, fmt.Errorf("table %q column %q: %w", name, colTypes[i].Name(), err)
			}
			values[i] = append(values[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load table %q: %w", name, err)
	}

	cols := make([]*Series, len(colTypes))
	for i, ct := range colTypes {
		s, err := NewSeries(ct.Name(), dtypes[i], values[i]...)
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}
	return New(cols...)
}

// SaveTable creates the named table from df, replacing any table of the
// same name.
func (c *Catalog) SaveTable(ctx context.Context, name string, df *DataFrame) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("drop %q: %w", name, err)
	}

	defs := make([]string, df.Width())
	marks := make([]string, df.Width())
	for i, f := range df.Schema().Fields() {
		defs[i] = quoteIdent(f.Name) + " " + sqlType(f.DType)
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err = tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range df.Height() {
		row := df.Row(i)
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = fromValue(v)
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (c *Catalog) checkTable(ctx context.Context, name string) error {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return fmt.Errorf("look up table %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// declaredType applies SQLite's affinity rules to a declared column type.
func declaredType(decl string) ir.DataType {
	d := strings.ToUpper(decl)
	switch {
	case strings.Contains(d, "BOOL"):
		return ir.Boolean
	case strings.Contains(d, "INT"):
		return ir.Int64
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return ir.Utf8
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return ir.Float64
	default:
		return ir.Utf8
	}
}

func sqlType(dt ir.DataType) string {
	switch {
	case dt.Kind == ir.KindBoolean:
		return "BOOLEAN"
	case dt.Kind == ir.KindFloat32 || dt.Kind == ir.KindFloat64:
		return "REAL"
	case dt.IsNumeric():
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func toValue(raw any, dt ir.DataType) (ir.Value, error) {
	if raw == nil {
		return ir.NullValue{}, nil
	}
	switch dt.Kind {
	case ir.KindBoolean:
		if n, ok := raw.(int64); ok {
			return ir.BoolValue(n != 0), nil
		}
		b, err := cast.ToBoolE(raw)
		return ir.BoolValue(b), err
	case ir.KindInt64:
		n, err := cast.ToInt64E(raw)
		return ir.IntValue(n), err
	case ir.KindFloat64:
		f, err := cast.ToFloat64E(raw)
		return ir.FloatValue(f), err
	default:
		if b, ok := raw.([]byte); ok {
			return ir.Utf8Value(b), nil
		}
		s, err := cast.ToStringE(raw)
		return ir.Utf8Value(s), err
	}
}

func fromValue(v ir.Value) any {
	switch x := v.(type) {
	case nil, ir.NullValue:
		return nil
	case ir.BoolValue:
		return bool(x)
	case ir.IntValue:
		return int64(x)
	case ir.UIntValue:
		return int64(x)
	case ir.FloatValue:
		return float64(x)
	case ir.Utf8Value:
		return string(x)
	default:
		return fmt.Sprint(v)
	}
}
