package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyir/internal/frame"
)

// TableInfo describes one catalog table.
type TableInfo struct {
	Name   string   `json:"name"`
	Schema []string `json:"schema"`
	Height int      `json:"height"`
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the --db catalog",
		Long: `List the tables df_scan nodes can read from the SQLite catalog given
with --db, with their schema and row count.

Example:
  lazyir tables --db ./tables.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(rootOpts, cmd)
		},
	}
	return cmd
}

func runTables(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	if opts.Database == "" {
		if err := formatter.Error(ErrCodeDatabase, "--db is required", nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, "--db is required")
	}
	catalog, err := frame.OpenCatalog(opts.Database)
	if err != nil {
		return fail(formatter, ErrCodeDatabase, "opening table catalog", err)
	}
	defer catalog.Close()

	names, err := catalog.Tables(ctx)
	if err != nil {
		return fail(formatter, ErrCodeDatabase, "listing tables", err)
	}
	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		df, err := catalog.LoadTable(ctx, name)
		if err != nil {
			return fail(formatter, ErrCodeDatabase, "loading table "+name, err)
		}
		info := TableInfo{Name: name, Height: df.Height()}
		for _, f := range df.Schema().Fields() {
			info.Schema = append(info.Schema, f.String())
		}
		tables = append(tables, info)
	}

	if formatter.Format == "json" {
		return formatter.Success(tables)
	}
	if len(tables) == 0 {
		fmt.Fprintln(formatter.Writer, "No tables")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintf(formatter.Writer, "%s (%d row(s))\n", t.Name, t.Height)
		for _, f := range t.Schema {
			fmt.Fprintf(formatter.Writer, "  %s\n", f)
		}
	}
	return nil
}
