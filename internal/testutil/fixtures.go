package testutil

import (
	"io"
	"log/slog"

	"github.com/roach88/lazyir/internal/frame"
	"github.com/roach88/lazyir/internal/ir"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// PeopleFrame returns a small fixed table: id i64, name str, age i64.
func PeopleFrame() *frame.DataFrame {
	df, err := frame.New(
		frame.MustSeries("id", ir.Int64, ir.IntValue(1), ir.IntValue(2), ir.IntValue(3)),
		frame.MustSeries("name", ir.Utf8, ir.Utf8Value("ada"), ir.Utf8Value("brian"), ir.Utf8Value("cleo")),
		frame.MustSeries("age", ir.Int64, ir.IntValue(36), ir.IntValue(41), ir.IntValue(29)),
	)
	if err != nil {
		panic(err)
	}
	return df
}

// OrdersFrame returns a table that joins to PeopleFrame on person_id.
func OrdersFrame() *frame.DataFrame {
	df, err := frame.New(
		frame.MustSeries("order_id", ir.Int64, ir.IntValue(10), ir.IntValue(11)),
		frame.MustSeries("person_id", ir.Int64, ir.IntValue(1), ir.IntValue(3)),
		frame.MustSeries("total", ir.Float64, ir.FloatValue(9.5), ir.FloatValue(20)),
	)
	if err != nil {
		panic(err)
	}
	return df
}

// Tables returns PeopleFrame and OrdersFrame as a table source under the
// names "people" and "orders".
func Tables() frame.Tables {
	return frame.Tables{"people": PeopleFrame(), "orders": OrdersFrame()}
}
