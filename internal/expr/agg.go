package expr

// AggExpr is an aggregation in tree form. It only appears wrapped in Agg.
type AggExpr interface {
	lowerAgg(a *Arena) AAggExpr
	String() string
}

// Min is the minimum of Expr.
type Min struct{ Expr Expr }

// Max is the maximum of Expr.
type Max struct{ Expr Expr }

// Median is the median of Expr.
type Median struct{ Expr Expr }

// NUnique counts the distinct values of Expr.
type NUnique struct{ Expr Expr }

// First is the first value of Expr.
type First struct{ Expr Expr }

// Last is the last value of Expr.
type Last struct{ Expr Expr }

// Mean is the arithmetic mean of Expr.
type Mean struct{ Expr Expr }

// List collects the values of Expr into a list.
type List struct{ Expr Expr }

// Count counts the values of Expr.
type Count struct{ Expr Expr }

// Quantile is the Quantile-th quantile of Expr, with Quantile in [0, 1].
type Quantile struct {
	Expr     Expr
	Quantile float64
}

// Sum is the sum of Expr.
type Sum struct{ Expr Expr }

// Std is the standard deviation of Expr.
type Std struct{ Expr Expr }

// Var is the variance of Expr.
type Var struct{ Expr Expr }

// AggGroups returns the group indices of Expr.
type AggGroups struct{ Expr Expr }
