// Package expr defines scalar and column expressions in two forms.
//
// The tree form (Expr, AggExpr) is what the query builder produces: every
// node owns its children through pointers. The arena form (AExpr, AAggExpr)
// has the same variants, but children are arena.Node handles into an
// ExprArena so optimizer passes can rewrite one subtree in place.
//
//	Expr  --ToAExpr-->  ExprArena + root Node  --NodeToExpr-->  Expr
//
// ToAExpr appends children before their parent, so a parent's Node is
// always greater than any of its descendants' Nodes. NodeToExpr only reads
// the arena and can be called any number of times on the same Node.
//
// SEALED INTERFACES:
//
// Expr, AExpr, AggExpr and AAggExpr are sealed by unexported methods. Each
// tree variant lowers itself to exactly one arena variant and each arena
// variant raises itself to exactly one tree variant, so adding a variant to
// one form without the other fails to compile instead of falling through a
// default branch at runtime.
package expr
