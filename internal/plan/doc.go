// Package plan defines logical query plans in two forms.
//
// A LogicalPlan is the tree built by the front end: each variant owns its
// inputs and embedded expressions directly. An ALogicalPlan is the arena
// form used by optimizer passes: inputs are Nodes into a plan Arena and
// embedded expressions are Nodes into an expr.Arena.
//
// ToALP lowers a tree in post-order. For every plan node the embedded
// expressions are lowered first, then the plan inputs, then the node
// itself, so a parent always sits at a higher Node than its inputs.
//
// NodeToLP is the inverse, and it is destructive: plan payloads such as
// data frames and user functions are handed back to the caller and the
// slot is overwritten with an inert placeholder of the same variant. The
// arena stays indexable, but reading the same Node a second time yields
// the placeholder. Expression reads stay non-destructive.
//
// Both interfaces are sealed. A variant that exists in one form but not
// the other fails to implement its interface and the package does not
// build.
package plan
