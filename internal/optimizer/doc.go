// Package optimizer runs rewrite passes over plans in arena form.
//
// A Pipeline lowers a plan tree into a Lowered pair of arenas, applies each
// Pass in order, and finalizes the result back into a tree. Passes rewrite
// arena slots in place. They may append new nodes but must keep the
// post-order invariant: every input and child Node is smaller than the
// Node that refers to it. WithVerify checks this after every pass.
//
// Passes run one at a time on the calling goroutine. A Pipeline itself
// holds no per-run state and may be shared.
package optimizer
