// Package arena provides the append-only, handle-addressed store that backs
// the arena form of the query IR.
//
// An Arena owns every value added to it. Values are addressed by Node, a
// plain integer handle that carries no information about which arena it
// came from. Arenas only grow: there is no removal and no compaction, so a
// Node returned by Add stays valid for the lifetime of that arena.
//
// Handles are allocated in append order. Callers that append children
// before parents (post-order) can therefore walk an arena from index 0 to
// Len()-1 as a bottom-up traversal without recursion.
//
// Using a Node against an arena that did not produce it, or an index that
// was never added, is a programming error. Such accesses panic with an
// *InvalidNodeError; they are never reported as ordinary errors.
//
// Arenas are not safe for concurrent mutation. A pipeline that wants to run
// work in parallel must partition its arenas or serialize access itself.
package arena
