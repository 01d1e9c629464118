package arena

import (
	"fmt"
	"iter"
	"math"
)

// Node is an opaque handle to one slot of an Arena.
type Node uint32

// InvalidNode is never returned by Add. Vacated plan slots use it to mark
// references that no longer point anywhere.
const InvalidNode Node = math.MaxUint32

// IsValid reports whether n could have been returned by Add.
func (n Node) IsValid() bool { return n != InvalidNode }

func (n Node) String() string {
	if n == InvalidNode {
		return "node(invalid)"
	}
	return fmt.Sprintf("node(%d)", uint32(n))
}

// OptNode is an optional Node.
type OptNode struct {
	Node  Node
	Valid bool
}

// Some wraps n as a present optional.
func Some(n Node) OptNode { return OptNode{Node: n, Valid: true} }

// None is the absent optional.
var None = OptNode{}

// Get returns the wrapped node and whether it is present.
func (o OptNode) Get() (Node, bool) { return o.Node, o.Valid }

// InvalidNodeError is the panic value raised when a Node is dereferenced
// against an arena that does not contain it.
type InvalidNodeError struct {
	Node Node
	Len  int
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("arena: %s out of range (len %d)", e.Node, e.Len)
}

// Arena is an append-only store of T addressed by Node.
//
// The backing store is a typed slice so the garbage collector traces every
// pointer held inside T.
type Arena[T any] struct {
	items []T
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// WithCapacity returns an empty arena with room for n values before growing.
func WithCapacity[T any](n int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, n)}
}

// Add appends v and returns its handle, which is the arena length before
// the append.
func (a *Arena[T]) Add(v T) Node {
	if uint64(len(a.items)) >= uint64(InvalidNode) {
		panic("arena: exceeded maximum number of nodes")
	}
	n := Node(len(a.items))
	a.items = append(a.items, v)
	return n
}

// Get returns a copy of the value stored at n.
func (a *Arena[T]) Get(n Node) T {
	a.check(n)
	return a.items[n]
}

// GetMut returns a pointer to the slot at n. The pointer is invalidated by
// the next Add, which may move the backing store.
func (a *Arena[T]) GetMut(n Node) *T {
	a.check(n)
	return &a.items[n]
}

// Replace stores v at n and returns the value previously held there. The
// slot stays populated, so n remains a valid handle.
func (a *Arena[T]) Replace(n Node, v T) T {
	a.check(n)
	old := a.items[n]
	a.items[n] = v
	return old
}

// Len returns the number of values added so far.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// IsEmpty reports whether nothing has been added.
func (a *Arena[T]) IsEmpty() bool {
	return len(a.items) == 0
}

// Contains reports whether n addresses a populated slot of a.
func (a *Arena[T]) Contains(n Node) bool {
	return n != InvalidNode && int(n) < len(a.items)
}

// Nodes yields every handle in allocation order.
func (a *Arena[T]) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for i := range a.items {
			if !yield(Node(i)) {
				return
			}
		}
	}
}

// All yields every handle with its current value in allocation order.
func (a *Arena[T]) All() iter.Seq2[Node, T] {
	return func(yield func(Node, T) bool) {
		for i, v := range a.items {
			if !yield(Node(i), v) {
				return
			}
		}
	}
}

func (a *Arena[T]) check(n Node) {
	if !a.Contains(n) {
		panic(&InvalidNodeError{Node: n, Len: len(a.items)})
	}
}
