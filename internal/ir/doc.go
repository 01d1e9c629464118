// Package ir holds the payload types shared by the expression and plan
// representations: data types, schemas, literal values, operators and
// opaque user functions. It also owns the canonical JSON encoding and the
// domain-separated hashing used for fingerprints.
//
// ir imports nothing internal, so the expr and plan packages can both
// depend on it without cycles.
package ir
