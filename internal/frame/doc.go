// Package frame provides the in-memory tables that data frame scans carry,
// and a SQLite-backed catalog that loads them by name.
//
// Frames are deliberately simple: a column is a slice of ir.Value. They
// exist so plans can hold real payloads; query execution lives elsewhere.
package frame
