package optimizer

import "github.com/google/uuid"

// SessionIDGenerator names optimizer runs for log and trace correlation.
// Implemented by UUIDv7Generator and, in tests, testutil.FixedSessionIDs.
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session ids. It is
// stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
