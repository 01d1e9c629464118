package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSessionIDs_Sequence(t *testing.T) {
	gen := NewFixedSessionIDs("run")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())

	gen.Reset()
	assert.Equal(t, "run-1", gen.Generate())
}

func TestFixedSessionIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "session-1", NewFixedSessionIDs("").Generate())
}

func TestFixedSessionIDs_ThreadSafe(t *testing.T) {
	gen := NewFixedSessionIDs("p")

	var wg sync.WaitGroup
	seen := make(chan string, 1000)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				seen <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 1000, "every id is distinct")
}

func TestFixtures(t *testing.T) {
	tables := Tables()
	assert.Equal(t, 3, tables["people"].Height())
	assert.Equal(t, []string{"order_id", "person_id", "total"}, tables["orders"].Schema().Names())
}
