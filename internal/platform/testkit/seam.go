package testkit

import (
	"sync"
	"testing"
)

// seams guards package-level variables that tests replace
var seams sync.Mutex

// Swap sets *target to replacement until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process-wide lock for the rest of the test.
// Call it before Swap in tests that replace clocks or id generators
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
