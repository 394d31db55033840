//go:build race

package testutil

// Race is true when the binary was built with -race, the same flag
// ShouldNotAllocate uses to skip allocation assertions (the race
// detector's instrumentation itself allocates).
const Race = true
