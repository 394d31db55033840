//go:build !race

package testutil

// Race is false in ordinary (non -race) test runs.
const Race = false
