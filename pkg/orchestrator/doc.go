// Package orchestrator wires the loader → decoder → renderer pipeline onto a
// platform, providing dependency injection friendly helpers for consumers
// that prefer a single entry point.
package orchestrator
