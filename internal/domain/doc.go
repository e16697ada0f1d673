// Package domain contains the core domain entities and value objects for
// padstream.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (serial I/O, logging, scheduling)
// and contains only the controller-state data model and pure merge logic.
//
// # Entities
//
//   - [Frame]: One immutable sample of controller state (buttons, axes, dpad)
//   - [Combine]: The merge rule for frames produced by concurrent sources
//
// # Design Principles
//
// Domain entities are:
//   - Immutable value types (copied, never mutated in place)
//   - Free of infrastructure dependencies
//   - Focused on invariants: 10 buttons, 6 axes in [-1, 1], dpad in {-1, 0, 1}
//   - Testable without mocks or external systems
package domain
