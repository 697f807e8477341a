// Package internal contains the core implementation packages of the
// component engine.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing all
// the functionality behind the editing surface and the preview tooling.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - dom: HTML tree primitives, inline-style handling, and the host
//     editor capability surface
//   - types: component definition and property schema value types
//   - registry: definition registry, named style sets, and catalog markup
//   - placement: the drop-permission decision procedure
//   - instance: instantiation, slot auto-fill, and property binding
//   - panel: properties panel rendering and the generic style editor
//   - dragdrop: the drag gesture state machine and insertion indicator
//   - session: per-session wiring of all of the above
//   - catalog: the built-in component definitions
//   - config: configuration management with validation
//   - preview: the live preview server and style file watcher
//
// # Inter-Package Communication
//
// Packages communicate through the value types defined in dom and types;
// the session package is the only one that knows the full wiring. All
// instance state lives in the document tree itself, never in package state,
// so independent sessions can coexist in one process.
//
// # Testing Strategy
//
// Each package includes unit tests for its public surface; the session
// package carries the cross-package scenario tests. Property-based tests
// behind the property build tag cover registration uniqueness, property
// round-trips, and placement rule ordering.
package internal
