// Package kernel provides core domain primitives shared across the fleet
// domain model.
//
// The package includes:
//   - UUID: a value object for entity identifiers with validation and comparison
//   - GeoPoint: a value object for WGS84 coordinates used by delivery destinations
//
// These primitives enforce their own invariants and are immutable and
// thread-safe, keeping aggregates free of primitive-validation concerns.
package kernel
