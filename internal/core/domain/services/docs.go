// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fleet system. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AssignmentCoordinator: fans an assignment transition out across the
//     Trip, Driver, Vehicle, and Parcel aggregates so they stay mutually
//     consistent
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
