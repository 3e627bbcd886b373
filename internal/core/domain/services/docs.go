// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch engine. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Geospatial functions: great-circle distance, geofence checks, corridor
//     distance and deviation grading
//   - SequentialEnforcer: the sequencing gate applied before stop actions
//   - RoutePlanner: greedy nearest-neighbor stop ordering
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
