// Package courier provides the Courier aggregate: the rider identity plus the
// last position the rider's app reported. The position feed drives the route
// deviation monitor and arrival estimates.
//
// Key business rules:
//   - Couriers must have a valid unique identifier, a name and a phone number
//   - Position reports never move backwards in time; a stale report is ignored
//   - Average speed is a per-courier tuning knob used only for estimates
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
