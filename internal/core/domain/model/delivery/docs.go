// Package delivery contains the Delivery aggregate: one stop's work item
// within a route, with its lifecycle state machine and the payment,
// confirmation, admin-override and skip-request sub-records.
//
// Deliveries are chained through previousDeliveryID to form the route's
// ordered stop sequence. The chain is a logical singly-linked list threaded
// through the record store by identifier; the aggregate never holds a live
// reference to its predecessor.
package delivery
