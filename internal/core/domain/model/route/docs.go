// Package route contains the Route aggregate: the ordered stop list assigned
// to one courier, the progress cursor over its active stops, and the
// route-wide admin override.
package route
