// Package deviation contains the record written when a courier strays from
// the planned route corridor, with its severity tier and the dispatcher's
// review outcome.
package deviation
