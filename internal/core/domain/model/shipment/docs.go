// Package shipment contains the Shipment aggregate and its entities.
//
// A shipment is submitted by a seller, assigned to exactly one delivery
// partner, and tracked through an append-only timeline of immutable events.
// The shipment's current status is never stored: it is derived from the
// chronologically latest event, so out-of-order appends cannot corrupt it.
// The aggregate also owns the handling tag set and the optional customer
// review.
package shipment
