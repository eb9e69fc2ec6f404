package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the delivery state recorded by a timeline event.
// A shipment itself never stores a status: its current status is always
// derived from the chronologically latest event in its timeline.
//
// Progression under normal operation:
//
//	Placed ──> InTransit ──> OutForDelivery ──> Delivered (terminal)
//	   │            │               │
//	   └────────────┴───────────────┴──> Cancelled (terminal)
//
// Only the Delivered transition is hard-gated (verification code); the
// remaining ordering is advisory and is not enforced by the domain.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and is also
	// the derived status of a shipment with an empty timeline.
	Unknown Status = iota

	// Placed is recorded when a shipment is submitted and a delivery
	// partner has been assigned, before pickup.
	Placed

	// InTransit is recorded at intermediate scan points. Events with this
	// status are silent: they trigger no customer notification.
	InTransit

	// OutForDelivery is recorded when the partner starts the final leg.
	// Recording it mints the verification code required for delivery.
	OutForDelivery

	// Delivered is the successful terminal status. Entering it requires
	// the customer's verification code.
	Delivered

	// Cancelled is the terminal status reached when the owning seller
	// cancels the shipment.
	Cancelled
)

// statusNames maps statuses to their persisted wire names.
var statusNames = map[Status]string{
	Placed:         "placed",
	InTransit:      "in transit",
	OutForDelivery: "out for delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// String returns the persisted name of the status, or "unknown" for
// unrecognized values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the status is one of the defined lifecycle statuses.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether the status ends the shipment lifecycle.
// A shipment whose latest event is terminal no longer occupies partner
// capacity.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// StatusFromString parses a persisted status name back to its Status value.
// Returns an error for names that do not correspond to a defined status.
func StatusFromString(name string) (Status, error) {
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("unknown status name: %q", name),
	)
}
