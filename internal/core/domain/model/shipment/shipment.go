package shipment

import (
	"errors"
	"sort"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Weight bounds accepted for a shipment, unit-agnostic.
const (
	minWeight = 1.0
	maxWeight = 25.0
)

// defaultDeliveryWindow is the initial estimated-delivery horizon applied at
// submission. The estimate is mutable afterwards via the assigned partner.
const defaultDeliveryWindow = 72 * time.Hour

// Domain errors for shipment operations.
var (
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
	// ErrContentIsRequired is returned when attempting to create a shipment without a content description.
	ErrContentIsRequired = errs.NewValueIsRequiredError("content")
	// ErrCustomerEmailIsInvalid is returned when the customer contact email is missing or malformed.
	ErrCustomerEmailIsInvalid = errs.NewValueIsInvalidError("customer email")
	// ErrCreatedAtIsRequired is returned when a zero timestamp is supplied.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("created at")
	// ErrStatusIsInvalid is returned when an event carries an undefined status.
	ErrStatusIsInvalid = errs.NewValueIsInvalidError("status")
	// ErrDescriptionIsRequired is returned when an event carries no description.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
	// ErrPartnerAlreadyAssigned is returned when assigning a partner to a shipment that has one.
	// A shipment has exactly one delivery partner for its whole life.
	ErrPartnerAlreadyAssigned = errors.New("shipment already has an assigned delivery partner")
	// ErrFirstEventIsIncomplete is returned when the first timeline append omits
	// location or status. There is no prior event to inherit them from, so the
	// caller must always supply both on the first append.
	ErrFirstEventIsIncomplete = errs.NewValueIsRequiredError(
		"location and status are required for the first timeline event",
	)
	// ErrReviewAlreadyAttached is returned when attaching a second review.
	ErrReviewAlreadyAttached = errors.New("shipment already has a review")
)

// Shipment is the aggregate root of the delivery domain. It owns the
// append-only event timeline, the tag set, and the optional review, and it
// references the owning seller and the assigned delivery partner by identity.
//
// Key invariants:
//   - Weight is within [1, 25]
//   - Exactly one owning seller, set at construction
//   - Exactly one delivery partner, assigned once and never reassigned
//   - The timeline is append-only; events are immutable
//   - Current status is derived from the chronologically latest event,
//     never stored
//
// The derived status rule means concurrent or out-of-order appends cannot
// corrupt the shipment state: whichever event carries the greatest creation
// timestamp defines the status, regardless of insertion order.
type Shipment struct {
	id kernel.UUID
	// content describes what is being shipped
	content string
	// weight is unit-agnostic, bounded to [1, 25]
	weight float64
	// destination is the delivery postal area
	destination kernel.Zipcode
	// customerEmail is the required customer contact
	customerEmail string
	// customerPhone is optional; nil means SMS notifications are skipped
	customerPhone *string
	// createdAt is the UTC submission instant
	createdAt time.Time
	// estimatedDelivery is mutable via the assigned partner
	estimatedDelivery time.Time
	// sellerID references the owning seller
	sellerID kernel.UUID
	// partnerID references the assigned delivery partner; nil until assignment
	partnerID *kernel.UUID
	// timeline is the append-only event log; order of the slice is
	// insertion order, which carries no meaning
	timeline []*Event
	// tags is the ordered set of handling tags
	tags []TagName
	// review is the optional customer review, at most one
	review *Review

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment at submission time. The timeline starts
// empty; the caller appends the first Placed event after partner assignment.
// The estimated delivery defaults to createdAt plus the standard 72h window.
func NewShipment(
	id kernel.UUID,
	content string,
	weight float64,
	destination kernel.Zipcode,
	customerEmail string,
	customerPhone *string,
	sellerID kernel.UUID,
	createdAt time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setContent(content),
		shipment.setWeight(weight),
		shipment.setDestination(destination),
		shipment.setCustomerEmail(customerEmail),
		shipment.setCustomerPhone(customerPhone),
		shipment.setCreatedAt(createdAt),
		shipment.setSellerID(sellerID),
	); err != nil {
		return nil, err
	}

	shipment.estimatedDelivery = shipment.createdAt.Add(defaultDeliveryWindow)
	return shipment, nil
}

// RestoreShipment reconstructs a shipment aggregate from persistent storage,
// including its timeline, tags, and review. The restored shipment behaves
// identically to one built through normal domain operations.
func RestoreShipment(
	id kernel.UUID,
	content string,
	weight float64,
	destination kernel.Zipcode,
	customerEmail string,
	customerPhone *string,
	sellerID kernel.UUID,
	partnerID *kernel.UUID,
	createdAt time.Time,
	estimatedDelivery time.Time,
	timeline []*Event,
	tags []TagName,
	review *Review,
) (*Shipment, error) {
	shipment := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setContent(content),
		shipment.setWeight(weight),
		shipment.setDestination(destination),
		shipment.setCustomerEmail(customerEmail),
		shipment.setCustomerPhone(customerPhone),
		shipment.setCreatedAt(createdAt),
		shipment.setSellerID(sellerID),
		shipment.setEstimatedDelivery(estimatedDelivery),
		shipment.setTimeline(timeline),
		shipment.setTags(tags),
	); err != nil {
		return nil, err
	}

	if partnerID != nil {
		if err := shipment.AssignPartner(*partnerID); err != nil {
			return nil, err
		}
	}

	if review != nil {
		if err := shipment.AttachReview(review); err != nil {
			return nil, err
		}
	}

	return shipment, nil
}

// Validate checks the shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the unique identifier of the shipment.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Content returns the description of what is being shipped.
func (s *Shipment) Content() string {
	return s.content
}

// Weight returns the unit-agnostic shipment weight.
func (s *Shipment) Weight() float64 {
	return s.weight
}

// Destination returns the delivery postal area.
func (s *Shipment) Destination() kernel.Zipcode {
	return s.destination
}

// CustomerEmail returns the required customer contact address.
func (s *Shipment) CustomerEmail() string {
	return s.customerEmail
}

// CustomerPhone returns the optional customer phone number, or nil.
func (s *Shipment) CustomerPhone() *string {
	return s.customerPhone
}

// CreatedAt returns the UTC submission instant.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// EstimatedDelivery returns the current delivery estimate.
func (s *Shipment) EstimatedDelivery() time.Time {
	return s.estimatedDelivery
}

// SellerID returns the identity of the owning seller.
func (s *Shipment) SellerID() kernel.UUID {
	return s.sellerID
}

// PartnerID returns the identity of the assigned delivery partner,
// or nil if assignment has not happened yet.
func (s *Shipment) PartnerID() *kernel.UUID {
	return s.partnerID
}

// AssignPartner attaches the delivery partner chosen by the dispatcher.
// Assignment happens exactly once; reassignment is a domain error.
func (s *Shipment) AssignPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if s.partnerID != nil {
		return ErrPartnerAlreadyAssigned
	}

	s.partnerID = &partnerID
	return nil
}

// IsOwnedBy reports whether the given seller owns the shipment.
func (s *Shipment) IsOwnedBy(sellerID kernel.UUID) bool {
	return s.sellerID.IsEqual(sellerID)
}

// IsAssignedTo reports whether the given partner is the shipment's
// assigned delivery partner.
func (s *Shipment) IsAssignedTo(partnerID kernel.UUID) bool {
	return s.partnerID != nil && s.partnerID.IsEqual(partnerID)
}

// Timeline returns the shipment's events ordered by creation time.
// The returned slice is a copy; mutating it does not affect the aggregate.
func (s *Shipment) Timeline() []*Event {
	out := make([]*Event, len(s.timeline))
	copy(out, s.timeline)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out
}

// LatestEvent returns the event with the greatest creation timestamp.
// Fails with an object-not-found error when the timeline is empty.
func (s *Shipment) LatestEvent() (*Event, error) {
	if len(s.timeline) == 0 {
		return nil, errs.NewObjectNotFoundError("event", s.id.String())
	}

	latest := s.timeline[0]
	for _, event := range s.timeline[1:] {
		if !event.createdAt.Before(latest.createdAt) {
			latest = event
		}
	}
	return latest, nil
}

// Status derives the shipment's current status from its timeline: the status
// of the chronologically latest event, or Unknown when the timeline is empty.
// The status is never cached; every call re-derives it so it cannot go stale.
func (s *Shipment) Status() Status {
	latest, err := s.LatestEvent()
	if err != nil {
		return Unknown
	}
	return latest.Status()
}

// AppendEvent appends a timeline event recorded at the given instant.
// Omitted location or status (nil) is inherited from the chronologically
// latest existing event; appending to an empty timeline with an omitted
// field fails with ErrFirstEventIsIncomplete. An empty description is
// derived from the status via the fixed mapping.
func (s *Shipment) AppendEvent(
	eventID kernel.UUID,
	at time.Time,
	location *kernel.Zipcode,
	status *Status,
	description string,
) (*Event, error) {
	if location == nil || status == nil {
		latest, err := s.LatestEvent()
		if err != nil {
			return nil, ErrFirstEventIsIncomplete
		}
		if location == nil {
			loc := latest.Location()
			location = &loc
		}
		if status == nil {
			st := latest.Status()
			status = &st
		}
	}

	if description == "" {
		description = defaultDescription(*status, *location)
	}

	event, err := NewEvent(eventID, s.id, at, *location, *status, description)
	if err != nil {
		return nil, err
	}

	s.timeline = append(s.timeline, event)
	return event, nil
}

// Tags returns a copy of the shipment's handling tags in attachment order.
func (s *Shipment) Tags() []TagName {
	out := make([]TagName, len(s.tags))
	copy(out, s.tags)
	return out
}

// AddTag attaches a handling tag. Adding an already-present tag is a no-op,
// so the operation is idempotent.
func (s *Shipment) AddTag(tag TagName) error {
	if err := tag.Validate(); err != nil {
		return err
	}

	for _, existing := range s.tags {
		if existing == tag {
			return nil
		}
	}

	s.tags = append(s.tags, tag)
	return nil
}

// RemoveTag detaches a handling tag. Removing a tag that is not attached
// fails with an object-not-found error.
func (s *Shipment) RemoveTag(tag TagName) error {
	if err := tag.Validate(); err != nil {
		return err
	}

	for i, existing := range s.tags {
		if existing == tag {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("tag", tag.String())
}

// Review returns the attached customer review, or nil.
func (s *Shipment) Review() *Review {
	return s.review
}

// AttachReview attaches the customer's review. A shipment holds at most one
// review; attaching a second fails with ErrReviewAlreadyAttached.
func (s *Shipment) AttachReview(review *Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	if s.review != nil {
		return ErrReviewAlreadyAttached
	}

	s.review = review
	return nil
}

// SetEstimatedDelivery updates the delivery estimate. Estimate changes do not
// go through the timeline: they are record updates, not status events.
func (s *Shipment) SetEstimatedDelivery(estimate time.Time) error {
	return s.setEstimatedDelivery(estimate)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentIsRequired
	}
	s.content = content
	return nil
}

func (s *Shipment) setWeight(weight float64) error {
	if weight < minWeight || weight > maxWeight {
		return errs.NewValueIsOutOfRangeError("weight", weight, minWeight, maxWeight)
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setDestination(destination kernel.Zipcode) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	s.destination = destination
	return nil
}

func (s *Shipment) setCustomerEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrCustomerEmailIsInvalid
	}
	s.customerEmail = email
	return nil
}

func (s *Shipment) setCustomerPhone(phone *string) error {
	if phone != nil && *phone == "" {
		phone = nil
	}
	s.customerPhone = phone
	return nil
}

func (s *Shipment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	s.createdAt = createdAt.UTC()
	return nil
}

func (s *Shipment) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	s.sellerID = sellerID
	return nil
}

func (s *Shipment) setEstimatedDelivery(estimate time.Time) error {
	if estimate.IsZero() {
		return errs.NewValueIsRequiredError("estimated delivery")
	}
	s.estimatedDelivery = estimate.UTC()
	return nil
}

func (s *Shipment) setTimeline(timeline []*Event) error {
	for _, event := range timeline {
		if err := event.Validate(); err != nil {
			return err
		}
	}

	s.timeline = make([]*Event, len(timeline))
	copy(s.timeline, timeline)
	return nil
}

func (s *Shipment) setTags(tags []TagName) error {
	s.tags = nil
	for _, tag := range tags {
		if err := s.AddTag(tag); err != nil {
			return err
		}
	}
	return nil
}
