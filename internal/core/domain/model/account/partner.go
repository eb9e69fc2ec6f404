package account

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for delivery partner operations.
var (
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized DeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner constructor")
	// ErrServiceableZipcodesAreRequired is returned when a partner declares no serviceable areas.
	ErrServiceableZipcodesAreRequired = errs.NewValueIsRequiredError("serviceable zipcodes")
)

// DeliveryPartner is a carrier account that shipments are dispatched to.
// A partner declares the postal areas it serves and the number of shipments
// it can carry at once.
//
// Capacity accounting: a shipment occupies capacity from assignment until its
// derived status turns terminal (delivered or cancelled). The active count is
// not stored on the partner row; it is computed from the shipments table when
// the aggregate is restored, so it can never drift from the timeline truth.
type DeliveryPartner struct {
	id kernel.UUID
	// name is the carrier's display name
	name string
	// credentials is the login identity
	credentials Credentials
	// serviceableZipcodes are the postal areas this partner delivers to
	serviceableZipcodes []kernel.Zipcode
	// maxCapacity is the number of shipments the partner carries at once;
	// zero means the partner accepts no new work
	maxCapacity int
	// activeShipments is the restored count of non-terminal assigned
	// shipments; always zero for a fresh registration
	activeShipments int
	// emailVerified gates login
	emailVerified bool

	guard guard.ConstructorGuard
}

// NewDeliveryPartner creates an unverified partner account at registration
// time. A new partner carries no shipments.
func NewDeliveryPartner(
	id kernel.UUID,
	name string,
	credentials Credentials,
	serviceableZipcodes []kernel.Zipcode,
	maxCapacity int,
) (*DeliveryPartner, error) {
	partner := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setCredentials(credentials),
		partner.setServiceableZipcodes(serviceableZipcodes),
		partner.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	return partner, nil
}

// RestoreDeliveryPartner reconstructs a partner account from persistent
// storage. activeShipments is the count of the partner's assigned shipments
// whose derived status is not terminal, computed by the repository at load
// time.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name string,
	credentials Credentials,
	serviceableZipcodes []kernel.Zipcode,
	maxCapacity int,
	activeShipments int,
	emailVerified bool,
) (*DeliveryPartner, error) {
	partner, err := NewDeliveryPartner(id, name, credentials, serviceableZipcodes, maxCapacity)
	if err != nil {
		return nil, err
	}

	if activeShipments < 0 {
		return nil, errs.NewValueIsInvalidError("active shipments")
	}

	partner.activeShipments = activeShipments
	partner.emailVerified = emailVerified
	return partner, nil
}

// Validate checks the partner was properly constructed.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// ID returns the unique identifier of the partner.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the carrier's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Credentials returns the partner's login identity.
func (p *DeliveryPartner) Credentials() Credentials {
	return p.credentials
}

// ServiceableZipcodes returns a copy of the partner's declared service areas.
func (p *DeliveryPartner) ServiceableZipcodes() []kernel.Zipcode {
	out := make([]kernel.Zipcode, len(p.serviceableZipcodes))
	copy(out, p.serviceableZipcodes)
	return out
}

// MaxCapacity returns the number of shipments the partner carries at once.
func (p *DeliveryPartner) MaxCapacity() int {
	return p.maxCapacity
}

// ActiveShipments returns the count of assigned non-terminal shipments at
// the time the aggregate was loaded.
func (p *DeliveryPartner) ActiveShipments() int {
	return p.activeShipments
}

// AvailableCapacity returns how many more shipments the partner can accept.
func (p *DeliveryPartner) AvailableCapacity() int {
	free := p.maxCapacity - p.activeShipments
	if free < 0 {
		return 0
	}
	return free
}

// CanServe reports whether the destination lies in one of the partner's
// declared service areas.
func (p *DeliveryPartner) CanServe(destination kernel.Zipcode) bool {
	for _, zipcode := range p.serviceableZipcodes {
		if zipcode.IsEqual(destination) {
			return true
		}
	}
	return false
}

// CanAccept reports whether the partner can take a shipment to the given
// destination: the destination must be serviceable and free capacity must
// remain.
func (p *DeliveryPartner) CanAccept(destination kernel.Zipcode) bool {
	return p.CanServe(destination) && p.AvailableCapacity() > 0
}

// EmailVerified reports whether the partner completed email verification.
func (p *DeliveryPartner) EmailVerified() bool {
	return p.emailVerified
}

// VerifyEmail marks the partner's email as verified.
// Verifying twice is a domain error so spent links fail loudly.
func (p *DeliveryPartner) VerifyEmail() error {
	if p.emailVerified {
		return ErrEmailAlreadyVerified
	}

	p.emailVerified = true
	return nil
}

// UpdateServiceableZipcodes replaces the partner's declared service areas.
func (p *DeliveryPartner) UpdateServiceableZipcodes(zipcodes []kernel.Zipcode) error {
	return p.setServiceableZipcodes(zipcodes)
}

// UpdateMaxCapacity changes the partner's concurrent shipment limit.
// Lowering it below the current active count is allowed; the partner simply
// accepts no new shipments until enough of them reach a terminal status.
func (p *DeliveryPartner) UpdateMaxCapacity(maxCapacity int) error {
	return p.setMaxCapacity(maxCapacity)
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setCredentials(credentials Credentials) error {
	if err := credentials.Validate(); err != nil {
		return err
	}
	p.credentials = credentials
	return nil
}

func (p *DeliveryPartner) setServiceableZipcodes(zipcodes []kernel.Zipcode) error {
	if len(zipcodes) == 0 {
		return ErrServiceableZipcodesAreRequired
	}

	for _, zipcode := range zipcodes {
		if err := zipcode.Validate(); err != nil {
			return err
		}
	}

	p.serviceableZipcodes = make([]kernel.Zipcode, len(zipcodes))
	copy(p.serviceableZipcodes, zipcodes)
	return nil
}

func (p *DeliveryPartner) setMaxCapacity(maxCapacity int) error {
	if maxCapacity < 0 {
		return errs.NewValueIsOutOfRangeError("max capacity", maxCapacity, 0, "unbounded")
	}
	p.maxCapacity = maxCapacity
	return nil
}
