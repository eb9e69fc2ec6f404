package account

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for account operations.
var (
	// ErrNameIsRequired is returned when attempting to create an account without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrSellerIsNotConstructed is returned when using an improperly initialized Seller.
	ErrSellerIsNotConstructed = errors.New("Seller must be created via NewSeller constructor")
	// ErrEmailAlreadyVerified is returned when verifying an already verified account.
	ErrEmailAlreadyVerified = errors.New("email is already verified")
)

// Seller is a merchant account that submits shipments. Sellers own their
// shipments exclusively: tracking is public, but every mutation of a shipment
// is gated on the caller being its owning seller.
//
// A freshly registered seller is unverified; it cannot log in until the
// emailed verification link is followed.
type Seller struct {
	id kernel.UUID
	// name is the merchant's display name
	name string
	// zipcode is the seller's origin postal area, used as the location of
	// the first timeline event of each shipment
	zipcode kernel.Zipcode
	// credentials is the login identity
	credentials Credentials
	// emailVerified gates login
	emailVerified bool

	guard guard.ConstructorGuard
}

// NewSeller creates an unverified seller account at registration time.
func NewSeller(
	id kernel.UUID,
	name string,
	zipcode kernel.Zipcode,
	credentials Credentials,
) (*Seller, error) {
	seller := &Seller{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		seller.setID(id),
		seller.setName(name),
		seller.setZipcode(zipcode),
		seller.setCredentials(credentials),
	); err != nil {
		return nil, err
	}

	return seller, nil
}

// RestoreSeller reconstructs a seller account from persistent storage.
func RestoreSeller(
	id kernel.UUID,
	name string,
	zipcode kernel.Zipcode,
	credentials Credentials,
	emailVerified bool,
) (*Seller, error) {
	seller, err := NewSeller(id, name, zipcode, credentials)
	if err != nil {
		return nil, err
	}

	seller.emailVerified = emailVerified
	return seller, nil
}

// Validate checks the seller was properly constructed.
func (s *Seller) Validate() error {
	if s == nil {
		return ErrSellerIsNotConstructed
	}
	return s.guard.Validate(ErrSellerIsNotConstructed)
}

// ID returns the unique identifier of the seller.
func (s *Seller) ID() kernel.UUID {
	return s.id
}

// Name returns the merchant's display name.
func (s *Seller) Name() string {
	return s.name
}

// Zipcode returns the seller's origin postal area.
func (s *Seller) Zipcode() kernel.Zipcode {
	return s.zipcode
}

// Credentials returns the seller's login identity.
func (s *Seller) Credentials() Credentials {
	return s.credentials
}

// EmailVerified reports whether the seller completed email verification.
func (s *Seller) EmailVerified() bool {
	return s.emailVerified
}

// VerifyEmail marks the seller's email as verified.
// Verifying twice is a domain error so spent links fail loudly.
func (s *Seller) VerifyEmail() error {
	if s.emailVerified {
		return ErrEmailAlreadyVerified
	}

	s.emailVerified = true
	return nil
}

func (s *Seller) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Seller) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

// setZipcode stores the seller's origin. Registration does not require an
// address; the zero value falls back to the unknown-location sentinel so the
// first timeline event of a shipment always carries a location.
func (s *Seller) setZipcode(zipcode kernel.Zipcode) error {
	if zipcode.Validate() != nil {
		zipcode = kernel.UnknownZipcode
	}
	s.zipcode = zipcode
	return nil
}

func (s *Seller) setCredentials(credentials Credentials) error {
	if err := credentials.Validate(); err != nil {
		return err
	}
	s.credentials = credentials
	return nil
}
