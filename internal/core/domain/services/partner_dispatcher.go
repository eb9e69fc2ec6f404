package services

import (
	"errors"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrNoPartnerAvailable is returned when no delivery partner can take a
// shipment: either none serves the destination, or every eligible partner is
// at capacity.
var ErrNoPartnerAvailable = errors.New("no delivery partner available")

// PartnerDispatcher is a domain service that assigns a delivery partner to a
// freshly submitted shipment.
//
// Selection is first-fit over the candidate list: the first partner that
// serves the destination and has free capacity wins. The repository is
// expected to load candidates under row locks and in a stable order, so two
// concurrent submissions cannot both count the last free slot of the same
// partner.
type PartnerDispatcher struct{}

// NewPartnerDispatcher creates a new PartnerDispatcher instance.
func NewPartnerDispatcher() PartnerDispatcher {
	return PartnerDispatcher{}
}

// Dispatch picks the first eligible partner and assigns the shipment to it.
// Fails with ErrNoPartnerAvailable when no candidate can accept the shipment.
func (d PartnerDispatcher) Dispatch(
	s *shipment.Shipment,
	candidates []*account.DeliveryPartner,
) (*account.DeliveryPartner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	partner, err := d.findFirstEligible(s.Destination(), candidates)
	if err != nil {
		return nil, err
	}

	if err := s.AssignPartner(partner.ID()); err != nil {
		return nil, err
	}

	return partner, nil
}

func (d PartnerDispatcher) findFirstEligible(
	destination kernel.Zipcode,
	candidates []*account.DeliveryPartner,
) (*account.DeliveryPartner, error) {
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if candidate.CanAccept(destination) {
			return candidate, nil
		}
	}

	return nil, ErrNoPartnerAvailable
}
