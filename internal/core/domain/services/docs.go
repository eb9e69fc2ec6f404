// Package services contains stateless domain services that coordinate
// multiple aggregates. PartnerDispatcher assigns a delivery partner to a
// submitted shipment using first-fit selection over eligible candidates.
package services
