// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence. The partner row stores the declared
// serviceable zipcodes as a text array; the active shipment count is never
// stored and is recomputed from the shipments table on every load.
package partnerrepo

import (
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates. CreatedAt orders candidates during dispatch and is
// filled by GORM on insert.
type PartnerDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Email               string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash        string         `gorm:"type:varchar(255);not null"`
	ServiceableZipcodes pq.StringArray `gorm:"type:text[];not null"`
	MaxCapacity         int            `gorm:"type:int;not null"`
	EmailVerified       bool           `gorm:"not null;default:false"`
	CreatedAt           time.Time
}

// TableName specifies the database table name for delivery partners.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a delivery partner aggregate to its database
// representation. The active shipment count is derived state and is not
// mapped.
func fromDomain(partner *account.DeliveryPartner) PartnerDTO {
	zipcodes := make(pq.StringArray, 0, len(partner.ServiceableZipcodes()))
	for _, zipcode := range partner.ServiceableZipcodes() {
		zipcodes = append(zipcodes, zipcode.String())
	}

	return PartnerDTO{
		ID:                  partner.ID().Bytes(),
		Name:                partner.Name(),
		Email:               partner.Credentials().Email(),
		PasswordHash:        partner.Credentials().PasswordHash(),
		ServiceableZipcodes: zipcodes,
		MaxCapacity:         partner.MaxCapacity(),
		EmailVerified:       partner.EmailVerified(),
	}
}

// toDomain converts a database DTO to a delivery partner aggregate.
// activeShipments is the count of live assignments computed by the caller.
func toDomain(dto PartnerDTO, activeShipments int) (*account.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	credentials, err := account.NewCredentials(dto.Email, dto.PasswordHash)
	if err != nil {
		return nil, err
	}

	zipcodes := make([]kernel.Zipcode, 0, len(dto.ServiceableZipcodes))
	for _, code := range dto.ServiceableZipcodes {
		zipcode, zipErr := kernel.NewZipcode(code)
		if zipErr != nil {
			return nil, zipErr
		}
		zipcodes = append(zipcodes, zipcode)
	}

	return account.RestoreDeliveryPartner(
		id,
		dto.Name,
		credentials,
		zipcodes,
		dto.MaxCapacity,
		activeShipments,
		dto.EmailVerified,
	)
}
