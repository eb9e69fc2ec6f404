// Package sellerrepo provides data transfer objects and mapping functions
// for seller persistence.
package sellerrepo

import (
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// SellerDTO represents the database structure for persisting seller
// aggregates.
type SellerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Zipcode       string    `gorm:"type:varchar(16);not null"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for sellers.
func (SellerDTO) TableName() string {
	return "sellers"
}

// fromDomain converts a seller aggregate to its database representation.
func fromDomain(seller *account.Seller) SellerDTO {
	return SellerDTO{
		ID:            seller.ID().Bytes(),
		Name:          seller.Name(),
		Zipcode:       seller.Zipcode().String(),
		Email:         seller.Credentials().Email(),
		PasswordHash:  seller.Credentials().PasswordHash(),
		EmailVerified: seller.EmailVerified(),
	}
}

// toDomain converts a database DTO to a seller aggregate.
func toDomain(dto SellerDTO) (*account.Seller, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zipcode, err := kernel.NewZipcode(dto.Zipcode)
	if err != nil {
		return nil, err
	}

	credentials, err := account.NewCredentials(dto.Email, dto.PasswordHash)
	if err != nil {
		return nil, err
	}

	return account.RestoreSeller(id, dto.Name, zipcode, credentials, dto.EmailVerified)
}
