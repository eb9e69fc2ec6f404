package partnerrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM delivery partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *account.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing delivery partner.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *account.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                 dto.Name,
			"serviceable_zipcodes": dto.ServiceableZipcodes,
			"max_capacity":         dto.MaxCapacity,
			"email_verified":       dto.EmailVerified,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery partner by ID with its current active
// shipment count.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*account.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetByEmail retrieves a delivery partner by its login email.
func (r *GormPartnerRepository) GetByEmail(ctx context.Context, email string) (*account.DeliveryPartner, error) {
	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", email)
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetCandidatesForDestination retrieves verified partners serving the
// destination zipcode, oldest registration first. Candidate rows are
// locked until the surrounding transaction ends so concurrent dispatches
// serialize on the same candidate set and cannot oversubscribe capacity.
func (r *GormPartnerRepository) GetCandidatesForDestination(
	ctx context.Context,
	destination kernel.Zipcode,
) ([]*account.DeliveryPartner, error) {
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	var dtos []PartnerDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email_verified AND ? = ANY(serviceable_zipcodes)", destination.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	partners := make([]*account.DeliveryPartner, 0, len(dtos))
	for _, dto := range dtos {
		partner, restoreErr := r.restore(ctx, dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		partners = append(partners, partner)
	}

	return partners, nil
}

// restore converts a row to a domain aggregate, computing the partner's
// active shipment count from the shipments table.
func (r *GormPartnerRepository) restore(ctx context.Context, dto PartnerDTO) (*account.DeliveryPartner, error) {
	active, err := r.activeShipmentCount(ctx, dto)
	if err != nil {
		return nil, err
	}

	partner, err := toDomain(dto, active)
	if err != nil {
		return nil, err
	}

	return partner, nil
}

// activeShipmentCount counts shipments assigned to the partner whose
// derived status is not terminal. Terminal shipments free capacity.
func (r *GormPartnerRepository) activeShipmentCount(ctx context.Context, dto PartnerDTO) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM shipments s
		LEFT JOIN LATERAL (
			SELECT status
			FROM shipment_events
			WHERE shipment_id = s.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) e ON TRUE
		WHERE s.partner_id = ?
			AND COALESCE(e.status, 'unknown') NOT IN (?, ?)
	`, dto.ID, shipment.Delivered.String(), shipment.Cancelled.String()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
