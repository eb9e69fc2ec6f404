package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Rating bounds for customer reviews.
const (
	minRating = 1
	maxRating = 5
)

// ErrReviewIsNotConstructed is returned when using a Review that was not
// created via NewReview or RestoreReview.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is the customer's rating of a delivered shipment. A shipment holds
// at most one review, submitted through a single-use signed link.
type Review struct {
	id        kernel.UUID
	createdAt time.Time
	// rating is the customer score, 1 to 5 inclusive
	rating int
	// comment is optional free text; nil means none was given
	comment *string

	guard guard.ConstructorGuard
}

// NewReview creates a review with a validated rating.
// Comment may be nil; an empty string is normalized to nil.
func NewReview(id kernel.UUID, createdAt time.Time, rating int, comment *string) (*Review, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, ErrCreatedAtIsRequired
	}
	if rating < minRating || rating > maxRating {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	if comment != nil && *comment == "" {
		comment = nil
	}

	return &Review{
		id:        id,
		createdAt: createdAt.UTC(),
		rating:    rating,
		comment:   comment,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreReview reconstructs a review from persistent storage.
func RestoreReview(id kernel.UUID, createdAt time.Time, rating int, comment *string) (*Review, error) {
	return NewReview(id, createdAt, rating, comment)
}

// Validate checks the review was properly constructed.
func (r *Review) Validate() error {
	if r == nil {
		return ErrReviewIsNotConstructed
	}
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

// ID returns the unique identifier of the review.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// CreatedAt returns the UTC instant the review was submitted.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}

// Rating returns the customer score, 1 to 5 inclusive.
func (r *Review) Rating() int {
	return r.rating
}

// Comment returns the optional free-text comment, or nil.
func (r *Review) Comment() *string {
	return r.comment
}
