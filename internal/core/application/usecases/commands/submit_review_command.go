package commands

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
	ErrReviewTokenIsRequired = errors.New("review token is required")
)

// Rating bounds accepted for a review.
const (
	minReviewRating = 1
	maxReviewRating = 5
)

// SubmitReviewCommand represents a customer submitting a review through the
// signed link from the delivery notification. The token is the only
// credential: it identifies the shipment and authorizes exactly one review.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	token   string
	rating  int
	comment *string

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to submit a shipment review.
func NewSubmitReviewCommand(token string, rating int, comment *string) (SubmitReviewCommand, error) {
	command := SubmitReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setToken(token),
		command.setRating(rating),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	command.comment = comment
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// Token returns the signed review token.
func (c SubmitReviewCommand) Token() string {
	return c.token
}

// Rating returns the customer score, 1 to 5 inclusive.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the optional free-text comment.
func (c SubmitReviewCommand) Comment() *string {
	return c.comment
}

func (c *SubmitReviewCommand) setToken(token string) error {
	if token == "" {
		return ErrReviewTokenIsRequired
	}
	c.token = token
	return nil
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < minReviewRating || rating > maxReviewRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minReviewRating, maxReviewRating)
	}
	c.rating = rating
	return nil
}
