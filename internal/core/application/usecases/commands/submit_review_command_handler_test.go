package commands_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	trackedShipment := testTrackedShipment(
		t, kernel.NewUUID(), kernel.NewUUID(),
		shipment.Placed, shipment.OutForDelivery, shipment.Delivered,
	)

	comment := "Arrived a day early"
	cmd, err := commands.NewSubmitReviewCommand("review-token", 5, &comment)
	require.NoError(t, err)

	tokens := new(MockTokenCodec)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		tokens.On("Verify", "review-token", ports.PurposeReview).
			Return(ports.TokenClaims{
				SubjectID: trackedShipment.ID(),
				Purpose:   ports.PurposeReview,
			}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitReviewCommandHandler(factory, tokens)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, trackedShipment.Review())
	assert.Equal(t, 5, trackedShipment.Review().Rating())
	tokens.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestSubmitReviewCommandHandler_Handle_InvalidToken(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitReviewCommand("forged-token", 4, nil)
	require.NoError(t, err)

	tokens := new(MockTokenCodec)
	tokens.On("Verify", "forged-token", ports.PurposeReview).
		Return(ports.TokenClaims{}, ports.ErrTokenInvalid).Once()

	factory := new(MockShipmentUoWFactory)
	handler := commands.NewSubmitReviewCommandHandler(factory, tokens)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrTokenInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestSubmitReviewCommandHandler_Handle_NotDelivered(t *testing.T) {
	ctx := t.Context()
	trackedShipment := testTrackedShipment(
		t, kernel.NewUUID(), kernel.NewUUID(), shipment.Placed, shipment.InTransit,
	)

	cmd, err := commands.NewSubmitReviewCommand("review-token", 4, nil)
	require.NoError(t, err)

	tokens := new(MockTokenCodec)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		tokens.On("Verify", "review-token", ports.PurposeReview).
			Return(ports.TokenClaims{SubjectID: trackedShipment.ID()}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitReviewCommandHandler(factory, tokens)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrShipmentIsNotDelivered)
	assert.Nil(t, trackedShipment.Review())
}

func TestSubmitReviewCommandHandler_Handle_SecondReview(t *testing.T) {
	ctx := t.Context()
	trackedShipment := testTrackedShipment(
		t, kernel.NewUUID(), kernel.NewUUID(),
		shipment.Placed, shipment.Delivered,
	)
	existing, err := shipment.NewReview(
		kernel.NewUUID(), trackedShipment.CreatedAt().Add(96*time.Hour), 4, nil,
	)
	require.NoError(t, err)
	require.NoError(t, trackedShipment.AttachReview(existing))

	cmd, err := commands.NewSubmitReviewCommand("review-token", 1, nil)
	require.NoError(t, err)

	tokens := new(MockTokenCodec)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		tokens.On("Verify", "review-token", ports.PurposeReview).
			Return(ports.TokenClaims{SubjectID: trackedShipment.ID()}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitReviewCommandHandler(factory, tokens)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, shipment.ErrReviewAlreadyAttached)
	assert.Equal(t, existing, trackedShipment.Review())
}

func TestNewSubmitReviewCommand_Validation(t *testing.T) {
	t.Run("should fail with empty token", func(t *testing.T) {
		_, err := commands.NewSubmitReviewCommand("", 4, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrReviewTokenIsRequired)
	})

	t.Run("should fail with out-of-range rating", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			_, err := commands.NewSubmitReviewCommand("review-token", rating, nil)

			require.Error(t, err)
		}
	})
}
