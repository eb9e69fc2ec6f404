package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sellerID := kernel.NewUUID()
	trackedShipment := testTrackedShipment(t, sellerID, kernel.NewUUID(), shipment.Placed)

	cmd, err := commands.NewCancelShipmentCommand(trackedShipment.ID(), sellerID, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	codes := new(MockVerificationCodeStore)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		codes.On("Delete", ctx, trackedShipment.ID()).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
			return n.Channel == ports.ChannelEmail
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, codes, notifier, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Cancelled, trackedShipment.Status())
	shipmentRepo.AssertExpectations(t)
	codes.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_ReasonBecomesEventDescription(t *testing.T) {
	ctx := t.Context()
	sellerID := kernel.NewUUID()
	trackedShipment := testTrackedShipment(t, sellerID, kernel.NewUUID(), shipment.Placed)

	cmd, err := commands.NewCancelShipmentCommand(
		trackedShipment.ID(), sellerID, "Customer asked to cancel the order",
	)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	codes := new(MockVerificationCodeStore)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		codes.On("Delete", ctx, trackedShipment.ID()).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, codes, notifier, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	latest, err := trackedShipment.LatestEvent()
	require.NoError(t, err)
	assert.Equal(t, shipment.Cancelled, latest.Status())
	assert.Equal(t, "Customer asked to cancel the order", latest.Description())
}

func TestCancelShipmentCommandHandler_Handle_AlreadyCancelled(t *testing.T) {
	ctx := t.Context()
	sellerID := kernel.NewUUID()
	trackedShipment := testTrackedShipment(
		t, sellerID, kernel.NewUUID(), shipment.Placed, shipment.Cancelled,
	)
	eventsBefore := len(trackedShipment.Timeline())

	cmd, err := commands.NewCancelShipmentCommand(trackedShipment.ID(), sellerID, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	codes := new(MockVerificationCodeStore)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		codes.On("Delete", ctx, trackedShipment.ID()).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, codes, notifier, discardLogger())
	err = handler.Handle(ctx, cmd)

	// Cancelling twice appends another terminal event and still succeeds.
	require.NoError(t, err)
	assert.Equal(t, shipment.Cancelled, trackedShipment.Status())
	assert.Len(t, trackedShipment.Timeline(), eventsBefore+1)
}

func TestCancelShipmentCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	ctx := t.Context()
	sellerID := kernel.NewUUID()
	trackedShipment := testTrackedShipment(
		t, sellerID, kernel.NewUUID(), shipment.Placed, shipment.Delivered,
	)

	cmd, err := commands.NewCancelShipmentCommand(trackedShipment.ID(), sellerID, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(
		factory, new(MockVerificationCodeStore), new(MockNotifier), discardLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrShipmentAlreadyDelivered)
	assert.Equal(t, shipment.Delivered, trackedShipment.Status())
}

func TestCancelShipmentCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	trackedShipment := testTrackedShipment(t, kernel.NewUUID(), kernel.NewUUID(), shipment.Placed)
	strangerID := kernel.NewUUID()

	cmd, err := commands.NewCancelShipmentCommand(trackedShipment.ID(), strangerID, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, trackedShipment.ID()).Return(trackedShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(
		factory, new(MockVerificationCodeStore), new(MockNotifier), discardLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, shipment.Placed, trackedShipment.Status())
}

func TestCancelShipmentCommandHandler_Handle_ShipmentNotFound(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, kernel.NewUUID(), "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shipmentID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(
		factory, new(MockVerificationCodeStore), new(MockNotifier), discardLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
