package commands_test

import (
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkNotificationReadCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	state := newOfferedState(t, 1)
	cmd, err := commands.NewMarkNotificationReadCommand(state.offer.ID())
	require.NoError(t, err)

	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(notifications)
	uow.On("Begin", ctx).Return(nil).Once()
	notifications.On("Get", ctx, state.offer.ID()).Return(state.offer, nil).Once()
	notifications.On("Update", ctx, state.offer).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkNotificationReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, state.offer.IsRead())
	uow.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestMarkNotificationReadCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()
	cmd, err := commands.NewMarkNotificationReadCommand(missingID)
	require.NoError(t, err)

	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(notifications)
	uow.On("Begin", ctx).Return(nil).Once()
	notifications.On("Get", ctx, missingID).
		Return(nil, errs.NewObjectNotFoundError("notification", missingID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkNotificationReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
