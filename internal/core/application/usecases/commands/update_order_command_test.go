package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand(t *testing.T) {
	newStatus := order.InProduction

	t.Run("should create command with a status patch", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{Status: &newStatus}, "proof approved")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		require.NotNil(t, cmd.Patch().Status)
		assert.Equal(t, order.InProduction, *cmd.Patch().Status)
		assert.Equal(t, "proof approved", cmd.Note())
	})

	t.Run("should reject empty patch", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), commands.OrderPatch{}, "")

		require.ErrorIs(t, err, commands.ErrEmptyPatch)
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewUpdateOrderCommand(invalidID, commands.OrderPatch{Status: &newStatus}, "")

		require.Error(t, err)
	})

	t.Run("should reject unknown status in patch", func(t *testing.T) {
		unknown := order.Unknown

		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), commands.OrderPatch{Status: &unknown}, "")

		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.UpdateOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrUpdateOrderCommandIsNotConstructed, err)
	})
}
