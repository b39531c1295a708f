package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid identifier", func(t *testing.T) {
		orderID := kernel.NewUUID()
		q, err := queries.NewGetOrderQuery(orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, q.OrderID())
		assert.NoError(t, q.Validate())
	})

	t.Run("zero identifier", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.GetOrderQuery
		assert.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("without status filter", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(nil, 50)
		require.NoError(t, err)
		assert.Nil(t, q.Status())
		assert.Equal(t, 50, q.Limit())
		assert.NoError(t, q.Validate())
	})

	t.Run("with status filter", func(t *testing.T) {
		status := order.InProduction
		q, err := queries.NewListOrdersQuery(&status, 25)
		require.NoError(t, err)
		require.NotNil(t, q.Status())
		assert.Equal(t, order.InProduction, *q.Status())
	})

	t.Run("unknown status filter", func(t *testing.T) {
		status := order.Unknown
		_, err := queries.NewListOrdersQuery(&status, 25)
		require.Error(t, err)
	})

	t.Run("zero limit", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(nil, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("limit above cap", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(nil, 501)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.ListOrdersQuery
		assert.ErrorIs(t, q.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}
