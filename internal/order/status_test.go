package order

import (
	"testing"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_LegalMoves(t *testing.T) {
	t.Parallel()

	legal := [][2]string{
		{model.OrderStatusPending, model.OrderStatusPreparing},
		{model.OrderStatusPending, model.OrderStatusCancelled},
		{model.OrderStatusPreparing, model.OrderStatusReady},
		{model.OrderStatusPreparing, model.OrderStatusCancelled},
		{model.OrderStatusReady, model.OrderStatusCompleted},
		{model.OrderStatusReady, model.OrderStatusCancelled},
		{model.OrderStatusCompleted, model.OrderStatusRefunded},
	}
	for _, pair := range legal {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s should be legal", pair[0], pair[1])
	}
}

func TestCanTransition_IllegalMoves(t *testing.T) {
	t.Parallel()

	illegal := [][2]string{
		{model.OrderStatusPending, model.OrderStatusReady},
		{model.OrderStatusPending, model.OrderStatusCompleted},
		{model.OrderStatusPending, model.OrderStatusRefunded},
		{model.OrderStatusPreparing, model.OrderStatusPending},
		{model.OrderStatusReady, model.OrderStatusPreparing},
		{model.OrderStatusCancelled, model.OrderStatusPending},
		{model.OrderStatusCancelled, model.OrderStatusRefunded},
		{model.OrderStatusRefunded, model.OrderStatusCompleted},
		{model.OrderStatusCompleted, model.OrderStatusPending},
	}
	for _, pair := range illegal {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s should be illegal", pair[0], pair[1])
	}
}

func TestRefundedOnlyFromCompleted(t *testing.T) {
	t.Parallel()

	for _, from := range []string{
		model.OrderStatusPending,
		model.OrderStatusPreparing,
		model.OrderStatusReady,
		model.OrderStatusCancelled,
		model.OrderStatusRefunded,
	} {
		assert.False(t, CanTransition(from, model.OrderStatusRefunded), "refund from %s", from)
	}
	assert.True(t, CanTransition(model.OrderStatusCompleted, model.OrderStatusRefunded))
}

func TestValidateTransition_ReturnsConflict(t *testing.T) {
	t.Parallel()

	err := ValidateTransition(model.OrderStatusCompleted, model.OrderStatusPending)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	assert.NoError(t, ValidateTransition(model.OrderStatusPending, model.OrderStatusPreparing))
}
