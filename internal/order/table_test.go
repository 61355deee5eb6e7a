package order

import (
	"context"
	"errors"
	"testing"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestTableService(t *testing.T) (*TableService, *Service, *gorm.DB) {
	t.Helper()
	svc, db := newTestService(t)
	return NewTableService(db, svc.repo), svc, db
}

func placeTableOrder(t *testing.T, svc *Service, tenantID, tableID uint) *model.Order {
	t.Helper()
	o, err := svc.Create(context.Background(), staffCaller(tenantID), CreateInput{
		OrderType:    model.OrderTypeDineIn,
		TableID:      &tableID,
		CustomerName: "Walk-in",
		Items:        []ItemInput{{Name: "Chai", Price: 50, Quantity: 1}},
	})
	require.NoError(t, err)
	return o
}

func TestTableRelease_BlockedByActiveOrder(t *testing.T) {
	tables, orders, db := newTestTableService(t)
	tenant := seedTenant(t, db, 0)
	caller := staffCaller(tenant.ID)
	ctx := context.Background()

	table, err := tables.Create(ctx, caller, nil, "T1", 4)
	require.NoError(t, err)
	_, err = tables.SetStatus(ctx, caller, table.ID, model.TableStatusOccupied)
	require.NoError(t, err)

	o := placeTableOrder(t, orders, tenant.ID, table.ID)

	_, err = tables.SetStatus(ctx, caller, table.ID, model.TableStatusAvailable)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var detailed *apperr.DetailedError
	require.True(t, errors.As(err, &detailed))
	details, ok := detailed.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details["blocking_orders"], o.OrderNumber)
}

func TestTableRelease_AllowedAfterOrdersTerminal(t *testing.T) {
	tables, orders, db := newTestTableService(t)
	tenant := seedTenant(t, db, 0)
	caller := staffCaller(tenant.ID)
	ctx := context.Background()

	table, err := tables.Create(ctx, caller, nil, "T2", 2)
	require.NoError(t, err)
	o := placeTableOrder(t, orders, tenant.ID, table.ID)

	_, err = orders.Transition(ctx, caller, o.ID, model.OrderStatusCancelled)
	require.NoError(t, err)

	released, err := tables.SetStatus(ctx, caller, table.ID, model.TableStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusAvailable, released.Status)
}

func TestTableSetStatus_NonReleaseMovesUnguarded(t *testing.T) {
	tables, orders, db := newTestTableService(t)
	tenant := seedTenant(t, db, 0)
	caller := staffCaller(tenant.ID)
	ctx := context.Background()

	table, err := tables.Create(ctx, caller, nil, "T3", 6)
	require.NoError(t, err)
	placeTableOrder(t, orders, tenant.ID, table.ID)

	// Only the release to available is guarded by active orders.
	for _, status := range []string{model.TableStatusReserved, model.TableStatusOccupied} {
		got, err := tables.SetStatus(ctx, caller, table.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestTableSetStatus_Validation(t *testing.T) {
	tables, _, db := newTestTableService(t)
	tenant := seedTenant(t, db, 0)
	caller := staffCaller(tenant.ID)
	ctx := context.Background()

	table, err := tables.Create(ctx, caller, nil, "T4", 4)
	require.NoError(t, err)

	_, err = tables.SetStatus(ctx, caller, table.ID, "broken")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = tables.SetStatus(ctx, caller, table.ID+100, model.TableStatusReserved)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = tables.Create(ctx, caller, nil, "", 4)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTableSetStatus_CrossTenantHidden(t *testing.T) {
	tables, _, db := newTestTableService(t)
	tenant := seedTenant(t, db, 0)
	ctx := context.Background()

	table, err := tables.Create(ctx, staffCaller(tenant.ID), nil, "T5", 4)
	require.NoError(t, err)

	_, err = tables.SetStatus(ctx, staffCaller(tenant.ID+1), table.ID, model.TableStatusReserved)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
