package queries_test

import (
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/queries"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveDeliveriesQuery_Valid(t *testing.T) {
	tenantID := kernel.NewUUID()

	query, err := queries.NewGetActiveDeliveriesQuery(tenantID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, query.TenantID().IsEqual(tenantID))
}

func TestNewGetActiveDeliveriesQuery_RequiresTenant(t *testing.T) {
	_, err := queries.NewGetActiveDeliveriesQuery(kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetActiveDeliveriesQuery_NotConstructedViaConstructor(t *testing.T) {
	var query queries.GetActiveDeliveriesQuery

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func TestNewGetPendingApprovalsQuery_Valid(t *testing.T) {
	tenantID := kernel.NewUUID()

	query, err := queries.NewGetPendingApprovalsQuery(tenantID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, query.TenantID().IsEqual(tenantID))
}

func TestNewGetPendingApprovalsQuery_RequiresTenant(t *testing.T) {
	_, err := queries.NewGetPendingApprovalsQuery(kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetPendingApprovalsQuery_NotConstructedViaConstructor(t *testing.T) {
	var query queries.GetPendingApprovalsQuery

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetPendingApprovalsQueryIsNotConstructed)
}
