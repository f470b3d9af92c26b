package order_test

import (
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.SemRota:                   "SEM_ROTA",
		order.EmRotaAguardandoLiberacao: "EM_ROTA_AGUARDANDO_LIBERACAO",
		order.EmRota:                    "EM_ROTA",
		order.EmEntrega:                 "EM_ENTREGA",
		order.Entregue:                  "ENTREGUE",
		order.NaoEntregue:               "NAO_ENTREGUE",
		order.Unknown:                   "UNKNOWN",
		order.Status(99):                "UNKNOWN",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.SemRota, order.EmRotaAguardandoLiberacao, order.EmRota,
			order.EmEntrega, order.Entregue, order.NaoEntregue,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestStatus_Assign(t *testing.T) {
	t.Run("unrouted_order_joins_released_delivery", func(t *testing.T) {
		next, err := order.SemRota.Assign(false)

		require.NoError(t, err)
		assert.Equal(t, order.EmRota, next)
	})

	t.Run("unrouted_order_joins_delivery_awaiting_approval", func(t *testing.T) {
		next, err := order.SemRota.Assign(true)

		require.NoError(t, err)
		assert.Equal(t, order.EmRotaAguardandoLiberacao, next)
	})

	t.Run("routed_order_cannot_be_assigned_again", func(t *testing.T) {
		for _, s := range []order.Status{
			order.EmRota, order.EmRotaAguardandoLiberacao, order.EmEntrega,
			order.Entregue, order.NaoEntregue,
		} {
			_, err := s.Assign(false)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Release(t *testing.T) {
	t.Run("awaiting_order_is_released", func(t *testing.T) {
		next, err := order.EmRotaAguardandoLiberacao.Release()

		require.NoError(t, err)
		assert.Equal(t, order.EmRota, next)
	})

	t.Run("other_statuses_cannot_be_released", func(t *testing.T) {
		for _, s := range []order.Status{order.SemRota, order.EmRota, order.EmEntrega, order.Entregue} {
			_, err := s.Release()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_StartCompleteFail(t *testing.T) {
	t.Run("full_happy_path", func(t *testing.T) {
		started, err := order.EmRota.Start()
		require.NoError(t, err)
		assert.Equal(t, order.EmEntrega, started)

		done, err := started.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Entregue, done)
	})

	t.Run("failed_attempt", func(t *testing.T) {
		failed, err := order.EmEntrega.Fail()
		require.NoError(t, err)
		assert.Equal(t, order.NaoEntregue, failed)
	})

	t.Run("terminal_statuses_never_transition_again", func(t *testing.T) {
		for _, s := range []order.Status{order.Entregue, order.NaoEntregue} {
			assert.True(t, s.IsTerminal())

			_, err := s.Start()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			_, err = s.Complete()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			_, err = s.Fail()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			_, err = s.Detach()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("cannot_complete_before_starting", func(t *testing.T) {
		_, err := order.EmRota.Complete()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Detach(t *testing.T) {
	t.Run("detachable_statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.EmRota, order.EmRotaAguardandoLiberacao} {
			next, err := s.Detach()
			require.NoError(t, err)
			assert.Equal(t, order.SemRota, next)
		}
	})

	t.Run("in_progress_order_cannot_be_detached", func(t *testing.T) {
		_, err := order.EmEntrega.Detach()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_HoldForReapproval(t *testing.T) {
	t.Run("released_order_goes_back_behind_approval", func(t *testing.T) {
		next, err := order.EmRota.HoldForReapproval()

		require.NoError(t, err)
		assert.Equal(t, order.EmRotaAguardandoLiberacao, next)
	})

	t.Run("only_released_orders_can_be_held", func(t *testing.T) {
		for _, s := range []order.Status{order.SemRota, order.EmEntrega, order.Entregue} {
			_, err := s.HoldForReapproval()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}
