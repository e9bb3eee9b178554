package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))
		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is zero", func(t *testing.T) {
		var m kernel.Money
		assert.Equal(t, "0.00", m.String())
		assert.True(t, m.IsEqual(kernel.MustMoney("0")))
	})
}

func TestMoneyFromString(t *testing.T) {
	_, err := kernel.MoneyFromString("ten")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	m, err := kernel.MoneyFromString("5")
	require.NoError(t, err)
	assert.Equal(t, "5.00", m.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MustMoney("10.00")
	fee := kernel.MustMoney("5.00")

	assert.Equal(t, "30.00", price.Times(3).String())
	assert.Equal(t, "15.00", price.Add(fee).String())
	assert.True(t, price.Add(fee).IsEqual(kernel.MustMoney("15")))
	assert.False(t, price.IsEqual(fee))
}

func TestMustMoney_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { kernel.MustMoney("-3") })
}
