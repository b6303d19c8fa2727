package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceReservation(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		q := PriceReservation(1000, 4, 0.20, 0.10)
		assert.Equal(t, int32(4000), q.ChargeCents)
		assert.Equal(t, int32(800), q.DepositCents)
		assert.Equal(t, int32(400), q.TaxCents)
		assert.Equal(t, int32(5200), q.TotalCents())
	})

	t.Run("RoundsHalfUp", func(t *testing.T) {
		// 333 * 3 = 999; 999 * 0.0825 = 82.4175 -> 82
		q := PriceReservation(333, 3, 0.15, 0.0825)
		assert.Equal(t, int32(999), q.ChargeCents)
		assert.Equal(t, int32(150), q.DepositCents) // 149.85 rounds up
		assert.Equal(t, int32(82), q.TaxCents)
	})

	t.Run("ZeroRates", func(t *testing.T) {
		q := PriceReservation(2500, 2, 0, 0)
		assert.Equal(t, int32(5000), q.ChargeCents)
		assert.Equal(t, int32(0), q.DepositCents)
		assert.Equal(t, int32(0), q.TaxCents)
	})
}
