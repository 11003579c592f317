package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/pricing"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute_LowTierDiscount(t *testing.T) {
	q, err := pricing.Compute(decimal.NewFromInt(500), date("2025-03-01"), date("2025-03-08"))
	require.NoError(t, err)
	assert.Equal(t, 8, q.TotalDays)
	assert.True(t, decimal.NewFromInt(4000).Equal(q.BaseTotal))
	assert.True(t, decimal.NewFromFloat(0.10).Equal(q.DiscountRate))
	assert.True(t, decimal.NewFromInt(400).Equal(q.DiscountAmount))
	assert.True(t, decimal.NewFromInt(3600).Equal(q.FinalTotal))
}

func TestCompute_HighTierDiscount(t *testing.T) {
	start := date("2025-03-01")
	end := start.AddDate(0, 0, 29) // 30 inclusive days
	q, err := pricing.Compute(decimal.NewFromInt(100), start, end)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.20).Equal(q.DiscountRate))
	assert.True(t, decimal.NewFromInt(2400).Equal(q.FinalTotal))
}

func TestCompute_TierBoundaries(t *testing.T) {
	cases := []struct {
		days int
		rate decimal.Decimal
	}{
		{6, decimal.Zero},
		{7, decimal.NewFromFloat(0.10)},
		{29, decimal.NewFromFloat(0.10)},
		{30, decimal.NewFromFloat(0.20)},
	}
	start := date("2025-01-01")
	for _, c := range cases {
		end := start.AddDate(0, 0, c.days-1)
		q, err := pricing.Compute(decimal.NewFromInt(10), start, end)
		require.NoError(t, err)
		assert.Truef(t, c.rate.Equal(q.DiscountRate), "days=%d expected rate=%s got=%s", c.days, c.rate, q.DiscountRate)
	}
}

func TestCompute_InclusiveCounting(t *testing.T) {
	start := date("2025-06-01")
	for k := 1; k <= 10; k++ {
		end := start.AddDate(0, 0, k)
		q, err := pricing.Compute(decimal.NewFromInt(1), start, end)
		require.NoError(t, err)
		assert.Equal(t, k+1, q.TotalDays)
	}
}

func TestCompute_InvalidRange(t *testing.T) {
	_, err := pricing.Compute(decimal.NewFromInt(100), date("2025-03-05"), date("2025-03-05"))
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeValidation, ae.Code)

	_, err = pricing.Compute(decimal.NewFromInt(100), date("2025-03-06"), date("2025-03-05"))
	require.Error(t, err)
}

func TestCompute_DepositIndependence(t *testing.T) {
	q, err := pricing.Compute(decimal.NewFromInt(500), date("2025-03-01"), date("2025-03-08"))
	require.NoError(t, err)
	deposit := decimal.NewFromInt(500)
	displayTotal := q.FinalTotal.Add(deposit)
	assert.True(t, decimal.NewFromInt(4100).Equal(displayTotal))
	// FinalTotal itself never includes the deposit.
	assert.True(t, decimal.NewFromInt(3600).Equal(q.FinalTotal))
}

func TestCompute_DeterministicPureFunction(t *testing.T) {
	q1, err1 := pricing.Compute(decimal.NewFromInt(250), date("2025-05-01"), date("2025-05-15"))
	q2, err2 := pricing.Compute(decimal.NewFromInt(250), date("2025-05-01"), date("2025-05-15"))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, q1, q2)
}
