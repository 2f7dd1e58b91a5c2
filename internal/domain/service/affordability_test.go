package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/domain/valueobject"
)

func TestComputeEMI(t *testing.T) {
	calc := NewAffordabilityCalculator()

	t.Run("standard reducing balance", func(t *testing.T) {
		// 100000 at 12% for 12 months is the textbook 8884.88.
		emi, err := calc.ComputeEMI(decimal.NewFromInt(100000), decimal.NewFromInt(12), 12)
		require.NoError(t, err)
		assert.True(t, emi.Equal(decimal.NewFromFloat(8884.88)), "got %s", emi)
	})

	t.Run("zero rate is straight line", func(t *testing.T) {
		emi, err := calc.ComputeEMI(decimal.NewFromInt(100000), decimal.Zero, 12)
		require.NoError(t, err)
		assert.True(t, emi.Equal(decimal.NewFromFloat(8333.33)), "got %s", emi)
	})

	t.Run("zero principal", func(t *testing.T) {
		emi, err := calc.ComputeEMI(decimal.Zero, decimal.NewFromFloat(11.5), 36)
		require.NoError(t, err)
		assert.True(t, emi.IsZero())
	})

	t.Run("invalid tenure", func(t *testing.T) {
		_, err := calc.ComputeEMI(decimal.NewFromInt(1000), decimal.NewFromInt(10), 0)
		assert.ErrorIs(t, err, ErrInvalidTenure)

		_, err = calc.ComputeEMI(decimal.NewFromInt(1000), decimal.NewFromInt(10), -6)
		assert.ErrorIs(t, err, ErrInvalidTenure)
	})

	t.Run("negative principal", func(t *testing.T) {
		_, err := calc.ComputeEMI(decimal.NewFromInt(-1), decimal.NewFromInt(10), 12)
		assert.ErrorIs(t, err, ErrNegativePrincipal)
	})
}

func TestMaxAffordablePrincipal_InvertsComputeEMI(t *testing.T) {
	calc := NewAffordabilityCalculator()
	rate := decimal.NewFromFloat(11.5)

	principal, err := calc.MaxAffordablePrincipal(decimal.NewFromInt(10000), rate, 36)
	require.NoError(t, err)
	require.True(t, principal.IsPositive())

	emi, err := calc.ComputeEMI(principal, rate, 36)
	require.NoError(t, err)

	// Rounding in both directions keeps the round trip within a rupee.
	diff := emi.Sub(decimal.NewFromInt(10000)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "round trip diff %s", diff)
}

func TestMaxAffordablePrincipal_NoHeadroom(t *testing.T) {
	calc := NewAffordabilityCalculator()

	principal, err := calc.MaxAffordablePrincipal(decimal.Zero, decimal.NewFromFloat(11.5), 36)
	require.NoError(t, err)
	assert.True(t, principal.IsZero())

	principal, err = calc.MaxAffordablePrincipal(decimal.NewFromInt(-5000), decimal.NewFromFloat(11.5), 36)
	require.NoError(t, err)
	assert.True(t, principal.IsZero())
}

func TestAssess(t *testing.T) {
	calc := NewAffordabilityCalculator()
	rate := decimal.NewFromFloat(11.5)

	t.Run("comfortably affordable", func(t *testing.T) {
		report, err := calc.Assess(decimal.NewFromInt(80000), decimal.Zero, decimal.NewFromInt(250000), 36, rate)
		require.NoError(t, err)

		assert.True(t, report.Affordable)
		assert.Equal(t, valueobject.RecommendationApproved, report.Recommendation)
		assert.True(t, report.EMIPercentage.LessThanOrEqual(maxEMIPercentage))
		// Both ratios are the same quantity computed two ways.
		assert.True(t, report.EMIPercentage.Equal(report.DTIRatio))
		assert.True(t, report.MaxAffordableLoan.GreaterThan(decimal.NewFromInt(250000)))
	})

	t.Run("emi percentage over threshold", func(t *testing.T) {
		report, err := calc.Assess(decimal.NewFromInt(20000), decimal.Zero, decimal.NewFromInt(250000), 36, rate)
		require.NoError(t, err)

		assert.False(t, report.Affordable)
		assert.Equal(t, valueobject.RecommendationConsiderLowerAmount, report.Recommendation)
		assert.True(t, report.EMIPercentage.GreaterThan(maxEMIPercentage))
		assert.True(t, report.MaxAffordableLoan.IsPositive())
		assert.True(t, report.MaxAffordableLoan.LessThan(decimal.NewFromInt(250000)))
	})

	t.Run("existing emi consumes headroom", func(t *testing.T) {
		clean, err := calc.Assess(decimal.NewFromInt(50000), decimal.Zero, decimal.NewFromInt(300000), 36, rate)
		require.NoError(t, err)
		burdened, err := calc.Assess(decimal.NewFromInt(50000), decimal.NewFromInt(15000), decimal.NewFromInt(300000), 36, rate)
		require.NoError(t, err)

		assert.True(t, burdened.EMIPercentage.GreaterThan(clean.EMIPercentage))
		assert.True(t, burdened.MaxAffordableLoan.LessThan(clean.MaxAffordableLoan))
	})

	t.Run("zero income guards division", func(t *testing.T) {
		report, err := calc.Assess(decimal.Zero, decimal.Zero, decimal.NewFromInt(100000), 36, rate)
		require.NoError(t, err)
		assert.True(t, report.EMIPercentage.IsZero())
		assert.True(t, report.DTIRatio.IsZero())
		assert.True(t, report.MaxAffordableLoan.IsZero())
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := calc.Assess(decimal.NewFromInt(60000), decimal.NewFromInt(5000), decimal.NewFromInt(400000), 48, rate)
		require.NoError(t, err)
		b, err := calc.Assess(decimal.NewFromInt(60000), decimal.NewFromInt(5000), decimal.NewFromInt(400000), 48, rate)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestRateForScore(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{850, 10.5},
		{800, 10.5},
		{799, 11.5},
		{750, 11.5},
		{749, 12.5},
		{700, 12.5},
		{699, 14.0},
		{300, 14.0},
	}
	for _, tt := range tests {
		got := RateForScore(tt.score)
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "score %d: got %s", tt.score, got)
	}
}
