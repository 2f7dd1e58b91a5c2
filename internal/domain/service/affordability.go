package service

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/valueobject"
)

// Affordability thresholds. A loan is affordable when both ratios are
// within bounds.
var (
	maxEMIPercentage = decimal.NewFromInt(40)
	maxDTIRatio      = decimal.NewFromInt(60)
)

// emiHeadroomRatio is the share of monthly income that may service debt
// when deriving the maximum affordable principal.
var emiHeadroomRatio = decimal.NewFromFloat(0.40)

// ErrInvalidTenure is returned when tenure is not a positive number of months.
var ErrInvalidTenure = errors.New("tenure must be a positive number of months")

// ErrNegativePrincipal is returned when a principal is negative.
var ErrNegativePrincipal = errors.New("principal cannot be negative")

// AffordabilityCalculator computes EMI, debt ratios and affordable
// principal headroom. It is stateless; all methods are pure.
type AffordabilityCalculator struct{}

// NewAffordabilityCalculator creates an AffordabilityCalculator.
func NewAffordabilityCalculator() *AffordabilityCalculator {
	return &AffordabilityCalculator{}
}

// ComputeEMI returns the fixed monthly installment for a reducing
// balance loan, rounded to 2 decimal places. A zero rate degenerates to
// straight-line repayment.
func (c *AffordabilityCalculator) ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Zero, ErrInvalidTenure
	}
	if principal.IsNegative() {
		return decimal.Zero, ErrNegativePrincipal
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, errors.New("annual rate cannot be negative")
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	monthlyRate, _ := annualRatePercent.Div(decimal.NewFromInt(1200)).Float64()
	compound := decimal.NewFromFloat(math.Pow(1+monthlyRate, float64(tenureMonths)))
	rate := decimal.NewFromFloat(monthlyRate)

	numerator := principal.Mul(rate).Mul(compound)
	denominator := compound.Sub(decimal.NewFromInt(1))
	return numerator.Div(denominator).Round(2), nil
}

// MaxAffordablePrincipal solves the EMI formula for the principal given
// the largest EMI the borrower can carry. Returns zero when there is no
// headroom.
func (c *AffordabilityCalculator) MaxAffordablePrincipal(maxEMI, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Zero, ErrInvalidTenure
	}
	if !maxEMI.IsPositive() {
		return decimal.Zero, nil
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return maxEMI.Mul(n).Round(2), nil
	}

	monthlyRate, _ := annualRatePercent.Div(decimal.NewFromInt(1200)).Float64()
	compound := decimal.NewFromFloat(math.Pow(1+monthlyRate, float64(tenureMonths)))
	rate := decimal.NewFromFloat(monthlyRate)

	numerator := maxEMI.Mul(compound.Sub(decimal.NewFromInt(1)))
	denominator := rate.Mul(compound)
	return numerator.Div(denominator).Round(2), nil
}

// Assess produces a full affordability report for a proposed loan.
// The EMI percentage and the DTI ratio are algebraically equal; both
// are computed, from monthly and annualized figures respectively, so
// the report can be audited either way.
func (c *AffordabilityCalculator) Assess(monthlyIncome, existingEMI, loanAmount decimal.Decimal, tenureMonths int, annualRatePercent decimal.Decimal) (valueobject.AffordabilitySnapshot, error) {
	proposedEMI, err := c.ComputeEMI(loanAmount, annualRatePercent, tenureMonths)
	if err != nil {
		return valueobject.AffordabilitySnapshot{}, err
	}

	totalEMI := existingEMI.Add(proposedEMI)

	emiPercentage := decimal.Zero
	dtiRatio := decimal.Zero
	if monthlyIncome.IsPositive() {
		hundred := decimal.NewFromInt(100)
		twelve := decimal.NewFromInt(12)
		emiPercentage = totalEMI.Div(monthlyIncome).Mul(hundred).Round(2)
		dtiRatio = totalEMI.Mul(twelve).Div(monthlyIncome.Mul(twelve)).Mul(hundred).Round(2)
	}

	maxEMIAllowed := monthlyIncome.Mul(emiHeadroomRatio).Sub(existingEMI)
	maxLoan, err := c.MaxAffordablePrincipal(maxEMIAllowed, annualRatePercent, tenureMonths)
	if err != nil {
		return valueobject.AffordabilitySnapshot{}, err
	}

	affordable := emiPercentage.LessThanOrEqual(maxEMIPercentage) && dtiRatio.LessThanOrEqual(maxDTIRatio)
	recommendation := valueobject.RecommendationApproved
	if !affordable {
		recommendation = valueobject.RecommendationConsiderLowerAmount
	}

	return valueobject.AffordabilitySnapshot{
		ProposedEMI:       proposedEMI,
		TotalEMI:          totalEMI,
		EMIPercentage:     emiPercentage,
		DTIRatio:          dtiRatio,
		MaxAffordableLoan: maxLoan,
		Affordable:        affordable,
		Recommendation:    recommendation,
	}, nil
}

// RateForScore maps a credit score to the annual interest rate tier.
// The same tiering is applied wherever a rate is derived, so a rate
// fixed at submission stays consistent with the score that produced it.
func RateForScore(creditScore int) decimal.Decimal {
	switch {
	case creditScore >= 800:
		return decimal.NewFromFloat(10.5)
	case creditScore >= 750:
		return decimal.NewFromFloat(11.5)
	case creditScore >= 700:
		return decimal.NewFromFloat(12.5)
	default:
		return decimal.NewFromFloat(14.0)
	}
}
