package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

const (
	// creditScoreFloor is the minimum score below which every request
	// is rejected outright.
	creditScoreFloor = 700
	// referenceTenureMonths is the tenure at which affordability is
	// checked during instant-tier evaluation.
	referenceTenureMonths = 36
)

// conditionalTierMultiplier bounds the conditional tier at twice the
// pre-approved limit.
var conditionalTierMultiplier = decimal.NewFromInt(2)

// UnderwritingEngine is the deterministic decision ladder. It performs
// no I/O; evidence (verification flags, salary proof presence) is
// gathered by the caller and passed in. Evaluating twice with the same
// inputs always yields the same decision.
type UnderwritingEngine struct {
	calc *AffordabilityCalculator
}

// NewUnderwritingEngine creates an UnderwritingEngine.
func NewUnderwritingEngine(calc *AffordabilityCalculator) *UnderwritingEngine {
	return &UnderwritingEngine{calc: calc}
}

// Evaluate runs the rule ladder for a requested amount. Rules fire in
// strict order; the first match wins.
func (e *UnderwritingEngine) Evaluate(user model.User, requestedAmount decimal.Decimal, hasSalaryProof bool) (model.Decision, error) {
	// Rule 1: verification gate.
	if !user.PhoneVerified() || !user.EmailVerified() {
		return model.Decision{
			Status:               valueobject.StatusRequiresVerification(),
			Message:              "Please complete phone and email verification before we can process your application.",
			RequiresVerification: true,
		}, nil
	}

	// Rule 2: credit floor.
	if user.CreditScore() < creditScoreFloor {
		return model.Decision{
			Status:  valueobject.StatusRejected(),
			Message: fmt.Sprintf("Credit score %d is below the minimum of %d required for a personal loan.", user.CreditScore(), creditScoreFloor),
		}, nil
	}

	rate := RateForScore(user.CreditScore())

	// Rule 3: instant tier, within the pre-approved limit.
	if requestedAmount.LessThanOrEqual(user.PreApprovedLimit()) {
		if income := user.Profile().MonthlyIncome; income != nil {
			report, err := e.calc.Assess(*income, user.Profile().ExistingEMI, requestedAmount, referenceTenureMonths, rate)
			if err != nil {
				return model.Decision{}, fmt.Errorf("affordability check: %w", err)
			}
			if !report.Affordable {
				return model.Decision{
					Status: valueobject.StatusRejected(),
					Message: fmt.Sprintf("The requested amount is not affordable at your current income. You can afford a loan of up to %s.",
						report.MaxAffordableLoan.StringFixed(2)),
				}, nil
			}
		}
		return model.Decision{
			Status:   valueobject.StatusApproved(),
			Approved: true,
			Message:  "Congratulations, your loan is approved against your pre-approved limit.",
		}, nil
	}

	// Rule 4: conditional tier, up to twice the pre-approved limit.
	if requestedAmount.LessThanOrEqual(user.PreApprovedLimit().Mul(conditionalTierMultiplier)) {
		if hasSalaryProof {
			return model.Decision{
				Status:   valueobject.StatusApproved(),
				Approved: true,
				Message:  "Your loan is approved based on the salary proof on file.",
			}, nil
		}
		return model.Decision{
			Status:            valueobject.StatusRequiresDocuments(),
			Message:           "Please upload a recent salary slip so we can complete underwriting for this amount.",
			RequiresDocuments: true,
		}, nil
	}

	// Rule 5: hard ceiling.
	return model.Decision{
		Status: valueobject.StatusRejected(),
		Message: fmt.Sprintf("The requested amount exceeds twice your pre-approved limit of %s.",
			user.PreApprovedLimit().StringFixed(2)),
	}, nil
}
