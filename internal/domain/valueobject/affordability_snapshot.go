package valueobject

import "github.com/shopspring/decimal"

// Recommendation values carried on an affordability snapshot.
const (
	RecommendationApproved           = "approved"
	RecommendationConsiderLowerAmount = "consider_lower_amount"
)

// AffordabilitySnapshot is the full output of an affordability
// assessment. It is stored on a loan application at submission time and
// reused for conversation framing, so it carries both ratios and the
// derived headroom figures rather than a bare boolean.
type AffordabilitySnapshot struct {
	ProposedEMI       decimal.Decimal `json:"proposed_emi"`
	TotalEMI          decimal.Decimal `json:"total_emi"`
	EMIPercentage     decimal.Decimal `json:"emi_percentage"`
	DTIRatio          decimal.Decimal `json:"dti_ratio"`
	MaxAffordableLoan decimal.Decimal `json:"max_affordable_loan"`
	Affordable        bool            `json:"is_affordable"`
	Recommendation    string          `json:"recommendation"`
}
