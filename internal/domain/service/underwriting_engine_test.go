package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

type applicantParams struct {
	creditScore   int
	limit         int64
	phoneVerified bool
	emailVerified bool
	monthlyIncome *int64
	existingEMI   int64
}

func buildApplicant(params applicantParams) model.User {
	profile := model.FinancialProfile{ExistingEMI: decimal.NewFromInt(params.existingEMI)}
	if params.monthlyIncome != nil {
		income := decimal.NewFromInt(*params.monthlyIncome)
		profile.MonthlyIncome = &income
	}
	return model.ReconstructUser(
		uuid.New(),
		"applicant@example.com", "+919876543210", "Applicant", "hash",
		model.ContactDetails{},
		params.creditScore,
		decimal.NewFromInt(params.limit),
		params.phoneVerified, params.emailVerified,
		params.phoneVerified && params.emailVerified,
		nil, nil,
		profile,
		timeNow(), timeNow(), 1,
	)
}

func timeNow() time.Time { return time.Now().UTC() }

func newEngine() *UnderwritingEngine {
	return NewUnderwritingEngine(NewAffordabilityCalculator())
}

func TestUnderwritingEngine_VerificationGateFirst(t *testing.T) {
	engine := newEngine()

	tests := []struct {
		name  string
		phone bool
		email bool
	}{
		{"phone unverified", false, true},
		{"email unverified", true, false},
		{"both unverified", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := buildApplicant(applicantParams{
				creditScore: 800, limit: 300000,
				phoneVerified: tt.phone, emailVerified: tt.email,
			})
			// Amount and score would qualify for instant approval.
			decision, err := engine.Evaluate(user, decimal.NewFromInt(100000), false)
			require.NoError(t, err)
			assert.Equal(t, valueobject.StatusRequiresVerification(), decision.Status)
			assert.True(t, decision.RequiresVerification)
			assert.False(t, decision.Approved)
		})
	}
}

func TestUnderwritingEngine_CreditFloorBeforeInstantTier(t *testing.T) {
	engine := newEngine()
	user := buildApplicant(applicantParams{
		creditScore: 650, limit: 300000,
		phoneVerified: true, emailVerified: true,
	})

	// Within the pre-approved limit, but the floor fires first.
	decision, err := engine.Evaluate(user, decimal.NewFromInt(100000), true)
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusRejected(), decision.Status)
	assert.Contains(t, decision.Message, "650")
}

func TestUnderwritingEngine_InstantTier(t *testing.T) {
	engine := newEngine()

	t.Run("income unknown approves on limit alone", func(t *testing.T) {
		user := buildApplicant(applicantParams{
			creditScore: 780, limit: 300000,
			phoneVerified: true, emailVerified: true,
		})
		decision, err := engine.Evaluate(user, decimal.NewFromInt(250000), false)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusApproved(), decision.Status)
		assert.True(t, decision.Approved)
	})

	t.Run("affordable income approves", func(t *testing.T) {
		income := int64(80000)
		user := buildApplicant(applicantParams{
			creditScore: 780, limit: 300000,
			phoneVerified: true, emailVerified: true,
			monthlyIncome: &income,
		})
		decision, err := engine.Evaluate(user, decimal.NewFromInt(250000), false)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusApproved(), decision.Status)
	})

	t.Run("unaffordable income rejects with headroom figure", func(t *testing.T) {
		income := int64(20000)
		user := buildApplicant(applicantParams{
			creditScore: 780, limit: 300000,
			phoneVerified: true, emailVerified: true,
			monthlyIncome: &income,
		})
		decision, err := engine.Evaluate(user, decimal.NewFromInt(250000), false)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusRejected(), decision.Status)
		assert.Contains(t, decision.Message, "afford")
	})
}

func TestUnderwritingEngine_ConditionalTier(t *testing.T) {
	engine := newEngine()
	user := buildApplicant(applicantParams{
		creditScore: 780, limit: 300000,
		phoneVerified: true, emailVerified: true,
	})
	amount := decimal.NewFromInt(500000)

	t.Run("no salary proof asks for documents", func(t *testing.T) {
		decision, err := engine.Evaluate(user, amount, false)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusRequiresDocuments(), decision.Status)
		assert.True(t, decision.RequiresDocuments)
	})

	t.Run("salary proof approves", func(t *testing.T) {
		decision, err := engine.Evaluate(user, amount, true)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusApproved(), decision.Status)
		assert.True(t, decision.Approved)
	})

	t.Run("boundary at exactly twice the limit", func(t *testing.T) {
		decision, err := engine.Evaluate(user, decimal.NewFromInt(600000), false)
		require.NoError(t, err)
		assert.Equal(t, valueobject.StatusRequiresDocuments(), decision.Status)
	})
}

func TestUnderwritingEngine_HardCeiling(t *testing.T) {
	engine := newEngine()
	user := buildApplicant(applicantParams{
		creditScore: 800, limit: 300000,
		phoneVerified: true, emailVerified: true,
	})

	decision, err := engine.Evaluate(user, decimal.NewFromInt(700000), true)
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusRejected(), decision.Status)
	assert.Contains(t, decision.Message, "exceeds")
}

func TestUnderwritingEngine_Deterministic(t *testing.T) {
	engine := newEngine()
	income := int64(45000)
	user := buildApplicant(applicantParams{
		creditScore: 760, limit: 200000,
		phoneVerified: true, emailVerified: true,
		monthlyIncome: &income, existingEMI: 8000,
	})
	amount := decimal.NewFromInt(150000)

	first, err := engine.Evaluate(user, amount, false)
	require.NoError(t, err)
	second, err := engine.Evaluate(user, amount, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
