package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/valueobject"
)

func newTestUser(t *testing.T) User {
	t.Helper()
	u, err := NewUser("ramesh@example.com", "+919876543210", "Ramesh Kumar", "hash", 780, decimal.NewFromInt(300000))
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newTestUser(t)

	assert.Equal(t, "ramesh@example.com", u.Email())
	assert.Equal(t, 780, u.CreditScore())
	assert.False(t, u.PhoneVerified())
	assert.False(t, u.EmailVerified())
	assert.False(t, u.KYCVerified())
	assert.Equal(t, 1, u.Version())

	evts := u.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.TypeUserRegistered, evts[0].EventType())
}

func TestNewUser_Validation(t *testing.T) {
	limit := decimal.NewFromInt(100000)

	_, err := NewUser("", "+91", "A", "h", 750, limit)
	assert.Error(t, err)

	_, err = NewUser("a@b.com", "", "A", "h", 750, limit)
	assert.Error(t, err)

	_, err = NewUser("a@b.com", "+91", "A", "h", 250, limit)
	assert.ErrorIs(t, err, ErrInvalidCreditScore)

	_, err = NewUser("a@b.com", "+91", "A", "h", 950, limit)
	assert.ErrorIs(t, err, ErrInvalidCreditScore)

	_, err = NewUser("a@b.com", "+91", "A", "h", 750, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestUser_KYCRequiresBothChannels(t *testing.T) {
	u := newTestUser(t)

	phoneOnly := u.VerifyPhone()
	assert.True(t, phoneOnly.PhoneVerified())
	assert.False(t, phoneOnly.KYCVerified())

	emailOnly := u.VerifyEmail()
	assert.True(t, emailOnly.EmailVerified())
	assert.False(t, emailOnly.KYCVerified())

	both := phoneOnly.VerifyEmail()
	assert.True(t, both.KYCVerified())

	// Reverse order yields the same composite flag.
	bothReversed := emailOnly.VerifyPhone()
	assert.True(t, bothReversed.KYCVerified())
}

func TestUser_VerifyEmitsKYCEventOnce(t *testing.T) {
	u := newTestUser(t).ClearEvents()

	both := u.VerifyPhone().VerifyEmail()

	var channels []string
	for _, evt := range both.DomainEvents() {
		ue, ok := evt.(event.UserVerified)
		require.True(t, ok)
		channels = append(channels, ue.Channel)
	}
	assert.Equal(t, []string{"phone", "email", "kyc"}, channels)
}

func TestUser_TransitionsDoNotMutateOriginal(t *testing.T) {
	u := newTestUser(t)
	_ = u.VerifyPhone()
	assert.False(t, u.PhoneVerified())
	assert.Equal(t, 1, u.Version())
}

func TestUser_WithContactDetails(t *testing.T) {
	u := newTestUser(t)

	updated, err := u.WithContactDetails(ContactDetails{Address: "14 MG Road", City: "Pune", Age: 31})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.Contact().City)
	assert.Equal(t, 31, updated.Contact().Age)
	assert.Equal(t, 2, updated.Version())

	_, err = u.WithContactDetails(ContactDetails{Age: 14})
	assert.ErrorIs(t, err, ErrInvalidContactDetails)

	// Age zero means undeclared, not invalid.
	_, err = u.WithContactDetails(ContactDetails{City: "Pune"})
	assert.NoError(t, err)
}

func TestUser_MarkOTPSent(t *testing.T) {
	u := newTestUser(t)
	at := time.Now().UTC()

	stamped := u.MarkOTPSent(valueobject.OTPTypePhone(), at)
	require.NotNil(t, stamped.PhoneOTPSentAt())
	assert.True(t, stamped.PhoneOTPSentAt().Equal(at))
	assert.Nil(t, stamped.EmailOTPSentAt())
	assert.Nil(t, u.PhoneOTPSentAt())
}

func TestUser_UpdateFinancialProfile(t *testing.T) {
	u := newTestUser(t)

	income := decimal.NewFromInt(80000)
	updated, err := u.UpdateFinancialProfile(FinancialProfile{
		MonthlyIncome:  &income,
		ExistingEMI:    decimal.NewFromInt(5000),
		EmploymentType: "salaried",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile().MonthlyIncome)
	assert.True(t, updated.Profile().MonthlyIncome.Equal(income))
	assert.Equal(t, 2, updated.Version())

	zero := decimal.Zero
	_, err = u.UpdateFinancialProfile(FinancialProfile{MonthlyIncome: &zero})
	assert.ErrorIs(t, err, ErrInvalidFinancialProfile)

	_, err = u.UpdateFinancialProfile(FinancialProfile{ExistingEMI: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidFinancialProfile)
}
