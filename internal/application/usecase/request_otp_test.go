package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

func newOTPRequestFixture(user model.User) (*RequestOTPUseCase, *mockOTPRepository, *mockNotifier, *mockUserRepository) {
	users := &mockUserRepository{
		findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.User, error) {
			return user, nil
		},
	}
	otps := &mockOTPRepository{}
	notifier := &mockNotifier{}
	uc := NewRequestOTPUseCase(users, otps, notifier, &mockEventPublisher{}, discardLogger())
	return uc, otps, notifier, users
}

func TestRequestOTP_IssuesAndDelivers(t *testing.T) {
	user := unverifiedUser(780, 300000)
	uc, otps, notifier, users := newOTPRequestFixture(user)

	resp, err := uc.Execute(context.Background(), dto.RequestOTPRequest{
		UserID: user.ID().String(),
		Type:   "phone",
	})
	require.NoError(t, err)

	assert.True(t, resp.Delivered)
	assert.NotEmpty(t, resp.ExpiresAt)
	require.Len(t, otps.savedOTPs, 1)
	assert.Len(t, otps.savedOTPs[0].Code(), 6)
	// The demo surface echoes the issued code.
	assert.Equal(t, otps.savedOTPs[0].Code(), resp.Code)

	// Phone codes go to the phone, and the send time is stamped.
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, user.Phone(), notifier.notified[0])
	require.Len(t, users.savedUsers, 1)
	assert.NotNil(t, users.savedUsers[0].PhoneOTPSentAt())
	assert.Nil(t, users.savedUsers[0].EmailOTPSentAt())
}

func TestRequestOTP_DeliveryFailureStillIssues(t *testing.T) {
	user := unverifiedUser(780, 300000)
	uc, otps, notifier, _ := newOTPRequestFixture(user)
	notifier.notifyFunc = func(_ context.Context, _, _, _ string, _ []byte) error {
		return errors.New("smtp down")
	}

	resp, err := uc.Execute(context.Background(), dto.RequestOTPRequest{
		UserID: user.ID().String(),
		Type:   "email",
	})
	require.NoError(t, err)

	assert.False(t, resp.Delivered)
	assert.Len(t, otps.savedOTPs, 1)
	assert.NotEmpty(t, resp.Code)
}

func TestRequestOTP_ResendKeepsPriorCodes(t *testing.T) {
	user := unverifiedUser(780, 300000)
	uc, otps, _, _ := newOTPRequestFixture(user)

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), dto.RequestOTPRequest{
			UserID: user.ID().String(),
			Type:   "email",
		})
		require.NoError(t, err)
	}

	// Every issued code remains stored; none is revoked by the resend.
	require.Len(t, otps.savedOTPs, 3)
	for _, otp := range otps.savedOTPs {
		assert.Equal(t, valueobject.OTPTypeEmail(), otp.Type())
		assert.False(t, otp.Verified())
	}
}

func TestRequestOTP_RejectsUnknownType(t *testing.T) {
	user := unverifiedUser(780, 300000)
	uc, _, _, _ := newOTPRequestFixture(user)

	_, err := uc.Execute(context.Background(), dto.RequestOTPRequest{
		UserID: user.ID().String(),
		Type:   "carrier_pigeon",
	})
	assert.Error(t, err)
}
