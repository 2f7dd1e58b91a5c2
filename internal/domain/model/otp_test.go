package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/domain/valueobject"
)

func TestNewOTP(t *testing.T) {
	userID := uuid.New()
	otp, err := NewOTP(userID, valueobject.OTPTypePhone())
	require.NoError(t, err)

	assert.Equal(t, userID, otp.UserID())
	assert.Len(t, otp.Code(), 6)
	assert.False(t, otp.Verified())
	assert.Equal(t, OTPValidity, otp.ExpiresAt().Sub(otp.CreatedAt()))
}

func TestNewOTP_Validation(t *testing.T) {
	_, err := NewOTP(uuid.Nil, valueobject.OTPTypePhone())
	assert.Error(t, err)

	_, err = NewOTP(uuid.New(), valueobject.OTPType{})
	assert.Error(t, err)
}

func TestOTP_ConsumeOnce(t *testing.T) {
	otp, err := NewOTP(uuid.New(), valueobject.OTPTypeEmail())
	require.NoError(t, err)
	now := otp.CreatedAt().Add(time.Minute)

	consumed, err := otp.Consume(otp.Code(), now)
	require.NoError(t, err)
	assert.True(t, consumed.Verified())

	// Second attempt against the consumed record fails uniformly.
	_, err = consumed.Consume(otp.Code(), now)
	assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
}

func TestOTP_ConsumeWrongCode(t *testing.T) {
	otp, err := NewOTP(uuid.New(), valueobject.OTPTypePhone())
	require.NoError(t, err)

	wrong := "000000"
	if otp.Code() == wrong {
		wrong = "000001"
	}
	_, err = otp.Consume(wrong, otp.CreatedAt())
	assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
}

func TestOTP_ConsumeAfterExpiry(t *testing.T) {
	otp, err := NewOTP(uuid.New(), valueobject.OTPTypePhone())
	require.NoError(t, err)

	late := otp.ExpiresAt().Add(time.Second)
	_, err = otp.Consume(otp.Code(), late)
	assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
	assert.True(t, otp.IsExpired(late))
	assert.False(t, otp.IsExpired(otp.ExpiresAt()))
}
