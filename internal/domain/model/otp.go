package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/valueobject"
)

// OTPValidity is the fixed window during which a code may be consumed.
const OTPValidity = 5 * time.Minute

// ErrOTPInvalidOrExpired is the uniform failure for any unusable code:
// wrong code, expired, or already consumed. Callers must not be able to
// tell which.
var ErrOTPInvalidOrExpired = errors.New("invalid or expired code")

// OTP is a single-use verification code for one channel of one user.
type OTP struct {
	id        uuid.UUID
	userID    uuid.UUID
	otpType   valueobject.OTPType
	code      string
	verified  bool
	createdAt time.Time
	expiresAt time.Time
}

// NewOTP issues a fresh code for the given user and channel. Issuing
// does not invalidate previously issued codes for the same channel.
func NewOTP(userID uuid.UUID, otpType valueobject.OTPType) (OTP, error) {
	if userID == uuid.Nil {
		return OTP{}, errors.New("user id is required")
	}
	if otpType.IsZero() {
		return OTP{}, errors.New("otp type is required")
	}

	code, err := generateCode()
	if err != nil {
		return OTP{}, fmt.Errorf("generate otp code: %w", err)
	}

	now := time.Now().UTC()
	return OTP{
		id:        uuid.New(),
		userID:    userID,
		otpType:   otpType,
		code:      code,
		createdAt: now,
		expiresAt: now.Add(OTPValidity),
	}, nil
}

// ReconstructOTP rebuilds an OTP from persisted state.
func ReconstructOTP(id, userID uuid.UUID, otpType valueobject.OTPType, code string, verified bool, createdAt, expiresAt time.Time) OTP {
	return OTP{
		id:        id,
		userID:    userID,
		otpType:   otpType,
		code:      code,
		verified:  verified,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}
}

// Consume marks the code as used. It fails uniformly if the submitted
// code does not match, the record was already consumed, or the window
// has passed.
func (o OTP) Consume(submittedCode string, now time.Time) (OTP, error) {
	if o.verified || o.code != submittedCode || now.After(o.expiresAt) {
		return OTP{}, ErrOTPInvalidOrExpired
	}
	c := o
	c.verified = true
	return c, nil
}

// IsExpired reports whether the code's window has passed at the given time.
func (o OTP) IsExpired(now time.Time) bool { return now.After(o.expiresAt) }

func (o OTP) ID() uuid.UUID                { return o.id }
func (o OTP) UserID() uuid.UUID            { return o.userID }
func (o OTP) Type() valueobject.OTPType    { return o.otpType }
func (o OTP) Code() string                 { return o.code }
func (o OTP) Verified() bool               { return o.verified }
func (o OTP) CreatedAt() time.Time         { return o.createdAt }
func (o OTP) ExpiresAt() time.Time         { return o.expiresAt }

// generateCode returns a uniformly random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
