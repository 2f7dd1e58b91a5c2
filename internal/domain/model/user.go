package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

const (
	minCreditScore = 300
	maxCreditScore = 900
)

var (
	// ErrInvalidCreditScore is returned when a score falls outside the bureau domain.
	ErrInvalidCreditScore = fmt.Errorf("credit score must be between %d and %d", minCreditScore, maxCreditScore)
	// ErrInvalidFinancialProfile is returned when profile figures are out of domain.
	ErrInvalidFinancialProfile = errors.New("invalid financial profile")
	// ErrInvalidContactDetails is returned when contact figures are out of domain.
	ErrInvalidContactDetails = errors.New("invalid contact details")
)

// ContactDetails holds the optional postal and demographic fields
// collected at registration. Age zero means undeclared.
type ContactDetails struct {
	Address string
	City    string
	Age     int
}

// FinancialProfile holds the income figures used by the affordability
// calculator. MonthlyIncome is nil until the user has declared it.
type FinancialProfile struct {
	MonthlyIncome  *decimal.Decimal
	ExistingEMI    decimal.Decimal
	EmploymentType string
	IncomeVerified bool
}

// User is the identity aggregate. The credit score and pre-approved
// limit are a snapshot taken once at registration and never change.
// State transitions return a new copy of the aggregate.
type User struct {
	id               uuid.UUID
	email            string
	phone            string
	fullName         string
	passwordHash     string
	creditScore      int
	preApprovedLimit decimal.Decimal
	contact          ContactDetails
	phoneVerified    bool
	emailVerified    bool
	kycVerified      bool
	phoneOTPSentAt   *time.Time
	emailOTPSentAt   *time.Time
	profile          FinancialProfile
	createdAt        time.Time
	updatedAt        time.Time
	version          int
	domainEvents     []events.DomainEvent
}

// NewUser creates a User with its creditworthiness snapshot.
func NewUser(email, phone, fullName, passwordHash string, creditScore int, preApprovedLimit decimal.Decimal) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if phone = strings.TrimSpace(phone); phone == "" {
		return User{}, errors.New("phone is required")
	}
	if creditScore < minCreditScore || creditScore > maxCreditScore {
		return User{}, ErrInvalidCreditScore
	}
	if preApprovedLimit.IsNegative() {
		return User{}, errors.New("pre-approved limit cannot be negative")
	}

	now := time.Now().UTC()
	u := User{
		id:               uuid.New(),
		email:            email,
		phone:            phone,
		fullName:         fullName,
		passwordHash:     passwordHash,
		creditScore:      creditScore,
		preApprovedLimit: preApprovedLimit,
		createdAt:        now,
		updatedAt:        now,
		version:          1,
	}
	u.domainEvents = append(u.domainEvents, event.NewUserRegistered(u.id.String(), u.email, creditScore, preApprovedLimit))
	return u, nil
}

// ReconstructUser rebuilds a User from persisted state. It performs no
// validation beyond what the store guarantees and records no events.
func ReconstructUser(
	id uuid.UUID,
	email, phone, fullName, passwordHash string,
	contact ContactDetails,
	creditScore int,
	preApprovedLimit decimal.Decimal,
	phoneVerified, emailVerified, kycVerified bool,
	phoneOTPSentAt, emailOTPSentAt *time.Time,
	profile FinancialProfile,
	createdAt, updatedAt time.Time,
	version int,
) User {
	return User{
		id:               id,
		email:            email,
		phone:            phone,
		fullName:         fullName,
		passwordHash:     passwordHash,
		contact:          contact,
		creditScore:      creditScore,
		preApprovedLimit: preApprovedLimit,
		phoneVerified:    phoneVerified,
		emailVerified:    emailVerified,
		kycVerified:      kycVerified,
		phoneOTPSentAt:   phoneOTPSentAt,
		emailOTPSentAt:   emailOTPSentAt,
		profile:          profile,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
	}
}

// WithContactDetails sets the optional postal and demographic fields.
func (u User) WithContactDetails(contact ContactDetails) (User, error) {
	if contact.Age != 0 && (contact.Age < 18 || contact.Age > 120) {
		return User{}, fmt.Errorf("%w: age must be between 18 and 120", ErrInvalidContactDetails)
	}

	c := u.copy()
	c.contact = contact
	c.updatedAt = time.Now().UTC()
	c.version++
	return c, nil
}

// MarkOTPSent records when a code was last issued for a channel.
func (u User) MarkOTPSent(otpType valueobject.OTPType, at time.Time) User {
	c := u.copy()
	if otpType.Equal(valueobject.OTPTypePhone()) {
		c.phoneOTPSentAt = &at
	} else {
		c.emailOTPSentAt = &at
	}
	c.updatedAt = time.Now().UTC()
	c.version++
	return c
}

// MarkIncomeVerified flags the declared income as evidenced by an
// uploaded salary document.
func (u User) MarkIncomeVerified() User {
	c := u.copy()
	c.profile.IncomeVerified = true
	c.updatedAt = time.Now().UTC()
	c.version++
	return c
}

// VerifyPhone marks the phone channel verified. KYC flips true only
// when both channels are verified.
func (u User) VerifyPhone() User {
	return u.verifyChannel("phone", func(c *User) { c.phoneVerified = true })
}

// VerifyEmail marks the email channel verified. KYC flips true only
// when both channels are verified.
func (u User) VerifyEmail() User {
	return u.verifyChannel("email", func(c *User) { c.emailVerified = true })
}

func (u User) verifyChannel(channel string, set func(*User)) User {
	c := u.copy()
	set(&c)
	c.domainEvents = append(c.domainEvents, event.NewUserVerified(c.id.String(), channel))
	if c.phoneVerified && c.emailVerified && !c.kycVerified {
		c.kycVerified = true
		c.domainEvents = append(c.domainEvents, event.NewUserVerified(c.id.String(), "kyc"))
	}
	c.updatedAt = time.Now().UTC()
	c.version++
	return c
}

// UpdateFinancialProfile replaces the declared income figures.
func (u User) UpdateFinancialProfile(profile FinancialProfile) (User, error) {
	if profile.MonthlyIncome != nil && !profile.MonthlyIncome.IsPositive() {
		return User{}, fmt.Errorf("%w: monthly income must be positive", ErrInvalidFinancialProfile)
	}
	if profile.ExistingEMI.IsNegative() {
		return User{}, fmt.Errorf("%w: existing emi cannot be negative", ErrInvalidFinancialProfile)
	}

	c := u.copy()
	c.profile = profile
	c.updatedAt = time.Now().UTC()
	c.version++
	return c, nil
}

func (u User) copy() User {
	c := u
	c.domainEvents = copyEvents(u.domainEvents)
	return c
}

// Accessors.

func (u User) ID() uuid.UUID                     { return u.id }
func (u User) Email() string                     { return u.email }
func (u User) Phone() string                     { return u.phone }
func (u User) FullName() string                  { return u.fullName }
func (u User) PasswordHash() string              { return u.passwordHash }
func (u User) Contact() ContactDetails           { return u.contact }
func (u User) PhoneOTPSentAt() *time.Time        { return u.phoneOTPSentAt }
func (u User) EmailOTPSentAt() *time.Time        { return u.emailOTPSentAt }
func (u User) CreditScore() int                  { return u.creditScore }
func (u User) PreApprovedLimit() decimal.Decimal { return u.preApprovedLimit }
func (u User) PhoneVerified() bool               { return u.phoneVerified }
func (u User) EmailVerified() bool               { return u.emailVerified }
func (u User) KYCVerified() bool                 { return u.kycVerified }
func (u User) Profile() FinancialProfile         { return u.profile }
func (u User) CreatedAt() time.Time              { return u.createdAt }
func (u User) UpdatedAt() time.Time              { return u.updatedAt }
func (u User) Version() int                      { return u.version }

// DomainEvents returns the events recorded since the aggregate was
// loaded or created.
func (u User) DomainEvents() []events.DomainEvent { return copyEvents(u.domainEvents) }

// ClearEvents returns a copy with the recorded events discarded. Called
// after the events have been published.
func (u User) ClearEvents() User {
	c := u
	c.domainEvents = nil
	return c
}

func copyEvents(src []events.DomainEvent) []events.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]events.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
