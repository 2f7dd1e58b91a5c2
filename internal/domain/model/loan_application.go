package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

var (
	// ErrApplicationTerminal is returned when re-evaluation is attempted on
	// an approved or rejected application.
	ErrApplicationTerminal = errors.New("application is in a terminal status")
	// ErrInvalidLoanRequest is returned when amount or tenure are out of domain.
	ErrInvalidLoanRequest = errors.New("invalid loan request")
)

// Decision is the outcome of one underwriting ladder evaluation.
type Decision struct {
	Status               valueobject.ApplicationStatus
	Approved             bool
	Message              string
	RequiresDocuments    bool
	RequiresVerification bool
}

// LoanApplication is one underwriting case. Amount, tenure and rate are
// fixed at creation; re-evaluation only moves the status and the
// rejection reason. State transitions return a new copy.
type LoanApplication struct {
	id              uuid.UUID
	userID          uuid.UUID
	amount          decimal.Decimal
	tenureMonths    int
	interestRate    decimal.Decimal
	purpose         string
	emi             decimal.Decimal
	totalPayable    decimal.Decimal
	affordability   *valueobject.AffordabilitySnapshot
	status          valueobject.ApplicationStatus
	rejectionReason string
	sanctionRef     string
	createdAt       time.Time
	updatedAt       time.Time
	version         int
	domainEvents    []events.DomainEvent
}

// NewLoanApplication creates a pending application with its repayment
// figures already computed. The caller derives the rate from the
// user's credit tier and the EMI from the amortization formula.
func NewLoanApplication(
	userID uuid.UUID,
	amount decimal.Decimal,
	tenureMonths int,
	interestRate decimal.Decimal,
	purpose string,
	emi decimal.Decimal,
	affordability *valueobject.AffordabilitySnapshot,
) (LoanApplication, error) {
	if userID == uuid.Nil {
		return LoanApplication{}, errors.New("user id is required")
	}
	if !amount.IsPositive() {
		return LoanApplication{}, fmt.Errorf("%w: amount must be positive", ErrInvalidLoanRequest)
	}
	if tenureMonths <= 0 {
		return LoanApplication{}, fmt.Errorf("%w: tenure must be positive", ErrInvalidLoanRequest)
	}
	if interestRate.IsNegative() {
		return LoanApplication{}, fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidLoanRequest)
	}

	now := time.Now().UTC()
	app := LoanApplication{
		id:            uuid.New(),
		userID:        userID,
		amount:        amount,
		tenureMonths:  tenureMonths,
		interestRate:  interestRate,
		purpose:       purpose,
		emi:           emi,
		totalPayable:  emi.Mul(decimal.NewFromInt(int64(tenureMonths))).Round(2),
		affordability: affordability,
		status:        valueobject.StatusPending(),
		createdAt:     now,
		updatedAt:     now,
		version:       1,
	}
	app.domainEvents = append(app.domainEvents,
		event.NewApplicationSubmitted(app.id.String(), userID.String(), amount, tenureMonths, interestRate, purpose))
	return app, nil
}

// ReconstructLoanApplication rebuilds an application from persisted state.
func ReconstructLoanApplication(
	id, userID uuid.UUID,
	amount decimal.Decimal,
	tenureMonths int,
	interestRate decimal.Decimal,
	purpose string,
	emi, totalPayable decimal.Decimal,
	affordability *valueobject.AffordabilitySnapshot,
	status valueobject.ApplicationStatus,
	rejectionReason, sanctionRef string,
	createdAt, updatedAt time.Time,
	version int,
) LoanApplication {
	return LoanApplication{
		id:              id,
		userID:          userID,
		amount:          amount,
		tenureMonths:    tenureMonths,
		interestRate:    interestRate,
		purpose:         purpose,
		emi:             emi,
		totalPayable:    totalPayable,
		affordability:   affordability,
		status:          status,
		rejectionReason: rejectionReason,
		sanctionRef:     sanctionRef,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		version:         version,
	}
}

// ApplyDecision moves the application to the status chosen by the
// underwriting ladder. Applying the same decision twice is a no-op
// copy, keeping re-evaluation idempotent.
func (a LoanApplication) ApplyDecision(d Decision) (LoanApplication, error) {
	if a.status.Equal(d.Status) {
		return a.copy(), nil
	}
	if !a.status.CanTransitionTo(d.Status) {
		if a.status.IsTerminal() {
			return LoanApplication{}, ErrApplicationTerminal
		}
		return LoanApplication{}, fmt.Errorf("%w: %s -> %s",
			valueobject.ErrInvalidStatusTransition, a.status.String(), d.Status.String())
	}

	c := a.copy()
	previous := c.status
	c.status = d.Status
	if d.Status.Equal(valueobject.StatusRejected()) {
		c.rejectionReason = d.Message
	} else {
		c.rejectionReason = ""
	}
	c.updatedAt = time.Now().UTC()
	c.version++
	c.domainEvents = append(c.domainEvents,
		event.NewApplicationDecided(c.id.String(), c.userID.String(), previous.String(), c.status.String(), c.rejectionReason))
	return c, nil
}

// AttachSanctionRef records the rendered sanction artifact reference.
// Only approved applications carry a sanction document.
func (a LoanApplication) AttachSanctionRef(ref string) (LoanApplication, error) {
	if !a.status.Equal(valueobject.StatusApproved()) {
		return LoanApplication{}, fmt.Errorf("sanction artifact requires approved status, have %s", a.status.String())
	}
	c := a.copy()
	c.sanctionRef = ref
	c.updatedAt = time.Now().UTC()
	c.version++
	c.domainEvents = append(c.domainEvents,
		event.NewSanctionLetterGenerated(c.id.String(), c.userID.String(), ref))
	return c, nil
}

// CanReevaluate reports whether new evidence may still change the status.
func (a LoanApplication) CanReevaluate() bool { return !a.status.IsTerminal() }

func (a LoanApplication) copy() LoanApplication {
	c := a
	c.domainEvents = copyEvents(a.domainEvents)
	return c
}

// Accessors.

func (a LoanApplication) ID() uuid.UUID                 { return a.id }
func (a LoanApplication) UserID() uuid.UUID             { return a.userID }
func (a LoanApplication) Amount() decimal.Decimal       { return a.amount }
func (a LoanApplication) TenureMonths() int             { return a.tenureMonths }
func (a LoanApplication) InterestRate() decimal.Decimal { return a.interestRate }
func (a LoanApplication) Purpose() string               { return a.purpose }
func (a LoanApplication) EMI() decimal.Decimal          { return a.emi }
func (a LoanApplication) TotalPayable() decimal.Decimal { return a.totalPayable }
func (a LoanApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a LoanApplication) RejectionReason() string       { return a.rejectionReason }
func (a LoanApplication) SanctionRef() string           { return a.sanctionRef }
func (a LoanApplication) CreatedAt() time.Time          { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time          { return a.updatedAt }
func (a LoanApplication) Version() int                  { return a.version }

// Affordability returns the stored snapshot, or nil when income was
// unknown at submission.
func (a LoanApplication) Affordability() *valueobject.AffordabilitySnapshot {
	if a.affordability == nil {
		return nil
	}
	snap := *a.affordability
	return &snap
}

// DomainEvents returns the events recorded since the aggregate was
// loaded or created.
func (a LoanApplication) DomainEvents() []events.DomainEvent { return copyEvents(a.domainEvents) }

// ClearEvents returns a copy with the recorded events discarded.
func (a LoanApplication) ClearEvents() LoanApplication {
	c := a
	c.domainEvents = nil
	return c
}
