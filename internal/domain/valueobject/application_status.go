package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusTransition is returned when a loan application status
// transition is not permitted.
var ErrInvalidStatusTransition = errors.New("invalid application status transition")

// ApplicationStatus represents the underwriting status of a loan application.
type ApplicationStatus struct {
	value string
}

var validApplicationStatuses = map[string]struct{}{
	"pending":               {},
	"approved":              {},
	"rejected":              {},
	"requires_documents":    {},
	"requires_verification": {},
}

// NewApplicationStatus creates an ApplicationStatus from its string value.
func NewApplicationStatus(value string) (ApplicationStatus, error) {
	if _, ok := validApplicationStatuses[value]; !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", value)
	}
	return ApplicationStatus{value: value}, nil
}

// Status constructors for the five underwriting outcomes.
func StatusPending() ApplicationStatus              { return ApplicationStatus{value: "pending"} }
func StatusApproved() ApplicationStatus             { return ApplicationStatus{value: "approved"} }
func StatusRejected() ApplicationStatus             { return ApplicationStatus{value: "rejected"} }
func StatusRequiresDocuments() ApplicationStatus    { return ApplicationStatus{value: "requires_documents"} }
func StatusRequiresVerification() ApplicationStatus { return ApplicationStatus{value: "requires_verification"} }

// String returns the string value of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero reports whether the status is the zero value.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal reports whether two statuses are the same.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// IsTerminal reports whether the status admits no further re-evaluation.
func (s ApplicationStatus) IsTerminal() bool {
	return s.value == "approved" || s.value == "rejected"
}

// CanTransitionTo reports whether a transition from s to target is allowed.
// Approved and rejected are terminal. Pending may resolve to any decision
// status, and the two evidence-pending statuses may move to any decision
// status on re-evaluation, including back to themselves.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s.value {
	case "pending":
		return !target.IsZero() && target.value != "pending"
	case "requires_documents", "requires_verification":
		return !target.IsZero() && target.value != "pending"
	}
	return false
}
