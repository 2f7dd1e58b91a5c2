package valueobject

import "fmt"

// SessionStatus represents the lifecycle state of a chat session.
type SessionStatus struct {
	value string
}

var validSessionStatuses = map[string]struct{}{
	"active":    {},
	"completed": {},
	"abandoned": {},
}

// NewSessionStatus creates a SessionStatus from its string value.
func NewSessionStatus(value string) (SessionStatus, error) {
	if _, ok := validSessionStatuses[value]; !ok {
		return SessionStatus{}, fmt.Errorf("invalid session status: %q", value)
	}
	return SessionStatus{value: value}, nil
}

func SessionActive() SessionStatus    { return SessionStatus{value: "active"} }
func SessionCompleted() SessionStatus { return SessionStatus{value: "completed"} }
func SessionAbandoned() SessionStatus { return SessionStatus{value: "abandoned"} }

// String returns the string value of the status.
func (s SessionStatus) String() string { return s.value }

// IsZero reports whether the status is the zero value.
func (s SessionStatus) IsZero() bool { return s.value == "" }

// Equal reports whether two statuses are the same.
func (s SessionStatus) Equal(other SessionStatus) bool { return s.value == other.value }
