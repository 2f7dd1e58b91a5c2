package valueobject

import "fmt"

// MessageRole identifies who authored a chat message.
type MessageRole struct {
	value string
}

var validMessageRoles = map[string]struct{}{
	"user":      {},
	"assistant": {},
	"system":    {},
}

// NewMessageRole creates a MessageRole from its string value.
func NewMessageRole(value string) (MessageRole, error) {
	if _, ok := validMessageRoles[value]; !ok {
		return MessageRole{}, fmt.Errorf("invalid message role: %q", value)
	}
	return MessageRole{value: value}, nil
}

func RoleUser() MessageRole      { return MessageRole{value: "user"} }
func RoleAssistant() MessageRole { return MessageRole{value: "assistant"} }
func RoleSystem() MessageRole    { return MessageRole{value: "system"} }

// String returns the string value of the role.
func (r MessageRole) String() string { return r.value }

// IsZero reports whether the role is the zero value.
func (r MessageRole) IsZero() bool { return r.value == "" }

// Equal reports whether two roles are the same.
func (r MessageRole) Equal(other MessageRole) bool { return r.value == other.value }
