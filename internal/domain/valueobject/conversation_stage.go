package valueobject

import (
	"errors"
	"fmt"
)

// ErrStageRegression is returned when a session stage would move backwards.
var ErrStageRegression = errors.New("conversation stage cannot regress")

// ConversationStage represents how far a chat session has progressed
// through the origination funnel. Stages are ordered and advance
// forward only.
type ConversationStage struct {
	value string
}

var stageOrder = map[string]int{
	"initial":            0,
	"need_discovery":     1,
	"affordability_check": 2,
	"verification":       3,
	"loan_offer":         4,
}

// NewConversationStage creates a ConversationStage from its string value.
func NewConversationStage(value string) (ConversationStage, error) {
	if _, ok := stageOrder[value]; !ok {
		return ConversationStage{}, fmt.Errorf("invalid conversation stage: %q", value)
	}
	return ConversationStage{value: value}, nil
}

func StageInitial() ConversationStage            { return ConversationStage{value: "initial"} }
func StageNeedDiscovery() ConversationStage      { return ConversationStage{value: "need_discovery"} }
func StageAffordabilityCheck() ConversationStage { return ConversationStage{value: "affordability_check"} }
func StageVerification() ConversationStage       { return ConversationStage{value: "verification"} }
func StageLoanOffer() ConversationStage          { return ConversationStage{value: "loan_offer"} }

// String returns the string value of the stage.
func (s ConversationStage) String() string { return s.value }

// IsZero reports whether the stage is the zero value.
func (s ConversationStage) IsZero() bool { return s.value == "" }

// Equal reports whether two stages are the same.
func (s ConversationStage) Equal(other ConversationStage) bool { return s.value == other.value }

// Before reports whether s is strictly earlier in the funnel than other.
func (s ConversationStage) Before(other ConversationStage) bool {
	return stageOrder[s.value] < stageOrder[other.value]
}
