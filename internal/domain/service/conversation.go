package service

import (
	"strings"

	"github.com/finncap/origination/internal/domain/model"
)

// contextWindow is how many recent turns are replayed into the
// coordination prompt.
const contextWindow = 5

// loanIntentTokens is the vocabulary that triggers need discovery from
// the initial stage.
var loanIntentTokens = []string{"loan", "need", "want", "borrow", "money", "apply"}

// ContainsLoanIntent reports whether a user message carries loan-intent
// vocabulary. Matching is case-insensitive over whitespace-split tokens
// with surrounding punctuation stripped.
func ContainsLoanIntent(message string) bool {
	for _, token := range strings.Fields(strings.ToLower(message)) {
		token = strings.Trim(token, ".,!?;:'\"()")
		for _, keyword := range loanIntentTokens {
			if token == keyword {
				return true
			}
		}
	}
	return false
}

// ContextTurn is one prior message in the coordination bundle.
type ContextTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContextBundle is the structured input to the coordination reply. Its
// construction is deterministic; only the generated reply text is not.
type ContextBundle struct {
	UserName          string        `json:"user_name"`
	CreditScore       int           `json:"credit_score"`
	PreApprovedLimit  string        `json:"pre_approved_limit"`
	PhoneVerified     bool          `json:"phone_verified"`
	EmailVerified     bool          `json:"email_verified"`
	KYCVerified       bool          `json:"kyc_verified"`
	IncomeOnFile      bool          `json:"income_on_file"`
	MonthlyIncome     string        `json:"monthly_income,omitempty"`
	ExistingEMI       string        `json:"existing_emi"`
	Stage             string        `json:"stage"`
	DiscoveredIntent  string        `json:"discovered_intent,omitempty"`
	RecentMessages    []ContextTurn `json:"recent_messages"`
}

// BuildContextBundle assembles the coordination context for one turn.
// History must already be in creation order; only the last five turns
// are carried.
func BuildContextBundle(user model.User, session model.ChatSession, history []model.ChatMessage) ContextBundle {
	bundle := ContextBundle{
		UserName:         user.FullName(),
		CreditScore:      user.CreditScore(),
		PreApprovedLimit: user.PreApprovedLimit().StringFixed(2),
		PhoneVerified:    user.PhoneVerified(),
		EmailVerified:    user.EmailVerified(),
		KYCVerified:      user.KYCVerified(),
		ExistingEMI:      user.Profile().ExistingEMI.StringFixed(2),
		Stage:            session.Stage().String(),
		DiscoveredIntent: session.DiscoveredIntent(),
	}
	if income := user.Profile().MonthlyIncome; income != nil {
		bundle.IncomeOnFile = true
		bundle.MonthlyIncome = income.StringFixed(2)
	}

	start := 0
	if len(history) > contextWindow {
		start = len(history) - contextWindow
	}
	for _, msg := range history[start:] {
		bundle.RecentMessages = append(bundle.RecentMessages, ContextTurn{
			Role:    msg.Role().String(),
			Content: msg.Content(),
		})
	}
	return bundle
}
