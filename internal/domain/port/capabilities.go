package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/pkg/events"
)

// EventPublisher emits domain events after aggregates are saved.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// TextGenerator is the external text-generation capability. It may fail
// or return unparsable content; callers degrade to fixed fallbacks.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	GenerateJSON(ctx context.Context, system, prompt string, into any) error
}

// Notifier delivers a message to a user. Delivery failure is logged by
// the caller and never fails the operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, destination, subject, body string, attachment []byte) error
}

// SanctionRenderer produces the formal approval artifact for an
// approved application and returns its storage reference.
type SanctionRenderer interface {
	Render(ctx context.Context, app model.LoanApplication, user model.User) (string, error)
}

// CreditSnapshot is the bureau result captured once at registration.
type CreditSnapshot struct {
	CreditScore      int
	PreApprovedLimit decimal.Decimal
}

// CreditBureau supplies the creditworthiness snapshot for a new user.
type CreditBureau interface {
	FetchSnapshot(ctx context.Context, email, phone string) (CreditSnapshot, error)
}

// DocumentStorage stores uploaded evidence bytes and returns a
// reference usable for later retrieval.
type DocumentStorage interface {
	Store(ctx context.Context, userID, filename string, data []byte) (string, error)
	Load(ctx context.Context, ref string) ([]byte, error)
}
