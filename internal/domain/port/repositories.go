package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// UserRepository persists User aggregates.
type UserRepository interface {
	Save(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// OTPRepository persists one-time codes. MarkVerified must be atomic at
// the single-record level: it reports false when the record was already
// consumed, so concurrent verify attempts have exactly one winner.
type OTPRepository interface {
	Save(ctx context.Context, otp model.OTP) error
	FindCandidates(ctx context.Context, userID uuid.UUID, otpType valueobject.OTPType, code string) ([]model.OTP, error)
	MarkVerified(ctx context.Context, id uuid.UUID) (bool, error)
}

// LoanApplicationRepository persists LoanApplication aggregates with
// optimistic locking on the version column.
type LoanApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error)
}

// ChatSessionRepository persists ChatSession aggregates.
type ChatSessionRepository interface {
	Save(ctx context.Context, session model.ChatSession) error
	FindByID(ctx context.Context, id uuid.UUID) (model.ChatSession, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error)
}

// ChatMessageRepository persists conversation turns. FindBySessionID
// returns messages in strictly increasing creation order.
type ChatMessageRepository interface {
	Save(ctx context.Context, message model.ChatMessage) error
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error)
}

// DocumentRepository persists evidence artifacts.
type DocumentRepository interface {
	Save(ctx context.Context, document model.Document) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Document, error)
	HasSalaryProof(ctx context.Context, userID uuid.UUID) (bool, error)
}
