// Package event defines the domain events emitted by origination
// aggregates. Events are collected on the aggregate during a state
// transition and published after the aggregate is saved.
package event

import (
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/pkg/events"
)

// Event type names, used as the Kafka message type header.
const (
	TypeUserRegistered           = "origination.user.registered"
	TypeUserVerified             = "origination.user.verified"
	TypeOTPIssued                = "origination.otp.issued"
	TypeApplicationSubmitted     = "origination.application.submitted"
	TypeApplicationDecided       = "origination.application.decided"
	TypeDocumentUploaded         = "origination.document.uploaded"
	TypeSanctionLetterGenerated  = "origination.application.sanction_letter_generated"
	TypeChatSessionStarted       = "origination.chat.session_started"
	TypeChatStageAdvanced        = "origination.chat.stage_advanced"
)

// UserRegistered is emitted when a new user account is created with its
// credit snapshot.
type UserRegistered struct {
	events.BaseEvent
	UserID           string          `json:"user_id"`
	Email            string          `json:"email"`
	CreditScore      int             `json:"credit_score"`
	PreApprovedLimit decimal.Decimal `json:"pre_approved_limit"`
}

// NewUserRegistered creates a UserRegistered event.
func NewUserRegistered(userID, email string, creditScore int, limit decimal.Decimal) UserRegistered {
	return UserRegistered{
		BaseEvent:        events.NewBaseEvent(TypeUserRegistered, userID, "User"),
		UserID:           userID,
		Email:            email,
		CreditScore:      creditScore,
		PreApprovedLimit: limit,
	}
}

// UserVerified is emitted when a verification flag flips true. Channel
// is "phone", "email" or "kyc".
type UserVerified struct {
	events.BaseEvent
	UserID  string `json:"user_id"`
	Channel string `json:"channel"`
}

// NewUserVerified creates a UserVerified event.
func NewUserVerified(userID, channel string) UserVerified {
	return UserVerified{
		BaseEvent: events.NewBaseEvent(TypeUserVerified, userID, "User"),
		UserID:    userID,
		Channel:   channel,
	}
}

// OTPIssued is emitted when a one-time code is generated. The code
// itself never appears in the event payload.
type OTPIssued struct {
	events.BaseEvent
	UserID  string `json:"user_id"`
	Channel string `json:"channel"`
}

// NewOTPIssued creates an OTPIssued event.
func NewOTPIssued(otpID, userID, channel string) OTPIssued {
	return OTPIssued{
		BaseEvent: events.NewBaseEvent(TypeOTPIssued, otpID, "OTP"),
		UserID:    userID,
		Channel:   channel,
	}
}

// ApplicationSubmitted is emitted when a loan application is created.
type ApplicationSubmitted struct {
	events.BaseEvent
	ApplicationID string          `json:"application_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	TenureMonths  int             `json:"tenure_months"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	Purpose       string          `json:"purpose"`
}

// NewApplicationSubmitted creates an ApplicationSubmitted event.
func NewApplicationSubmitted(applicationID, userID string, amount decimal.Decimal, tenureMonths int, rate decimal.Decimal, purpose string) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:     events.NewBaseEvent(TypeApplicationSubmitted, applicationID, "LoanApplication"),
		ApplicationID: applicationID,
		UserID:        userID,
		Amount:        amount,
		TenureMonths:  tenureMonths,
		InterestRate:  rate,
		Purpose:       purpose,
	}
}

// ApplicationDecided is emitted whenever the underwriting ladder
// resolves or re-resolves an application's status.
type ApplicationDecided struct {
	events.BaseEvent
	ApplicationID   string `json:"application_id"`
	UserID          string `json:"user_id"`
	PreviousStatus  string `json:"previous_status"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// NewApplicationDecided creates an ApplicationDecided event.
func NewApplicationDecided(applicationID, userID, previousStatus, status, rejectionReason string) ApplicationDecided {
	return ApplicationDecided{
		BaseEvent:       events.NewBaseEvent(TypeApplicationDecided, applicationID, "LoanApplication"),
		ApplicationID:   applicationID,
		UserID:          userID,
		PreviousStatus:  previousStatus,
		Status:          status,
		RejectionReason: rejectionReason,
	}
}

// DocumentUploaded is emitted when evidence is stored for a user.
type DocumentUploaded struct {
	events.BaseEvent
	DocumentID    string `json:"document_id"`
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id,omitempty"`
	DocumentType  string `json:"document_type"`
}

// NewDocumentUploaded creates a DocumentUploaded event.
func NewDocumentUploaded(documentID, userID, applicationID, documentType string) DocumentUploaded {
	return DocumentUploaded{
		BaseEvent:     events.NewBaseEvent(TypeDocumentUploaded, documentID, "Document"),
		DocumentID:    documentID,
		UserID:        userID,
		ApplicationID: applicationID,
		DocumentType:  documentType,
	}
}

// SanctionLetterGenerated is emitted after the sanction artifact for an
// approved application has been rendered.
type SanctionLetterGenerated struct {
	events.BaseEvent
	ApplicationID string `json:"application_id"`
	UserID        string `json:"user_id"`
	ArtifactRef   string `json:"artifact_ref"`
}

// NewSanctionLetterGenerated creates a SanctionLetterGenerated event.
func NewSanctionLetterGenerated(applicationID, userID, artifactRef string) SanctionLetterGenerated {
	return SanctionLetterGenerated{
		BaseEvent:     events.NewBaseEvent(TypeSanctionLetterGenerated, applicationID, "LoanApplication"),
		ApplicationID: applicationID,
		UserID:        userID,
		ArtifactRef:   artifactRef,
	}
}

// ChatSessionStarted is emitted when a conversation thread is opened.
type ChatSessionStarted struct {
	events.BaseEvent
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// NewChatSessionStarted creates a ChatSessionStarted event.
func NewChatSessionStarted(sessionID, userID string) ChatSessionStarted {
	return ChatSessionStarted{
		BaseEvent: events.NewBaseEvent(TypeChatSessionStarted, sessionID, "ChatSession"),
		SessionID: sessionID,
		UserID:    userID,
	}
}

// ChatStageAdvanced is emitted when a session moves forward in the
// origination funnel.
type ChatStageAdvanced struct {
	events.BaseEvent
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	FromStage string `json:"from_stage"`
	ToStage   string `json:"to_stage"`
}

// NewChatStageAdvanced creates a ChatStageAdvanced event.
func NewChatStageAdvanced(sessionID, userID, fromStage, toStage string) ChatStageAdvanced {
	return ChatStageAdvanced{
		BaseEvent: events.NewBaseEvent(TypeChatStageAdvanced, sessionID, "ChatSession"),
		SessionID: sessionID,
		UserID:    userID,
		FromStage: fromStage,
		ToStage:   toStage,
	}
}
