package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepository struct {
	saveFunc        func(ctx context.Context, user model.User) error
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (model.User, error)
	savedUsers      []model.User
}

func (m *mockUserRepository) Save(ctx context.Context, user model.User) error {
	m.savedUsers = append(m.savedUsers, user)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.User{}, port.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return model.User{}, port.ErrUserNotFound
}

type mockOTPRepository struct {
	saveFunc           func(ctx context.Context, otp model.OTP) error
	findCandidatesFunc func(ctx context.Context, userID uuid.UUID, otpType valueobject.OTPType, code string) ([]model.OTP, error)
	markVerifiedFunc   func(ctx context.Context, id uuid.UUID) (bool, error)
	savedOTPs          []model.OTP
}

func (m *mockOTPRepository) Save(ctx context.Context, otp model.OTP) error {
	m.savedOTPs = append(m.savedOTPs, otp)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, otp)
	}
	return nil
}

func (m *mockOTPRepository) FindCandidates(ctx context.Context, userID uuid.UUID, otpType valueobject.OTPType, code string) ([]model.OTP, error) {
	if m.findCandidatesFunc != nil {
		return m.findCandidatesFunc(ctx, userID, otpType, code)
	}
	return nil, nil
}

func (m *mockOTPRepository) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.markVerifiedFunc != nil {
		return m.markVerifiedFunc(ctx, id)
	}
	return true, nil
}

type mockLoanApplicationRepository struct {
	saveFunc         func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (model.LoanApplication, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error)
	savedApps        []model.LoanApplication
}

func (m *mockLoanApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	m.savedApps = append(m.savedApps, app)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	return nil
}

func (m *mockLoanApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanApplication{}, port.ErrApplicationNotFound
}

func (m *mockLoanApplicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

type mockChatSessionRepository struct {
	saveFunc         func(ctx context.Context, session model.ChatSession) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (model.ChatSession, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error)
	savedSessions    []model.ChatSession
}

func (m *mockChatSessionRepository) Save(ctx context.Context, session model.ChatSession) error {
	m.savedSessions = append(m.savedSessions, session)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, session)
	}
	return nil
}

func (m *mockChatSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.ChatSession, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.ChatSession{}, port.ErrSessionNotFound
}

func (m *mockChatSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

type mockChatMessageRepository struct {
	saveFunc            func(ctx context.Context, message model.ChatMessage) error
	findBySessionIDFunc func(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error)
	savedMessages       []model.ChatMessage
}

func (m *mockChatMessageRepository) Save(ctx context.Context, message model.ChatMessage) error {
	m.savedMessages = append(m.savedMessages, message)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, message)
	}
	return nil
}

func (m *mockChatMessageRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	if m.findBySessionIDFunc != nil {
		return m.findBySessionIDFunc(ctx, sessionID)
	}
	return m.savedMessages, nil
}

type mockDocumentRepository struct {
	saveFunc           func(ctx context.Context, document model.Document) error
	findByUserIDFunc   func(ctx context.Context, userID uuid.UUID) ([]model.Document, error)
	hasSalaryProofFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
	savedDocuments     []model.Document
}

func (m *mockDocumentRepository) Save(ctx context.Context, document model.Document) error {
	m.savedDocuments = append(m.savedDocuments, document)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, document)
	}
	return nil
}

func (m *mockDocumentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Document, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) HasSalaryProof(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.hasSalaryProofFunc != nil {
		return m.hasSalaryProofFunc(ctx, userID)
	}
	return false, nil
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
	published   []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	m.published = append(m.published, evts...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	return nil
}

type mockTextGenerator struct {
	generateTextFunc func(ctx context.Context, system, prompt string) (string, error)
	generateJSONFunc func(ctx context.Context, system, prompt string, into any) error
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	if m.generateTextFunc != nil {
		return m.generateTextFunc(ctx, system, prompt)
	}
	return "generated reply", nil
}

func (m *mockTextGenerator) GenerateJSON(ctx context.Context, system, prompt string, into any) error {
	if m.generateJSONFunc != nil {
		return m.generateJSONFunc(ctx, system, prompt, into)
	}
	return nil
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, destination, subject, body string, attachment []byte) error
	notified   []string
}

func (m *mockNotifier) Notify(ctx context.Context, destination, subject, body string, attachment []byte) error {
	m.notified = append(m.notified, destination)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, destination, subject, body, attachment)
	}
	return nil
}

type mockSanctionRenderer struct {
	renderFunc func(ctx context.Context, app model.LoanApplication, user model.User) (string, error)
	rendered   []uuid.UUID
}

func (m *mockSanctionRenderer) Render(ctx context.Context, app model.LoanApplication, user model.User) (string, error) {
	m.rendered = append(m.rendered, app.ID())
	if m.renderFunc != nil {
		return m.renderFunc(ctx, app, user)
	}
	return "sanctions/" + app.ID().String() + ".html", nil
}

type mockCreditBureau struct {
	fetchFunc func(ctx context.Context, email, phone string) (port.CreditSnapshot, error)
}

func (m *mockCreditBureau) FetchSnapshot(ctx context.Context, email, phone string) (port.CreditSnapshot, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, email, phone)
	}
	return port.CreditSnapshot{}, nil
}

type mockDocumentStorage struct {
	storeFunc func(ctx context.Context, userID, filename string, data []byte) (string, error)
	loadFunc  func(ctx context.Context, ref string) ([]byte, error)
}

func (m *mockDocumentStorage) Store(ctx context.Context, userID, filename string, data []byte) (string, error) {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, userID, filename, data)
	}
	return "documents/" + userID + "/" + filename, nil
}

func (m *mockDocumentStorage) Load(ctx context.Context, ref string) ([]byte, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, ref)
	}
	return nil, nil
}
