package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/service"
)

func submitRequest(user model.User, amount float64, tenure int) dto.SubmitLoanApplicationRequest {
	return dto.SubmitLoanApplicationRequest{
		UserID:       user.ID().String(),
		Amount:       amount,
		TenureMonths: tenure,
		Purpose:      "personal expenses",
	}
}

type submissionFixture struct {
	users     *mockUserRepository
	apps      *mockLoanApplicationRepository
	documents *mockDocumentRepository
	sessions  *mockChatSessionRepository
	publisher *mockEventPublisher
	renderer  *mockSanctionRenderer
	sanctions *mockDocumentStorage
	notifier  *mockNotifier
	usecase   *SubmitLoanApplicationUseCase
}

func newSubmissionFixture(user model.User) *submissionFixture {
	f := &submissionFixture{
		users:     &mockUserRepository{},
		apps:      &mockLoanApplicationRepository{},
		documents: &mockDocumentRepository{},
		sessions:  &mockChatSessionRepository{},
		publisher: &mockEventPublisher{},
		renderer:  &mockSanctionRenderer{},
		sanctions: &mockDocumentStorage{},
		notifier:  &mockNotifier{},
	}
	f.users.findByIDFunc = func(_ context.Context, id uuid.UUID) (model.User, error) {
		return user, nil
	}
	calc := service.NewAffordabilityCalculator()
	lifecycle := NewLoanLifecycle(
		f.apps, f.users, f.documents,
		service.NewUnderwritingEngine(calc),
		f.publisher, f.renderer, f.sanctions, f.notifier,
		discardLogger(),
	)
	f.usecase = NewSubmitLoanApplicationUseCase(f.users, f.sessions, calc, lifecycle, discardLogger())
	return f
}

func verifiedUser(creditScore int, limit int64, monthlyIncome *int64) model.User {
	profile := model.FinancialProfile{ExistingEMI: decimal.Zero}
	if monthlyIncome != nil {
		income := decimal.NewFromInt(*monthlyIncome)
		profile.MonthlyIncome = &income
	}
	now := time.Now().UTC()
	return model.ReconstructUser(
		uuid.New(), "borrower@example.com", "+919876543210", "Borrower", "hash",
		model.ContactDetails{},
		creditScore, decimal.NewFromInt(limit),
		true, true, true,
		nil, nil,
		profile, now, now, 1,
	)
}

func unverifiedUser(creditScore int, limit int64) model.User {
	now := time.Now().UTC()
	return model.ReconstructUser(
		uuid.New(), "borrower@example.com", "+919876543210", "Borrower", "hash",
		model.ContactDetails{},
		creditScore, decimal.NewFromInt(limit),
		false, true, false,
		nil, nil,
		model.FinancialProfile{ExistingEMI: decimal.Zero}, now, now, 1,
	)
}

func TestSubmitLoanApplication_InstantApproval(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 250000, 36))
	require.NoError(t, err)

	assert.True(t, resp.Approved)
	assert.Equal(t, "approved", resp.Application.Status)
	assert.Equal(t, "11.50", resp.Application.InterestRate)
	// Approval triggers the sanction render and the notification.
	assert.Len(t, f.renderer.rendered, 1)
	assert.Equal(t, []string{"borrower@example.com"}, f.notifier.notified)
}

func TestSubmitLoanApplication_ConditionalTierWithoutDocuments(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 500000, 36))
	require.NoError(t, err)

	assert.False(t, resp.Approved)
	assert.True(t, resp.RequiresDocuments)
	assert.Equal(t, "requires_documents", resp.Application.Status)
	assert.Empty(t, f.renderer.rendered)
	assert.Empty(t, f.notifier.notified)
}

func TestSubmitLoanApplication_CreditFloorRejection(t *testing.T) {
	user := verifiedUser(650, 300000, nil)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 100000, 24))
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Application.Status)
	assert.NotEmpty(t, resp.Application.RejectionReason)
}

func TestSubmitLoanApplication_CeilingRejection(t *testing.T) {
	user := verifiedUser(800, 300000, nil)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 700000, 36))
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Application.Status)
	assert.Contains(t, resp.Message, "exceeds")
}

func TestSubmitLoanApplication_UnverifiedUser(t *testing.T) {
	user := unverifiedUser(800, 300000)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 100000, 24))
	require.NoError(t, err)

	assert.True(t, resp.RequiresVerification)
	assert.Equal(t, "requires_verification", resp.Application.Status)
}

func TestSubmitLoanApplication_AffordabilitySnapshotStored(t *testing.T) {
	income := int64(80000)
	user := verifiedUser(780, 300000, &income)
	f := newSubmissionFixture(user)

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 250000, 36))
	require.NoError(t, err)

	require.NotNil(t, resp.Application.Affordability)
	assert.True(t, resp.Application.Affordability.IsAffordable)
	assert.Equal(t, "approved", resp.Application.Status)
}

func TestSubmitLoanApplication_ApprovalEmailAttachesLetter(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	letter := []byte("<html>sanction letter</html>")
	f.sanctions.loadFunc = func(_ context.Context, _ string) ([]byte, error) {
		return letter, nil
	}
	var attached []byte
	f.notifier.notifyFunc = func(_ context.Context, _, _, _ string, attachment []byte) error {
		attached = attachment
		return nil
	}

	_, err := f.usecase.Execute(context.Background(), submitRequest(user, 250000, 36))
	require.NoError(t, err)

	assert.Equal(t, letter, attached)
}

func TestSubmitLoanApplication_UnreadableLetterStillNotifies(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	f.sanctions.loadFunc = func(_ context.Context, _ string) ([]byte, error) {
		return nil, assert.AnError
	}
	var attached []byte
	f.notifier.notifyFunc = func(_ context.Context, _, _, _ string, attachment []byte) error {
		attached = attachment
		return nil
	}

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 250000, 36))
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Application.Status)
	assert.Len(t, f.notifier.notified, 1)
	assert.Nil(t, attached)
}

func TestSubmitLoanApplication_RenderFailureKeepsApproval(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)
	f.renderer.renderFunc = func(_ context.Context, _ model.LoanApplication, _ model.User) (string, error) {
		return "", assert.AnError
	}
	f.notifier.notifyFunc = func(_ context.Context, _, _, _ string, _ []byte) error {
		return assert.AnError
	}

	resp, err := f.usecase.Execute(context.Background(), submitRequest(user, 250000, 36))
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Application.Status)
	assert.Empty(t, resp.Application.SanctionRef)
}

func TestSubmitLoanApplication_Validation(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	req := submitRequest(user, 0, 36)
	_, err := f.usecase.Execute(context.Background(), req)
	assert.Error(t, err)

	req = submitRequest(user, 100000, 0)
	_, err = f.usecase.Execute(context.Background(), req)
	assert.Error(t, err)

	req = submitRequest(user, 100000, 36)
	req.Purpose = ""
	_, err = f.usecase.Execute(context.Background(), req)
	assert.Error(t, err)
	assert.Empty(t, f.apps.savedApps)
}

func TestSubmitLoanApplication_LinksSession(t *testing.T) {
	user := verifiedUser(780, 300000, nil)
	f := newSubmissionFixture(user)

	session, err := model.NewChatSession(user.ID())
	require.NoError(t, err)
	f.sessions.findByIDFunc = func(_ context.Context, id uuid.UUID) (model.ChatSession, error) {
		return session, nil
	}

	req := submitRequest(user, 250000, 36)
	req.SessionID = session.ID().String()
	_, err = f.usecase.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.sessions.savedSessions, 1)
	require.NotNil(t, f.sessions.savedSessions[0].ApplicationID())
}
