package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/service"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// SubmitLoanApplicationUseCase creates an application, runs it through
// the underwriting ladder and returns the stored outcome. Submission
// always resolves immediately; pending is never observed by a caller.
type SubmitLoanApplicationUseCase struct {
	users     port.UserRepository
	sessions  port.ChatSessionRepository
	calc      *service.AffordabilityCalculator
	lifecycle *LoanLifecycle
	logger    *slog.Logger
}

// NewSubmitLoanApplicationUseCase creates a SubmitLoanApplicationUseCase.
func NewSubmitLoanApplicationUseCase(
	users port.UserRepository,
	sessions port.ChatSessionRepository,
	calc *service.AffordabilityCalculator,
	lifecycle *LoanLifecycle,
	logger *slog.Logger,
) *SubmitLoanApplicationUseCase {
	return &SubmitLoanApplicationUseCase{
		users:     users,
		sessions:  sessions,
		calc:      calc,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Execute submits and underwrites the application.
func (uc *SubmitLoanApplicationUseCase) Execute(ctx context.Context, req dto.SubmitLoanApplicationRequest) (dto.SubmitLoanApplicationResponse, error) {
	// 1. Validate the request shape.
	if err := dto.Validate(req); err != nil {
		return dto.SubmitLoanApplicationResponse{}, fmt.Errorf("invalid application request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.SubmitLoanApplicationResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	// 2. Load the applicant.
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.SubmitLoanApplicationResponse{}, err
	}

	// 3. Fix the rate from the credit tier and compute the repayment
	// figures. These never change after submission.
	amount := decimal.NewFromFloat(req.Amount)
	rate := service.RateForScore(user.CreditScore())
	emi, err := uc.calc.ComputeEMI(amount, rate, req.TenureMonths)
	if err != nil {
		return dto.SubmitLoanApplicationResponse{}, err
	}

	// 4. Snapshot affordability when income is on file.
	var snapshot *valueobject.AffordabilitySnapshot
	if income := user.Profile().MonthlyIncome; income != nil {
		report, err := uc.calc.Assess(*income, user.Profile().ExistingEMI, amount, req.TenureMonths, rate)
		if err != nil {
			return dto.SubmitLoanApplicationResponse{}, err
		}
		snapshot = &report
	}

	// 5. Create the aggregate and resolve it through the ladder.
	app, err := model.NewLoanApplication(userID, amount, req.TenureMonths, rate, req.Purpose, emi, snapshot)
	if err != nil {
		return dto.SubmitLoanApplicationResponse{}, err
	}
	decided, decision, err := uc.lifecycle.Decide(ctx, app, user)
	if err != nil {
		return dto.SubmitLoanApplicationResponse{}, err
	}

	// 6. Link the application to the originating chat session, if any.
	if req.SessionID != "" {
		uc.linkSession(ctx, req.SessionID, userID, decided.ID())
	}

	return dto.SubmitLoanApplicationResponse{
		Application:          toApplicationResponse(decided),
		Message:              decision.Message,
		Approved:             decision.Approved,
		RequiresDocuments:    decision.RequiresDocuments,
		RequiresVerification: decision.RequiresVerification,
	}, nil
}

// linkSession is best-effort; a broken link never fails the submission.
func (uc *SubmitLoanApplicationUseCase) linkSession(ctx context.Context, sessionID string, userID, applicationID uuid.UUID) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		uc.logger.Warn("invalid session id on submission", "session_id", sessionID)
		return
	}
	session, err := uc.sessions.FindByID(ctx, id)
	if err != nil || session.UserID() != userID {
		uc.logger.Warn("session lookup failed on submission", "session_id", sessionID, "error", err)
		return
	}
	linked, err := session.LinkApplication(applicationID)
	if err != nil {
		uc.logger.Warn("linking session failed", "session_id", sessionID, "error", err)
		return
	}
	if err := uc.sessions.Save(ctx, linked); err != nil {
		uc.logger.Warn("saving linked session failed", "session_id", sessionID, "error", err)
	}
}
