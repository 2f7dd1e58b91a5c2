package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/service"
)

// CheckAffordabilityUseCase runs a what-if affordability assessment at
// the rate tier implied by the caller's credit score.
type CheckAffordabilityUseCase struct {
	users port.UserRepository
	calc  *service.AffordabilityCalculator
}

// NewCheckAffordabilityUseCase creates a CheckAffordabilityUseCase.
func NewCheckAffordabilityUseCase(users port.UserRepository, calc *service.AffordabilityCalculator) *CheckAffordabilityUseCase {
	return &CheckAffordabilityUseCase{users: users, calc: calc}
}

// Execute runs the assessment.
func (uc *CheckAffordabilityUseCase) Execute(ctx context.Context, req dto.CheckAffordabilityRequest) (dto.AffordabilityResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AffordabilityResponse{}, fmt.Errorf("invalid affordability request: %w", err)
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.AffordabilityResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return dto.AffordabilityResponse{}, err
	}

	rate := service.RateForScore(user.CreditScore())
	report, err := uc.calc.Assess(
		decimal.NewFromFloat(req.MonthlyIncome),
		decimal.NewFromFloat(req.ExistingEMI),
		decimal.NewFromFloat(req.LoanAmount),
		req.TenureMonths,
		rate,
	)
	if err != nil {
		return dto.AffordabilityResponse{}, err
	}

	resp := toAffordabilityResponse(report)
	resp.InterestRate = rate.StringFixed(2)
	return resp, nil
}
