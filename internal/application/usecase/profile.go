package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
)

// ProfileUseCase reads and updates the user's profile and declared
// income figures.
type ProfileUseCase struct {
	users port.UserRepository
}

// NewProfileUseCase creates a ProfileUseCase.
func NewProfileUseCase(users port.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users}
}

// Get returns the profile of the given user.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (dto.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// UpdateFinancialProfile replaces the user's declared income figures.
func (uc *ProfileUseCase) UpdateFinancialProfile(ctx context.Context, req dto.UpdateFinancialProfileRequest) (dto.UserResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.UserResponse{}, fmt.Errorf("invalid profile request: %w", err)
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	profile := model.FinancialProfile{
		ExistingEMI:    decimal.NewFromFloat(req.ExistingEMI),
		EmploymentType: req.EmploymentType,
		IncomeVerified: user.Profile().IncomeVerified,
	}
	if req.MonthlyIncome != nil {
		income := decimal.NewFromFloat(*req.MonthlyIncome)
		profile.MonthlyIncome = &income
	}

	updated, err := user.UpdateFinancialProfile(profile)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if err := uc.users.Save(ctx, updated); err != nil {
		return dto.UserResponse{}, fmt.Errorf("save user: %w", err)
	}
	return toUserResponse(updated), nil
}
