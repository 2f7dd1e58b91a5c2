package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/port"
)

// ApplicationQueryUseCase reads applications owned by the caller.
type ApplicationQueryUseCase struct {
	apps port.LoanApplicationRepository
}

// NewApplicationQueryUseCase creates an ApplicationQueryUseCase.
func NewApplicationQueryUseCase(apps port.LoanApplicationRepository) *ApplicationQueryUseCase {
	return &ApplicationQueryUseCase{apps: apps}
}

// Get fetches one application, enforcing ownership.
func (uc *ApplicationQueryUseCase) Get(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("invalid application query: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("invalid application id: %w", err)
	}

	app, err := uc.apps.FindByID(ctx, appID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	if app.UserID() != userID {
		return dto.ApplicationResponse{}, port.ErrApplicationNotFound
	}
	return toApplicationResponse(app), nil
}

// List fetches all applications of the caller, newest first per the
// repository ordering.
func (uc *ApplicationQueryUseCase) List(ctx context.Context, req dto.ListApplicationsRequest) (dto.ListApplicationsResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("invalid list query: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	apps, err := uc.apps.FindByUserID(ctx, userID)
	if err != nil {
		return dto.ListApplicationsResponse{}, err
	}

	resp := dto.ListApplicationsResponse{}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(app))
	}
	return resp, nil
}
