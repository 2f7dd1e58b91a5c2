package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// ErrSanctionNotAvailable is returned when the application is not
// approved or its artifact has not been rendered yet.
var ErrSanctionNotAvailable = errors.New("sanction letter not available")

// DownloadSanctionUseCase serves the rendered sanction artifact of an
// approved application.
type DownloadSanctionUseCase struct {
	apps    port.LoanApplicationRepository
	storage port.DocumentStorage
}

// NewDownloadSanctionUseCase creates a DownloadSanctionUseCase. The
// storage must be rooted at the sanction output directory.
func NewDownloadSanctionUseCase(apps port.LoanApplicationRepository, storage port.DocumentStorage) *DownloadSanctionUseCase {
	return &DownloadSanctionUseCase{apps: apps, storage: storage}
}

// Execute fetches the artifact, enforcing ownership and status.
func (uc *DownloadSanctionUseCase) Execute(ctx context.Context, req dto.DownloadSanctionLetterRequest) (dto.DownloadSanctionLetterResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.DownloadSanctionLetterResponse{}, fmt.Errorf("invalid sanction request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.DownloadSanctionLetterResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return dto.DownloadSanctionLetterResponse{}, fmt.Errorf("invalid application id: %w", err)
	}

	app, err := uc.apps.FindByID(ctx, appID)
	if err != nil {
		return dto.DownloadSanctionLetterResponse{}, err
	}
	if app.UserID() != userID {
		return dto.DownloadSanctionLetterResponse{}, port.ErrApplicationNotFound
	}
	if !app.Status().Equal(valueobject.StatusApproved()) || app.SanctionRef() == "" {
		return dto.DownloadSanctionLetterResponse{}, ErrSanctionNotAvailable
	}

	content, err := uc.storage.Load(ctx, app.SanctionRef())
	if err != nil {
		return dto.DownloadSanctionLetterResponse{}, fmt.Errorf("load sanction letter: %w", err)
	}
	return dto.DownloadSanctionLetterResponse{
		FileName: filepath.Base(app.SanctionRef()),
		Content:  content,
	}, nil
}
