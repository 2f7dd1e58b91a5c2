package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// maxDocumentSize bounds uploaded evidence at 10 MiB.
const maxDocumentSize = 10 << 20

// ErrDocumentTooLarge is returned when an upload exceeds the size bound.
var ErrDocumentTooLarge = fmt.Errorf("document exceeds the %d byte limit", maxDocumentSize)

// UploadDocumentUseCase stores evidence bytes and re-evaluates the
// linked application, if any, against the new evidence.
type UploadDocumentUseCase struct {
	users     port.UserRepository
	documents port.DocumentRepository
	storage   port.DocumentStorage
	lifecycle *LoanLifecycle
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUploadDocumentUseCase creates an UploadDocumentUseCase.
func NewUploadDocumentUseCase(
	users port.UserRepository,
	documents port.DocumentRepository,
	storage port.DocumentStorage,
	lifecycle *LoanLifecycle,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		users:     users,
		documents: documents,
		storage:   storage,
		lifecycle: lifecycle,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute stores the document.
func (uc *UploadDocumentUseCase) Execute(ctx context.Context, req dto.UploadDocumentRequest) (dto.UploadDocumentResponse, error) {
	// 1. Validate shape, type allow-list and size bound.
	if err := dto.Validate(req); err != nil {
		return dto.UploadDocumentResponse{}, fmt.Errorf("invalid upload request: %w", err)
	}
	if len(req.Data) > maxDocumentSize {
		return dto.UploadDocumentResponse{}, ErrDocumentTooLarge
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.UploadDocumentResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	docType, err := valueobject.NewDocumentType(req.Type)
	if err != nil {
		return dto.UploadDocumentResponse{}, err
	}
	var applicationID *uuid.UUID
	if req.ApplicationID != "" {
		id, err := uuid.Parse(req.ApplicationID)
		if err != nil {
			return dto.UploadDocumentResponse{}, fmt.Errorf("invalid application id: %w", err)
		}
		applicationID = &id
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.UploadDocumentResponse{}, err
	}

	// 2. Store the bytes, then the metadata record.
	ref, err := uc.storage.Store(ctx, userID.String(), req.FileName, req.Data)
	if err != nil {
		return dto.UploadDocumentResponse{}, fmt.Errorf("store document: %w", err)
	}
	doc, err := model.NewDocument(userID, applicationID, docType, ref)
	if err != nil {
		return dto.UploadDocumentResponse{}, err
	}
	if err := uc.documents.Save(ctx, doc); err != nil {
		return dto.UploadDocumentResponse{}, fmt.Errorf("save document: %w", err)
	}
	if err := uc.publisher.Publish(ctx, doc.DomainEvents()...); err != nil {
		uc.logger.Error("publishing document events failed", "document_id", doc.ID(), "error", err)
	}

	// 3. A salary slip is income evidence; flip the profile flag.
	if docType.IsSalaryProof() && !user.Profile().IncomeVerified {
		if err := uc.users.Save(ctx, user.MarkIncomeVerified()); err != nil {
			uc.logger.Error("marking income verified failed", "user_id", userID, "error", err)
		}
	}

	resp := dto.UploadDocumentResponse{
		DocumentID: doc.ID().String(),
		StorageRef: ref,
	}

	// 4. New evidence arrived; re-run underwriting for the linked case.
	if applicationID != nil {
		app, reevaluated, err := uc.lifecycle.Reevaluate(ctx, *applicationID, userID)
		if err != nil {
			if errors.Is(err, port.ErrApplicationNotFound) {
				return dto.UploadDocumentResponse{}, err
			}
			uc.logger.Error("re-evaluation after upload failed", "application_id", *applicationID, "error", err)
			return resp, nil
		}
		resp.Reevaluated = reevaluated
		resp.NewStatus = app.Status().String()
	}
	return resp, nil
}
