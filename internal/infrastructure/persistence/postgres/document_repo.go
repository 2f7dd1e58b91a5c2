package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// DocumentRepository is the pgx implementation of port.DocumentRepository.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Save inserts one evidence record. Documents are immutable.
func (r *DocumentRepository) Save(ctx context.Context, document model.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (id, user_id, application_id, doc_type, storage_ref, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		document.ID(), document.UserID(), document.ApplicationID(),
		document.Type().String(), document.StorageRef(), document.UploadedAt(),
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// FindByUserID fetches a user's documents, newest first.
func (r *DocumentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, application_id, doc_type, storage_ref, uploaded_at
		FROM documents
		WHERE user_id = $1
		ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var documents []model.Document
	for rows.Next() {
		var (
			id, uid       uuid.UUID
			applicationID *uuid.UUID
			typeStr, ref  string
			uploadedAt    time.Time
		)
		if err := rows.Scan(&id, &uid, &applicationID, &typeStr, &ref, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docType, err := valueobject.NewDocumentType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("malformed doc_type for document %s: %w", id, err)
		}
		documents = append(documents, model.ReconstructDocument(id, uid, applicationID, docType, ref, uploadedAt))
	}
	return documents, rows.Err()
}

// HasSalaryProof reports whether any salary proof exists for the user.
// Presence alone is the evidence the underwriting ladder needs.
func (r *DocumentRepository) HasSalaryProof(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE user_id = $1 AND doc_type = $2)`,
		userID, valueobject.DocumentSalarySlip().String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check salary proof: %w", err)
	}
	return exists, nil
}
