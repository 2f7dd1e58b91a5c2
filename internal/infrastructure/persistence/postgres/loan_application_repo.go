package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// LoanApplicationRepository is the pgx implementation of
// port.LoanApplicationRepository.
type LoanApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepository creates a LoanApplicationRepository.
func NewLoanApplicationRepository(pool *pgxpool.Pool) *LoanApplicationRepository {
	return &LoanApplicationRepository{pool: pool}
}

const applicationColumns = `
	id, user_id, amount::text, tenure_months, interest_rate::text, purpose,
	emi::text, total_payable::text, affordability,
	status, rejection_reason, sanction_ref,
	created_at, updated_at, version`

// Save upserts the aggregate with an optimistic check on the version
// column.
func (r *LoanApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	var affordability []byte
	if snap := app.Affordability(); snap != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("marshal affordability snapshot: %w", err)
		}
		affordability = data
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO loan_applications (
			id, user_id, amount, tenure_months, interest_rate, purpose,
			emi, total_payable, affordability,
			status, rejection_reason, sanction_ref,
			created_at, updated_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			rejection_reason = EXCLUDED.rejection_reason,
			sanction_ref = EXCLUDED.sanction_ref,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		WHERE loan_applications.version = EXCLUDED.version - 1`,
		app.ID(), app.UserID(), app.Amount().String(), app.TenureMonths(), app.InterestRate().String(), app.Purpose(),
		app.EMI().String(), app.TotalPayable().String(), affordability,
		app.Status().String(), app.RejectionReason(), app.SanctionRef(),
		app.CreatedAt(), app.UpdatedAt(), app.Version(),
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}
	return nil
}

// FindByID fetches one application.
func (r *LoanApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM loan_applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, port.ErrApplicationNotFound
		}
		return model.LoanApplication{}, err
	}
	return app, nil
}

// FindByUserID fetches a user's applications, newest first.
func (r *LoanApplicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM loan_applications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func scanApplication(row rowScanner) (model.LoanApplication, error) {
	var (
		id, userID                       uuid.UUID
		amountStr, rateStr               string
		tenureMonths                     int
		purpose                          string
		emiStr, totalStr                 string
		affordability                    []byte
		statusStr, rejectionReason, sRef string
		createdAt, updatedAt             time.Time
		version                          int
	)
	err := row.Scan(
		&id, &userID, &amountStr, &tenureMonths, &rateStr, &purpose,
		&emiStr, &totalStr, &affordability,
		&statusStr, &rejectionReason, &sRef,
		&createdAt, &updatedAt, &version,
	)
	if err != nil {
		return model.LoanApplication{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("malformed amount: %w", err)
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("malformed interest_rate: %w", err)
	}
	emi, err := decimal.NewFromString(emiStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("malformed emi: %w", err)
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("malformed total_payable: %w", err)
	}
	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("malformed status for application %s: %w", id, err)
	}

	var snapshot *valueobject.AffordabilitySnapshot
	if len(affordability) > 0 {
		var snap valueobject.AffordabilitySnapshot
		if err := json.Unmarshal(affordability, &snap); err != nil {
			return model.LoanApplication{}, fmt.Errorf("malformed affordability snapshot for application %s: %w", id, err)
		}
		snapshot = &snap
	}

	return model.ReconstructLoanApplication(
		id, userID, amount, tenureMonths, rate, purpose,
		emi, total, snapshot, status, rejectionReason, sRef,
		createdAt, updatedAt, version,
	), nil
}
