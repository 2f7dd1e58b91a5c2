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

// OTPRepository is the pgx implementation of port.OTPRepository.
type OTPRepository struct {
	pool *pgxpool.Pool
}

// NewOTPRepository creates an OTPRepository.
func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

// Save inserts a freshly issued code. Codes are never updated through
// this path; consumption goes through MarkVerified.
func (r *OTPRepository) Save(ctx context.Context, otp model.OTP) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO otps (id, user_id, otp_type, code, verified, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		otp.ID(), otp.UserID(), otp.Type().String(), otp.Code(), otp.Verified(), otp.CreatedAt(), otp.ExpiresAt(),
	)
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

// FindCandidates returns the unconsumed records matching the submitted
// code. Multiple rows may match when the user re-requested a code.
func (r *OTPRepository) FindCandidates(ctx context.Context, userID uuid.UUID, otpType valueobject.OTPType, code string) ([]model.OTP, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, otp_type, code, verified, created_at, expires_at
		FROM otps
		WHERE user_id = $1 AND otp_type = $2 AND code = $3 AND verified = FALSE
		ORDER BY created_at`,
		userID, otpType.String(), code,
	)
	if err != nil {
		return nil, fmt.Errorf("find otp candidates: %w", err)
	}
	defer rows.Close()

	var otps []model.OTP
	for rows.Next() {
		var (
			id, uid              uuid.UUID
			typeStr, codeStr     string
			verified             bool
			createdAt, expiresAt time.Time
		)
		if err := rows.Scan(&id, &uid, &typeStr, &codeStr, &verified, &createdAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan otp: %w", err)
		}
		parsedType, err := valueobject.NewOTPType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("malformed otp row %s: %w", id, err)
		}
		otps = append(otps, model.ReconstructOTP(id, uid, parsedType, codeStr, verified, createdAt, expiresAt))
	}
	return otps, rows.Err()
}

// MarkVerified consumes the record. The conditional update makes the
// consume atomic: exactly one concurrent caller observes true.
func (r *OTPRepository) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE otps SET verified = TRUE WHERE id = $1 AND verified = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("mark otp verified: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
