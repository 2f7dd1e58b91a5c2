// Package postgres implements the domain repositories on pgx. Amounts
// are stored as NUMERIC and moved across the wire as text to keep
// decimal precision intact.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// UserRepository is the pgx implementation of port.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, email, phone, full_name, password_hash,
	address, city, age,
	credit_score, pre_approved_limit::text,
	phone_verified, email_verified, kyc_verified,
	phone_otp_sent_at, email_otp_sent_at,
	monthly_income::text, existing_emi::text, employment_type, income_verified,
	created_at, updated_at, version`

// Save upserts the aggregate with an optimistic check on the version
// column. A lost race surfaces as port.ErrVersionConflict.
func (r *UserRepository) Save(ctx context.Context, user model.User) error {
	profile := user.Profile()
	var monthlyIncome *string
	if profile.MonthlyIncome != nil {
		s := profile.MonthlyIncome.String()
		monthlyIncome = &s
	}

	contact := user.Contact()
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO users (
			id, email, phone, full_name, password_hash,
			address, city, age,
			credit_score, pre_approved_limit,
			phone_verified, email_verified, kyc_verified,
			phone_otp_sent_at, email_otp_sent_at,
			monthly_income, existing_emi, employment_type, income_verified,
			created_at, updated_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		ON CONFLICT (id) DO UPDATE SET
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			age = EXCLUDED.age,
			phone_verified = EXCLUDED.phone_verified,
			email_verified = EXCLUDED.email_verified,
			kyc_verified = EXCLUDED.kyc_verified,
			phone_otp_sent_at = EXCLUDED.phone_otp_sent_at,
			email_otp_sent_at = EXCLUDED.email_otp_sent_at,
			monthly_income = EXCLUDED.monthly_income,
			existing_emi = EXCLUDED.existing_emi,
			employment_type = EXCLUDED.employment_type,
			income_verified = EXCLUDED.income_verified,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		WHERE users.version = EXCLUDED.version - 1`,
		user.ID(), user.Email(), user.Phone(), user.FullName(), user.PasswordHash(),
		contact.Address, contact.City, contact.Age,
		user.CreditScore(), user.PreApprovedLimit().String(),
		user.PhoneVerified(), user.EmailVerified(), user.KYCVerified(),
		user.PhoneOTPSentAt(), user.EmailOTPSentAt(),
		monthlyIncome, profile.ExistingEMI.String(), profile.EmploymentType, profile.IncomeVerified,
		user.CreatedAt(), user.UpdatedAt(), user.Version(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return port.ErrDuplicateEmail
		}
		return fmt.Errorf("save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}
	return nil
}

// FindByID fetches one user.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail fetches one user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		id                                        uuid.UUID
		email, phone, fullName, passwordHash      string
		address, city                             string
		age                                       int
		creditScore                               int
		limitStr, existingEMIStr                  string
		phoneVerified, emailVerified, kycVerified bool
		phoneOTPSentAt, emailOTPSentAt            *time.Time
		monthlyIncomeStr                          *string
		employmentType                            string
		incomeVerified                            bool
		createdAt, updatedAt                      time.Time
		version                                   int
	)
	err := row.Scan(
		&id, &email, &phone, &fullName, &passwordHash,
		&address, &city, &age,
		&creditScore, &limitStr,
		&phoneVerified, &emailVerified, &kycVerified,
		&phoneOTPSentAt, &emailOTPSentAt,
		&monthlyIncomeStr, &existingEMIStr, &employmentType, &incomeVerified,
		&createdAt, &updatedAt, &version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, port.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}

	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		return model.User{}, fmt.Errorf("malformed pre_approved_limit: %w", err)
	}
	existingEMI, err := decimal.NewFromString(existingEMIStr)
	if err != nil {
		return model.User{}, fmt.Errorf("malformed existing_emi: %w", err)
	}
	profile := model.FinancialProfile{
		ExistingEMI:    existingEMI,
		EmploymentType: employmentType,
		IncomeVerified: incomeVerified,
	}
	if monthlyIncomeStr != nil {
		income, err := decimal.NewFromString(*monthlyIncomeStr)
		if err != nil {
			return model.User{}, fmt.Errorf("malformed monthly_income: %w", err)
		}
		profile.MonthlyIncome = &income
	}

	return model.ReconstructUser(
		id, email, phone, fullName, passwordHash,
		model.ContactDetails{Address: address, City: city, Age: age},
		creditScore, limit,
		phoneVerified, emailVerified, kycVerified,
		phoneOTPSentAt, emailOTPSentAt,
		profile, createdAt, updatedAt, version,
	), nil
}
