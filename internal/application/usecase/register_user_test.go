package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/pkg/auth"
)

func testTokens() *auth.JWTService {
	return auth.NewJWTService("test-secret", "origination", time.Hour)
}

func TestRegisterUser(t *testing.T) {
	users := &mockUserRepository{}
	bureau := &mockCreditBureau{
		fetchFunc: func(_ context.Context, _, _ string) (port.CreditSnapshot, error) {
			return port.CreditSnapshot{CreditScore: 760, PreApprovedLimit: decimal.NewFromInt(250000)}, nil
		},
	}
	publisher := &mockEventPublisher{}
	uc := NewRegisterUserUseCase(users, bureau, publisher, testTokens(), discardLogger())

	resp, err := uc.Execute(context.Background(), dto.RegisterUserRequest{
		Email:    "new@example.com",
		Phone:    "+919876543210",
		FullName: "New Borrower",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 760, resp.User.CreditScore)
	assert.Equal(t, "250000.00", resp.User.PreApprovedLimit)
	assert.False(t, resp.User.KYCVerified)

	require.Len(t, users.savedUsers, 1)
	saved := users.savedUsers[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash()), []byte("s3cret-pass")))
	assert.NotEmpty(t, publisher.published)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	existing := verifiedUser(780, 300000, nil)
	users := &mockUserRepository{
		findByEmailFunc: func(_ context.Context, _ string) (model.User, error) {
			return existing, nil
		},
	}
	uc := NewRegisterUserUseCase(users, &mockCreditBureau{}, &mockEventPublisher{}, testTokens(), discardLogger())

	_, err := uc.Execute(context.Background(), dto.RegisterUserRequest{
		Email:    "borrower@example.com",
		Phone:    "+919876543210",
		FullName: "Someone Else",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, port.ErrDuplicateEmail)
	assert.Empty(t, users.savedUsers)
}

func TestRegisterUser_Validation(t *testing.T) {
	uc := NewRegisterUserUseCase(&mockUserRepository{}, &mockCreditBureau{}, &mockEventPublisher{}, testTokens(), discardLogger())

	_, err := uc.Execute(context.Background(), dto.RegisterUserRequest{
		Email:    "not-an-email",
		Phone:    "+919876543210",
		FullName: "A B",
		Password: "s3cret-pass",
	})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), dto.RegisterUserRequest{
		Email:    "a@b.com",
		Phone:    "+919876543210",
		FullName: "A B",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	user := model.ReconstructUser(
		verifiedUser(780, 300000, nil).ID(),
		"borrower@example.com", "+919876543210", "Borrower", string(hash),
		model.ContactDetails{},
		780, decimal.NewFromInt(300000),
		true, true, true,
		nil, nil,
		model.FinancialProfile{ExistingEMI: decimal.Zero}, now, now, 1,
	)
	users := &mockUserRepository{
		findByEmailFunc: func(_ context.Context, _ string) (model.User, error) {
			return user, nil
		},
	}
	uc := NewLoginUseCase(users, testTokens())

	t.Run("correct password", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.LoginRequest{
			Email:    "borrower@example.com",
			Password: "right-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.LoginRequest{
			Email:    "borrower@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		unknown := NewLoginUseCase(&mockUserRepository{}, testTokens())
		_, err := unknown.Execute(context.Background(), dto.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
