package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/pkg/auth"
)

// RegisterUserUseCase creates a user account with its creditworthiness
// snapshot and issues a session token.
type RegisterUserUseCase struct {
	users     port.UserRepository
	bureau    port.CreditBureau
	publisher port.EventPublisher
	tokens    *auth.JWTService
	logger    *slog.Logger
}

// NewRegisterUserUseCase creates a RegisterUserUseCase.
func NewRegisterUserUseCase(
	users port.UserRepository,
	bureau port.CreditBureau,
	publisher port.EventPublisher,
	tokens *auth.JWTService,
	logger *slog.Logger,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		users:     users,
		bureau:    bureau,
		publisher: publisher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Execute registers the user.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, req dto.RegisterUserRequest) (dto.AuthResponse, error) {
	// 1. Validate the request shape.
	if err := dto.Validate(req); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("invalid registration request: %w", err)
	}

	// 2. Reject duplicate emails.
	if _, err := uc.users.FindByEmail(ctx, req.Email); err == nil {
		return dto.AuthResponse{}, port.ErrDuplicateEmail
	} else if !errors.Is(err, port.ErrUserNotFound) {
		return dto.AuthResponse{}, fmt.Errorf("check existing email: %w", err)
	}

	// 3. Hash the password.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	// 4. Pull the credit snapshot, fixed once for the account lifetime.
	snapshot, err := uc.bureau.FetchSnapshot(ctx, req.Email, req.Phone)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("fetch credit snapshot: %w", err)
	}

	// 5. Create and persist the aggregate.
	user, err := model.NewUser(req.Email, req.Phone, req.FullName, string(hash), snapshot.CreditScore, snapshot.PreApprovedLimit)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if req.Address != "" || req.City != "" || req.Age != 0 {
		user, err = user.WithContactDetails(model.ContactDetails{Address: req.Address, City: req.City, Age: req.Age})
		if err != nil {
			return dto.AuthResponse{}, err
		}
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("save user: %w", err)
	}

	// 6. Publish events after the save.
	if err := uc.publisher.Publish(ctx, user.DomainEvents()...); err != nil {
		uc.logger.Error("publishing registration events failed", "user_id", user.ID(), "error", err)
	}

	// 7. Issue a session token.
	token, err := uc.tokens.GenerateToken(user.ID().String(), user.Email())
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
