package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/pkg/auth"
)

// ErrInvalidCredentials is the uniform failure for a bad email or
// password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginUseCase authenticates a user and issues a session token.
type LoginUseCase struct {
	users  port.UserRepository
	tokens *auth.JWTService
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(users port.UserRepository, tokens *auth.JWTService) *LoginUseCase {
	return &LoginUseCase{users: users, tokens: tokens}
}

// Execute authenticates the credentials.
func (uc *LoginUseCase) Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("invalid login request: %w", err)
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID().String(), user.Email())
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
