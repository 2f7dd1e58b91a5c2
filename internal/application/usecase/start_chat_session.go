package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// StartChatSessionUseCase opens a conversation thread and seeds the
// greeting turn.
type StartChatSessionUseCase struct {
	users     port.UserRepository
	sessions  port.ChatSessionRepository
	messages  port.ChatMessageRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewStartChatSessionUseCase creates a StartChatSessionUseCase.
func NewStartChatSessionUseCase(
	users port.UserRepository,
	sessions port.ChatSessionRepository,
	messages port.ChatMessageRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *StartChatSessionUseCase {
	return &StartChatSessionUseCase{
		users:     users,
		sessions:  sessions,
		messages:  messages,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute opens the session.
func (uc *StartChatSessionUseCase) Execute(ctx context.Context, req dto.StartChatSessionRequest) (dto.ChatSessionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.ChatSessionResponse{}, fmt.Errorf("invalid session request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.ChatSessionResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.ChatSessionResponse{}, err
	}

	session, err := model.NewChatSession(userID)
	if err != nil {
		return dto.ChatSessionResponse{}, err
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return dto.ChatSessionResponse{}, fmt.Errorf("save session: %w", err)
	}
	if err := uc.publisher.Publish(ctx, session.DomainEvents()...); err != nil {
		uc.logger.Error("publishing session events failed", "session_id", session.ID(), "error", err)
	}

	greeting := fmt.Sprintf("Hi %s, I can help you explore a personal loan. What brings you here today?", user.FullName())
	if !user.PhoneVerified() || !user.EmailVerified() {
		greeting += " By the way, your contact details are not fully verified yet; completing verification unlocks instant offers."
	}
	msg, err := model.NewChatMessage(session.ID(), valueobject.RoleAssistant(), greeting, "master", nil)
	if err != nil {
		return dto.ChatSessionResponse{}, err
	}
	if err := uc.messages.Save(ctx, msg); err != nil {
		return dto.ChatSessionResponse{}, fmt.Errorf("save greeting: %w", err)
	}

	return toSessionResponse(session), nil
}
