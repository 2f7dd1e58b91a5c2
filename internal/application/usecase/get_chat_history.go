package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/port"
)

// GetChatHistoryUseCase replays a session's turns in creation order.
type GetChatHistoryUseCase struct {
	sessions port.ChatSessionRepository
	messages port.ChatMessageRepository
}

// NewGetChatHistoryUseCase creates a GetChatHistoryUseCase.
func NewGetChatHistoryUseCase(sessions port.ChatSessionRepository, messages port.ChatMessageRepository) *GetChatHistoryUseCase {
	return &GetChatHistoryUseCase{sessions: sessions, messages: messages}
}

// Execute fetches the history.
func (uc *GetChatHistoryUseCase) Execute(ctx context.Context, req dto.GetChatHistoryRequest) (dto.ChatHistoryResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.ChatHistoryResponse{}, fmt.Errorf("invalid history request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.ChatHistoryResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return dto.ChatHistoryResponse{}, fmt.Errorf("invalid session id: %w", err)
	}

	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return dto.ChatHistoryResponse{}, err
	}
	if session.UserID() != userID {
		return dto.ChatHistoryResponse{}, port.ErrSessionNotFound
	}

	history, err := uc.messages.FindBySessionID(ctx, sessionID)
	if err != nil {
		return dto.ChatHistoryResponse{}, fmt.Errorf("load history: %w", err)
	}

	resp := dto.ChatHistoryResponse{SessionID: sessionID.String()}
	for _, msg := range history {
		resp.Messages = append(resp.Messages, toMessageResponse(msg))
	}
	return resp, nil
}
