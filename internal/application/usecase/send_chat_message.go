package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/service"
	"github.com/finncap/origination/internal/domain/valueobject"
)

const (
	masterAgentName        = "master"
	needDiscoveryAgentName = "need_discovery"

	// fallbackClarification is the deterministic reply used when intent
	// classification fails.
	fallbackClarification = "I'd love to help you with a loan. Could you tell me a bit more about what you need the money for and roughly how much you are looking at?"

	// fallbackReply is the deterministic reply used when the
	// coordination step fails to generate text.
	fallbackReply = "Thanks for your message. I'm here to help you with your personal loan needs. Could you tell me more about what you are looking for?"
)

const needDiscoverySystemPrompt = `You are a loan need-discovery analyst. ` +
	`Given a customer's message, classify their intent. ` +
	`Respond with a JSON object: {"intent": string, "urgency": "low"|"medium"|"high", "mentioned_amount": number}. ` +
	`Use intent "general_inquiry" if the need is unclear.`

const masterSystemPrompt = `You are a helpful personal-loan assistant for a digital lender. ` +
	`You are given a JSON context bundle describing the customer, their verification state, ` +
	`their declared income, the conversation stage and the recent messages. ` +
	`Reply conversationally in at most three sentences. Never invent credit decisions; ` +
	`decisions come from underwriting, not from you.`

// needClassification is the structured output of the need-discovery step.
type needClassification struct {
	Intent          string  `json:"intent"`
	Urgency         string  `json:"urgency"`
	MentionedAmount float64 `json:"mentioned_amount"`
}

// SendChatMessageUseCase is the conversation orchestrator. It appends
// the user turn, sequences the need-discovery and coordination steps,
// advances the session stage forward-only and appends the assistant
// reply. All numeric and decision logic stays internal; only reply
// wording is delegated to the text generator.
type SendChatMessageUseCase struct {
	users     port.UserRepository
	sessions  port.ChatSessionRepository
	messages  port.ChatMessageRepository
	generator port.TextGenerator
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSendChatMessageUseCase creates a SendChatMessageUseCase.
func NewSendChatMessageUseCase(
	users port.UserRepository,
	sessions port.ChatSessionRepository,
	messages port.ChatMessageRepository,
	generator port.TextGenerator,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SendChatMessageUseCase {
	return &SendChatMessageUseCase{
		users:     users,
		sessions:  sessions,
		messages:  messages,
		generator: generator,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute processes one user turn.
func (uc *SendChatMessageUseCase) Execute(ctx context.Context, req dto.SendChatMessageRequest) (dto.ChatReplyResponse, error) {
	// 1. Validate and resolve the session, enforcing ownership.
	if err := dto.Validate(req); err != nil {
		return dto.ChatReplyResponse{}, fmt.Errorf("invalid chat request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.ChatReplyResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return dto.ChatReplyResponse{}, fmt.Errorf("invalid session id: %w", err)
	}

	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return dto.ChatReplyResponse{}, err
	}
	if session.UserID() != userID {
		return dto.ChatReplyResponse{}, port.ErrSessionNotFound
	}
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.ChatReplyResponse{}, err
	}

	// 2. Append the user turn before anything else, so history replay
	// includes it even when a later step degrades.
	userMsg, err := model.NewChatMessage(sessionID, valueobject.RoleUser(), req.Message, "", nil)
	if err != nil {
		return dto.ChatReplyResponse{}, err
	}
	if err := uc.messages.Save(ctx, userMsg); err != nil {
		return dto.ChatReplyResponse{}, fmt.Errorf("save user message: %w", err)
	}

	// 3. Need discovery fires once, on the first loan-intent message.
	agentName := masterAgentName
	var reply string
	if session.Stage().Equal(valueobject.StageInitial()) && service.ContainsLoanIntent(req.Message) {
		classification, ok := uc.classifyNeed(ctx, req.Message)
		session = session.SetDiscoveredIntent(classification.Intent)
		advanced, err := session.AdvanceStage(valueobject.StageNeedDiscovery())
		if err != nil {
			return dto.ChatReplyResponse{}, err
		}
		session = advanced
		if err := uc.sessions.Save(ctx, session); err != nil {
			return dto.ChatReplyResponse{}, fmt.Errorf("save session: %w", err)
		}
		if err := uc.publisher.Publish(ctx, session.DomainEvents()...); err != nil {
			uc.logger.Error("publishing stage events failed", "session_id", sessionID, "error", err)
		}
		session = session.ClearEvents()
		if !ok {
			agentName = needDiscoveryAgentName
			reply = fallbackClarification
		}
	}

	// 4. Coordination step: the full prior history feeds the context
	// bundle, which is the deterministic part of this turn.
	if reply == "" {
		history, err := uc.messages.FindBySessionID(ctx, sessionID)
		if err != nil {
			return dto.ChatReplyResponse{}, fmt.Errorf("load history: %w", err)
		}
		bundle := service.BuildContextBundle(user, session, history)
		reply = uc.generateReply(ctx, bundle)
	}

	// 5. Append the assistant turn.
	assistantMsg, err := model.NewChatMessage(sessionID, valueobject.RoleAssistant(), reply, agentName,
		map[string]string{"stage": session.Stage().String()})
	if err != nil {
		return dto.ChatReplyResponse{}, err
	}
	if err := uc.messages.Save(ctx, assistantMsg); err != nil {
		return dto.ChatReplyResponse{}, fmt.Errorf("save assistant message: %w", err)
	}

	return dto.ChatReplyResponse{
		SessionID: sessionID.String(),
		Reply:     reply,
		Stage:     session.Stage().String(),
		AgentName: agentName,
	}, nil
}

// classifyNeed asks the text generator to classify the message. It
// reports ok=false when the output is missing or unusable, in which
// case the caller degrades to a fixed clarification.
func (uc *SendChatMessageUseCase) classifyNeed(ctx context.Context, message string) (needClassification, bool) {
	var classification needClassification
	err := uc.generator.GenerateJSON(ctx, needDiscoverySystemPrompt, message, &classification)
	if err != nil || strings.TrimSpace(classification.Intent) == "" {
		uc.logger.Warn("need classification failed, using fallback", "error", err)
		return needClassification{Intent: "general_inquiry"}, false
	}
	return classification, true
}

// generateReply asks the text generator for the conversational reply,
// degrading to a deterministic fallback on any failure.
func (uc *SendChatMessageUseCase) generateReply(ctx context.Context, bundle service.ContextBundle) string {
	prompt, err := json.Marshal(bundle)
	if err != nil {
		uc.logger.Error("marshalling context bundle failed", "error", err)
		return fallbackReply
	}
	reply, err := uc.generator.GenerateText(ctx, masterSystemPrompt, string(prompt))
	if err != nil || strings.TrimSpace(reply) == "" {
		uc.logger.Warn("reply generation failed, using fallback", "error", err)
		return fallbackReply
	}
	return reply
}
