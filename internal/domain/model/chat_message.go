package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/valueobject"
)

// ChatMessage is one turn of a conversation. Messages are immutable
// once created and are replayed in creation order.
type ChatMessage struct {
	id        uuid.UUID
	sessionID uuid.UUID
	role      valueobject.MessageRole
	content   string
	agentName string
	metadata  map[string]string
	createdAt time.Time
}

// NewChatMessage creates a message turn.
func NewChatMessage(sessionID uuid.UUID, role valueobject.MessageRole, content, agentName string, metadata map[string]string) (ChatMessage, error) {
	if sessionID == uuid.Nil {
		return ChatMessage{}, errors.New("session id is required")
	}
	if role.IsZero() {
		return ChatMessage{}, errors.New("message role is required")
	}
	if content == "" {
		return ChatMessage{}, errors.New("message content is required")
	}
	return ChatMessage{
		id:        uuid.New(),
		sessionID: sessionID,
		role:      role,
		content:   content,
		agentName: agentName,
		metadata:  copyMetadata(metadata),
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructChatMessage rebuilds a message from persisted state.
func ReconstructChatMessage(id, sessionID uuid.UUID, role valueobject.MessageRole, content, agentName string, metadata map[string]string, createdAt time.Time) ChatMessage {
	return ChatMessage{
		id:        id,
		sessionID: sessionID,
		role:      role,
		content:   content,
		agentName: agentName,
		metadata:  copyMetadata(metadata),
		createdAt: createdAt,
	}
}

func (m ChatMessage) ID() uuid.UUID                 { return m.id }
func (m ChatMessage) SessionID() uuid.UUID          { return m.sessionID }
func (m ChatMessage) Role() valueobject.MessageRole { return m.role }
func (m ChatMessage) Content() string               { return m.content }
func (m ChatMessage) AgentName() string             { return m.agentName }
func (m ChatMessage) CreatedAt() time.Time          { return m.createdAt }

// Metadata returns a copy of the structured metadata attached to the turn.
func (m ChatMessage) Metadata() map[string]string { return copyMetadata(m.metadata) }

func copyMetadata(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
