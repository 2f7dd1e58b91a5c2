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

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// ChatSessionRepository is the pgx implementation of
// port.ChatSessionRepository.
type ChatSessionRepository struct {
	pool *pgxpool.Pool
}

// NewChatSessionRepository creates a ChatSessionRepository.
func NewChatSessionRepository(pool *pgxpool.Pool) *ChatSessionRepository {
	return &ChatSessionRepository{pool: pool}
}

const sessionColumns = `
	id, user_id, application_id, status, stage, discovered_intent,
	created_at, updated_at, version`

// Save upserts the session with an optimistic check on the version column.
func (r *ChatSessionRepository) Save(ctx context.Context, session model.ChatSession) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO chat_sessions (
			id, user_id, application_id, status, stage, discovered_intent,
			created_at, updated_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			application_id = EXCLUDED.application_id,
			status = EXCLUDED.status,
			stage = EXCLUDED.stage,
			discovered_intent = EXCLUDED.discovered_intent,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		WHERE chat_sessions.version = EXCLUDED.version - 1`,
		session.ID(), session.UserID(), session.ApplicationID(),
		session.Status().String(), session.Stage().String(), session.DiscoveredIntent(),
		session.CreatedAt(), session.UpdatedAt(), session.Version(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}
	return nil
}

// FindByID fetches one session.
func (r *ChatSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.ChatSession, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM chat_sessions WHERE id = $1`, id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ChatSession{}, port.ErrSessionNotFound
		}
		return model.ChatSession{}, err
	}
	return session, nil
}

// FindByUserID fetches a user's sessions, newest first.
func (r *ChatSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM chat_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.ChatSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (model.ChatSession, error) {
	var (
		id, userID           uuid.UUID
		applicationID        *uuid.UUID
		statusStr, stageStr  string
		discoveredIntent     string
		createdAt, updatedAt time.Time
		version              int
	)
	err := row.Scan(&id, &userID, &applicationID, &statusStr, &stageStr, &discoveredIntent, &createdAt, &updatedAt, &version)
	if err != nil {
		return model.ChatSession{}, err
	}

	status, err := valueobject.NewSessionStatus(statusStr)
	if err != nil {
		return model.ChatSession{}, fmt.Errorf("malformed status for session %s: %w", id, err)
	}
	stage, err := valueobject.NewConversationStage(stageStr)
	if err != nil {
		return model.ChatSession{}, fmt.Errorf("malformed stage for session %s: %w", id, err)
	}

	return model.ReconstructChatSession(id, userID, applicationID, status, stage, discoveredIntent, createdAt, updatedAt, version), nil
}

// ChatMessageRepository is the pgx implementation of
// port.ChatMessageRepository.
type ChatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository creates a ChatMessageRepository.
func NewChatMessageRepository(pool *pgxpool.Pool) *ChatMessageRepository {
	return &ChatMessageRepository{pool: pool}
}

// Save inserts one turn. Messages are immutable.
func (r *ChatMessageRepository) Save(ctx context.Context, message model.ChatMessage) error {
	var metadata []byte
	if md := message.Metadata(); len(md) > 0 {
		data, err := json.Marshal(md)
		if err != nil {
			return fmt.Errorf("marshal message metadata: %w", err)
		}
		metadata = data
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, agent_name, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		message.ID(), message.SessionID(), message.Role().String(), message.Content(),
		message.AgentName(), metadata, message.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// FindBySessionID returns the session's turns in strictly increasing
// creation order, with id as the tiebreaker.
func (r *ChatMessageRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, role, content, agent_name, metadata, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var (
			id, sid          uuid.UUID
			roleStr, content string
			agentName        string
			metadata         []byte
			createdAt        time.Time
		)
		if err := rows.Scan(&id, &sid, &roleStr, &content, &agentName, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		role, err := valueobject.NewMessageRole(roleStr)
		if err != nil {
			return nil, fmt.Errorf("malformed role for message %s: %w", id, err)
		}
		var md map[string]string
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &md); err != nil {
				return nil, fmt.Errorf("malformed metadata for message %s: %w", id, err)
			}
		}
		messages = append(messages, model.ReconstructChatMessage(id, sid, role, content, agentName, md, createdAt))
	}
	return messages, rows.Err()
}
