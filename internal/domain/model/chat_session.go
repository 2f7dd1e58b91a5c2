package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

// ChatSession is one conversation thread. The stage only moves forward
// through the origination funnel; attempts to regress are rejected.
type ChatSession struct {
	id               uuid.UUID
	userID           uuid.UUID
	applicationID    *uuid.UUID
	status           valueobject.SessionStatus
	stage            valueobject.ConversationStage
	discoveredIntent string
	createdAt        time.Time
	updatedAt        time.Time
	version          int
	domainEvents     []events.DomainEvent
}

// NewChatSession opens an active session at the initial stage.
func NewChatSession(userID uuid.UUID) (ChatSession, error) {
	if userID == uuid.Nil {
		return ChatSession{}, errors.New("user id is required")
	}
	now := time.Now().UTC()
	s := ChatSession{
		id:        uuid.New(),
		userID:    userID,
		status:    valueobject.SessionActive(),
		stage:     valueobject.StageInitial(),
		createdAt: now,
		updatedAt: now,
		version:   1,
	}
	s.domainEvents = append(s.domainEvents, event.NewChatSessionStarted(s.id.String(), userID.String()))
	return s, nil
}

// ReconstructChatSession rebuilds a session from persisted state.
func ReconstructChatSession(
	id, userID uuid.UUID,
	applicationID *uuid.UUID,
	status valueobject.SessionStatus,
	stage valueobject.ConversationStage,
	discoveredIntent string,
	createdAt, updatedAt time.Time,
	version int,
) ChatSession {
	return ChatSession{
		id:               id,
		userID:           userID,
		applicationID:    applicationID,
		status:           status,
		stage:            stage,
		discoveredIntent: discoveredIntent,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
	}
}

// AdvanceStage moves the session forward to target. Advancing to the
// current stage is a no-op copy; moving backwards is an error.
func (s ChatSession) AdvanceStage(target valueobject.ConversationStage) (ChatSession, error) {
	if s.stage.Equal(target) {
		return s.copy(), nil
	}
	if target.Before(s.stage) {
		return ChatSession{}, valueobject.ErrStageRegression
	}
	c := s.copy()
	from := c.stage
	c.stage = target
	c.updatedAt = time.Now().UTC()
	c.version++
	c.domainEvents = append(c.domainEvents,
		event.NewChatStageAdvanced(c.id.String(), c.userID.String(), from.String(), target.String()))
	return c, nil
}

// SetDiscoveredIntent records the intent category classified during
// need discovery.
func (s ChatSession) SetDiscoveredIntent(intent string) ChatSession {
	c := s.copy()
	c.discoveredIntent = intent
	c.updatedAt = time.Now().UTC()
	c.version++
	return c
}

// LinkApplication associates a submitted loan application with the session.
func (s ChatSession) LinkApplication(applicationID uuid.UUID) (ChatSession, error) {
	if applicationID == uuid.Nil {
		return ChatSession{}, errors.New("application id is required")
	}
	c := s.copy()
	c.applicationID = &applicationID
	c.updatedAt = time.Now().UTC()
	c.version++
	return c, nil
}

// Complete closes the session.
func (s ChatSession) Complete() ChatSession {
	c := s.copy()
	c.status = valueobject.SessionCompleted()
	c.updatedAt = time.Now().UTC()
	c.version++
	return c
}

func (s ChatSession) copy() ChatSession {
	c := s
	c.domainEvents = copyEvents(s.domainEvents)
	return c
}

// Accessors.

func (s ChatSession) ID() uuid.UUID                        { return s.id }
func (s ChatSession) UserID() uuid.UUID                    { return s.userID }
func (s ChatSession) Status() valueobject.SessionStatus    { return s.status }
func (s ChatSession) Stage() valueobject.ConversationStage { return s.stage }
func (s ChatSession) DiscoveredIntent() string             { return s.discoveredIntent }
func (s ChatSession) CreatedAt() time.Time                 { return s.createdAt }
func (s ChatSession) UpdatedAt() time.Time                 { return s.updatedAt }
func (s ChatSession) Version() int                         { return s.version }

// ApplicationID returns the linked application id, or nil.
func (s ChatSession) ApplicationID() *uuid.UUID {
	if s.applicationID == nil {
		return nil
	}
	id := *s.applicationID
	return &id
}

// DomainEvents returns the events recorded since the aggregate was
// loaded or created.
func (s ChatSession) DomainEvents() []events.DomainEvent { return copyEvents(s.domainEvents) }

// ClearEvents returns a copy with the recorded events discarded.
func (s ChatSession) ClearEvents() ChatSession {
	c := s
	c.domainEvents = nil
	return c
}
