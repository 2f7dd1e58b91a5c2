package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

// Document is an uploaded evidence artifact. Presence of a salary
// proof, not its content, is what the underwriting ladder inspects.
type Document struct {
	id            uuid.UUID
	userID        uuid.UUID
	applicationID *uuid.UUID
	docType       valueobject.DocumentType
	storageRef    string
	uploadedAt    time.Time
	domainEvents  []events.DomainEvent
}

// NewDocument records an uploaded artifact. applicationID may be nil
// when the document is not tied to a specific application.
func NewDocument(userID uuid.UUID, applicationID *uuid.UUID, docType valueobject.DocumentType, storageRef string) (Document, error) {
	if userID == uuid.Nil {
		return Document{}, errors.New("user id is required")
	}
	if docType.IsZero() {
		return Document{}, errors.New("document type is required")
	}
	if storageRef == "" {
		return Document{}, errors.New("storage reference is required")
	}

	d := Document{
		id:         uuid.New(),
		userID:     userID,
		docType:    docType,
		storageRef: storageRef,
		uploadedAt: time.Now().UTC(),
	}
	appID := ""
	if applicationID != nil {
		id := *applicationID
		d.applicationID = &id
		appID = id.String()
	}
	d.domainEvents = append(d.domainEvents,
		event.NewDocumentUploaded(d.id.String(), userID.String(), appID, docType.String()))
	return d, nil
}

// ReconstructDocument rebuilds a document from persisted state.
func ReconstructDocument(id, userID uuid.UUID, applicationID *uuid.UUID, docType valueobject.DocumentType, storageRef string, uploadedAt time.Time) Document {
	d := Document{
		id:         id,
		userID:     userID,
		docType:    docType,
		storageRef: storageRef,
		uploadedAt: uploadedAt,
	}
	if applicationID != nil {
		appID := *applicationID
		d.applicationID = &appID
	}
	return d
}

func (d Document) ID() uuid.UUID                  { return d.id }
func (d Document) UserID() uuid.UUID              { return d.userID }
func (d Document) Type() valueobject.DocumentType { return d.docType }
func (d Document) StorageRef() string             { return d.storageRef }
func (d Document) UploadedAt() time.Time          { return d.uploadedAt }

// ApplicationID returns the linked application id, or nil.
func (d Document) ApplicationID() *uuid.UUID {
	if d.applicationID == nil {
		return nil
	}
	id := *d.applicationID
	return &id
}

// DomainEvents returns the events recorded at creation.
func (d Document) DomainEvents() []events.DomainEvent { return copyEvents(d.domainEvents) }

// ClearEvents returns a copy with the recorded events discarded.
func (d Document) ClearEvents() Document {
	c := d
	c.domainEvents = nil
	return c
}
