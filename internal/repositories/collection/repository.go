// Package collection defines persistence for a player's card collection
// and party
package collection

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/KirkDiggler/ecosnap-api/internal/repositories/collection Repository

import (
	"context"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

// SchemaVersion is the version written with every document
const SchemaVersion = 1

// Document is the persisted form of a player's progression
type Document struct {
	Version    int                                         `json:"version"`
	Collection map[entities.SpeciesID]entities.CardInstance `json:"collection"`
	Party      []entities.SpeciesID                        `json:"party"`
}

// NewDocument returns an empty document at the current schema version
func NewDocument() *Document {
	return &Document{
		Version:    SchemaVersion,
		Collection: make(map[entities.SpeciesID]entities.CardInstance),
		Party:      []entities.SpeciesID{},
	}
}

// Repository defines the interface for collection persistence.
// A player has exactly one document.
type Repository interface {
	// Load retrieves a player's document
	// Returns errors.InvalidArgument for an empty player ID
	// Returns errors.NotFound if the player has no document
	// Returns errors.DataLoss if the document is corrupt or from an unknown schema version
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save creates or replaces a player's document
	// Returns errors.InvalidArgument for validation failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a player's document; deleting a missing document is not an error
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// LoadInput defines the input for loading a document
type LoadInput struct {
	PlayerID string
}

// LoadOutput defines the output for loading a document
type LoadOutput struct {
	Document *Document
}

// SaveInput defines the input for saving a document
type SaveInput struct {
	PlayerID string
	Document *Document
}

// SaveOutput defines the output for saving a document
type SaveOutput struct{}

// DeleteInput defines the input for deleting a document
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput defines the output for deleting a document
type DeleteOutput struct {
	Existed bool
}

const (
	errPlayerIDEmpty = "player ID cannot be empty"
	errDocumentNil   = "document cannot be nil"
)

func validateSave(input SaveInput) error {
	if input.PlayerID == "" {
		return errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Document == nil {
		return errors.InvalidArgument(errDocumentNil)
	}
	return nil
}

// checkDocument rejects documents this build cannot interpret and fills
// nil containers so callers never see a nil map
func checkDocument(doc *Document) error {
	if doc.Version != SchemaVersion {
		return errors.DataLossf("unsupported collection schema version %d", doc.Version).
			WithMeta("supported_version", SchemaVersion)
	}
	if doc.Collection == nil {
		doc.Collection = make(map[entities.SpeciesID]entities.CardInstance)
	}
	if doc.Party == nil {
		doc.Party = []entities.SpeciesID{}
	}
	return nil
}
