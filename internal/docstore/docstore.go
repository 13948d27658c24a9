package docstore

import (
	"context"
	"encoding/json"

	"github.com/orgball2608/board-api/pkg/errors"
)

// Collection names shared with every client of the store.
const (
	CollectionPosts    = "posts"
	CollectionComments = "comments"
	CollectionLikes    = "likes"
)

var collections = map[string]struct{}{
	CollectionPosts:    {},
	CollectionComments: {},
	CollectionLikes:    {},
}

// Collections lists the collections known to the store.
func Collections() []string {
	return []string{CollectionPosts, CollectionComments, CollectionLikes}
}

// Document is one record of a collection. ID and Seq are owned by the store
// and ignored on insert.
type Document struct {
	ID string
	// UniqueKey, when set, must not repeat within the collection.
	UniqueKey string
	Body      json.RawMessage
	// Seq orders documents by insertion.
	Seq int64
}

var (
	ErrNotFound      = errors.NotFound(nil, "document not found")
	ErrAlreadyExists = errors.AlreadyExists(nil, "document with the same unique key already exists")
)

type Store interface {
	// Insert stores doc and returns the identifier assigned to it
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// Get returns the document with the given identifier
	Get(ctx context.Context, collection, id string) (Document, error)

	// All returns every document of the collection in insertion order
	All(ctx context.Context, collection string) ([]Document, error)

	// Where returns the documents whose top-level string field equals value, in insertion order
	Where(ctx context.Context, collection, field, value string) ([]Document, error)

	// Count returns the number of documents in the collection
	Count(ctx context.Context, collection string) (int64, error)
}

func checkCollection(collection string) error {
	if _, ok := collections[collection]; !ok {
		return errors.InvalidInput("unknown collection " + collection)
	}
	return nil
}

// fieldEquals reports whether body has a top-level string field equal to value.
func fieldEquals(body []byte, field, value string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	raw, ok := fields[field]
	if !ok {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == value
}

func cloneBody(b []byte) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
