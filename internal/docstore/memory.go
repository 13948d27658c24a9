package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/orgball2608/board-api/pkg/errors"
)

type memCollection struct {
	docs   map[string]Document
	order  []string
	unique map[string]string
	seq    int64
}

// Memory keeps documents in process. It backs tests and local runs with
// BOARD_STORE=memory.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	m := &Memory{collections: make(map[string]*memCollection)}
	for _, c := range Collections() {
		m.collections[c] = &memCollection{
			docs:   make(map[string]Document),
			unique: make(map[string]string),
		}
	}
	return m
}

func (m *Memory) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", errors.Transport(err, "failed to access "+collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collections[collection]
	if doc.UniqueKey != "" {
		if _, ok := c.unique[doc.UniqueKey]; ok {
			return "", ErrAlreadyExists
		}
	}

	id := uuid.NewString()
	c.seq++
	c.docs[id] = Document{
		ID:        id,
		UniqueKey: doc.UniqueKey,
		Body:      cloneBody(doc.Body),
		Seq:       c.seq,
	}
	c.order = append(c.order, id)
	if doc.UniqueKey != "" {
		c.unique[doc.UniqueKey] = id
	}

	return id, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := checkCollection(collection); err != nil {
		return Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return Document{}, errors.Transport(err, "failed to access "+collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection].docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.Body = cloneBody(doc.Body)
	return doc, nil
}

func (m *Memory) All(ctx context.Context, collection string) ([]Document, error) {
	return m.filter(ctx, collection, func(Document) bool { return true })
}

func (m *Memory) Where(ctx context.Context, collection, field, value string) ([]Document, error) {
	return m.filter(ctx, collection, func(d Document) bool {
		return fieldEquals(d.Body, field, value)
	})
}

func (m *Memory) Count(ctx context.Context, collection string) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.Transport(err, "failed to access "+collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.collections[collection].docs)), nil
}

func (m *Memory) filter(ctx context.Context, collection string, keep func(Document) bool) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Transport(err, "failed to access "+collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.collections[collection]
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		if !keep(doc) {
			continue
		}
		doc.Body = cloneBody(doc.Body)
		out = append(out, doc)
	}
	return out, nil
}
