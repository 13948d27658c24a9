package events

import (
	"context"
	"time"
)

// Event types published after successful writes.
const (
	TypePostCreated    = "post.created"
	TypeCommentCreated = "comment.created"
	TypeLikeCreated    = "like.created"
)

type Event struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	PostID    string    `json:"postId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Key groups every event of one post on the same partition.
func (e Event) Key() string {
	if e.PostID != "" {
		return e.PostID
	}
	return e.ID
}

//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=mocks/mock.go
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type Nop struct{}

var _ Publisher = Nop{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
