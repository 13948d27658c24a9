package comment

import (
	"context"

	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
)

var (
	ErrAlreadyPersisted = errors.InvalidInput("comment already has an id")
	ErrMissingPost      = errors.InvalidInput("comment is not attached to a post")
)

//go:generate go run go.uber.org/mock/mockgen -source=comment.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a new comment and returns the identifier assigned by the store
	Create(ctx context.Context, comment domain.Comment) (string, error)

	// GetByPostID returns the comments of a post, oldest first
	GetByPostID(ctx context.Context, postID string) ([]*domain.Comment, error)
}
