package like

import (
	"context"

	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
)

var (
	ErrAlreadyExists    = errors.AlreadyExists(nil, "post already liked by user")
	ErrAlreadyPersisted = errors.InvalidInput("like already has an id")
	ErrIncomplete       = errors.InvalidInput("like needs a post and a user")
)

//go:generate go run go.uber.org/mock/mockgen -source=like.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a like; a second like of the same post by the same user fails with ErrAlreadyExists
	Create(ctx context.Context, like domain.Like) (string, error)

	// GetByPostID returns the likes of a post in store order
	GetByPostID(ctx context.Context, postID string) ([]*domain.Like, error)

	// GetAll returns every like in store order
	GetAll(ctx context.Context) ([]*domain.Like, error)
}
