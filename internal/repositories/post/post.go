package post

import (
	"context"

	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
)

var (
	ErrNotFound         = errors.NotFound(nil, "post not found")
	ErrAlreadyPersisted = errors.InvalidInput("post already has an id")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a new post and returns the identifier assigned by the store
	Create(ctx context.Context, post domain.Post) (string, error)

	// GetByID returns a single post without its comments
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// GetAll returns every post in store order
	GetAll(ctx context.Context) ([]*domain.Post, error)
}
