package board

import (
	"context"

	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
)

var (
	ErrMissingAuthor    = errors.InvalidInput("post needs an author and a title")
	ErrMissingCommenter = errors.InvalidInput("comment needs an author and content")
	ErrMissingUser      = errors.InvalidInput("user id is required")
	ErrMissingPostID    = errors.InvalidInput("post id is required")
)

//go:generate go run go.uber.org/mock/mockgen -source=board.go -destination=mocks/mock.go
type Client interface {
	// CreatePost stores a new post and returns its identifier
	CreatePost(ctx context.Context, post domain.Post) (string, error)

	// AddCommentToPost attaches a new comment to an existing post
	AddCommentToPost(ctx context.Context, postID string, comment domain.Comment) (string, error)

	// GetAllPosts lists every post without comments
	GetAllPosts(ctx context.Context) ([]domain.Post, error)

	// GetPostWithComments returns one post with its comments, oldest first
	GetPostWithComments(ctx context.Context, postID string) (*domain.Post, error)

	// LikePost records that userID likes the post, at most once per user
	LikePost(ctx context.Context, postID, userID string) (string, error)
}
