package boardimpl

import (
	"context"

	"github.com/orgball2608/board-api/internal/board"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/repositories/comment"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (b *BoardImpl) AddCommentToPost(ctx context.Context, postID string, c domain.Comment) (id string, err error) {
	ctx, end := b.begin(ctx, opAddCommentToPost, trace.WithAttributes(attribute.String("board.post_id", postID)))
	defer func() { end(&err) }()

	if postID == "" {
		return "", board.ErrMissingPostID
	}
	if c.Persisted() {
		return "", comment.ErrAlreadyPersisted
	}
	if c.CommentedBy == "" || c.Content == "" {
		return "", board.ErrMissingCommenter
	}

	if _, err = b.PostRepo.GetByID(ctx, postID); err != nil {
		return "", err
	}

	c.PostID = postID
	if c.Timestamp.IsZero() {
		c.Timestamp = b.Clock.NowUtc()
	}

	id, err = b.CommentRepo.Create(ctx, c)
	if err != nil {
		b.Logger.Error("Failed to add comment", "post_id", postID, "error", err)
		return "", err
	}

	b.Logger.Info("Comment added", "comment_id", id, "post_id", postID, "commented_by", c.CommentedBy)
	b.publish(ctx, events.Event{
		Type:      events.TypeCommentCreated,
		ID:        id,
		PostID:    postID,
		UserID:    c.CommentedBy,
		Timestamp: c.Timestamp.UTC(),
	})

	return id, nil
}
