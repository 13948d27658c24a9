package boardimpl

import (
	"context"

	"github.com/orgball2608/board-api/internal/board"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/repositories/like"
	"github.com/orgball2608/board-api/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (b *BoardImpl) LikePost(ctx context.Context, postID, userID string) (id string, err error) {
	ctx, end := b.begin(ctx, opLikePost, trace.WithAttributes(
		attribute.String("board.post_id", postID),
		attribute.String("board.user_id", userID),
	))
	defer func() { end(&err) }()

	if postID == "" {
		return "", board.ErrMissingPostID
	}
	if userID == "" {
		return "", board.ErrMissingUser
	}

	p, err := b.PostRepo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	// likes given at creation time live on the post document itself
	if p.HasLike(userID) {
		return "", like.ErrAlreadyExists
	}

	l := domain.Like{
		PostID:    postID,
		LikedBy:   userID,
		Timestamp: b.Clock.NowUtc(),
	}

	id, err = b.LikeRepo.Create(ctx, l)
	if err != nil {
		if !errors.IsAlreadyExists(err) {
			b.Logger.Error("Failed to like post", "post_id", postID, "user_id", userID, "error", err)
		}
		return "", err
	}

	b.Logger.Info("Post liked", "like_id", id, "post_id", postID, "user_id", userID)
	b.publish(ctx, events.Event{
		Type:      events.TypeLikeCreated,
		ID:        id,
		PostID:    postID,
		UserID:    userID,
		Timestamp: l.Timestamp,
	})

	return id, nil
}
