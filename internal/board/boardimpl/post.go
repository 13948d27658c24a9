package boardimpl

import (
	"context"

	"github.com/orgball2608/board-api/internal/board"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/repositories/post"
	"github.com/orgball2608/board-api/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (b *BoardImpl) CreatePost(ctx context.Context, p domain.Post) (id string, err error) {
	ctx, end := b.begin(ctx, opCreatePost, trace.WithAttributes(attribute.String("board.posted_by", p.PostedBy)))
	defer func() { end(&err) }()

	if p.Persisted() {
		return "", post.ErrAlreadyPersisted
	}
	if p.PostedBy == "" || p.Title == "" {
		return "", board.ErrMissingAuthor
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = b.Clock.NowUtc()
	}
	p.Comments = nil

	id, err = b.PostRepo.Create(ctx, p)
	if err != nil {
		b.Logger.Error("Failed to create post", "posted_by", p.PostedBy, "error", err)
		return "", err
	}

	b.Logger.Info("Post created", "post_id", id, "posted_by", p.PostedBy)
	b.publish(ctx, events.Event{
		Type:      events.TypePostCreated,
		ID:        id,
		PostID:    id,
		UserID:    p.PostedBy,
		Timestamp: p.Timestamp.UTC(),
	})

	return id, nil
}

func (b *BoardImpl) GetAllPosts(ctx context.Context) (posts []domain.Post, err error) {
	ctx, end := b.begin(ctx, opGetAllPosts)
	defer func() { end(&err) }()

	stored, err := b.PostRepo.GetAll(ctx)
	if err != nil {
		b.Logger.Error("Failed to list posts", "error", err)
		return nil, err
	}

	likes, err := b.LikeRepo.GetAll(ctx)
	if err != nil {
		b.Logger.Error("Failed to list likes", "error", err)
		return nil, err
	}

	likers := make(map[string][]string)
	for _, l := range likes {
		likers[l.PostID] = append(likers[l.PostID], l.LikedBy)
	}

	posts = make([]domain.Post, 0, len(stored))
	for _, p := range stored {
		p.Likes = domain.UniqueLikes(p.Likes, likers[p.ID])
		posts = append(posts, *p)
	}

	return posts, nil
}

func (b *BoardImpl) GetPostWithComments(ctx context.Context, postID string) (p *domain.Post, err error) {
	ctx, end := b.begin(ctx, opGetPostWithComments, trace.WithAttributes(attribute.String("board.post_id", postID)))
	defer func() { end(&err) }()

	if postID == "" {
		return nil, board.ErrMissingPostID
	}

	p, err = b.PostRepo.GetByID(ctx, postID)
	if err != nil {
		if !errors.IsNotFound(err) {
			b.Logger.Error("Failed to get post", "post_id", postID, "error", err)
		}
		return nil, err
	}

	comments, err := b.CommentRepo.GetByPostID(ctx, postID)
	if err != nil {
		b.Logger.Error("Failed to get comments", "post_id", postID, "error", err)
		return nil, err
	}

	likes, err := b.LikeRepo.GetByPostID(ctx, postID)
	if err != nil {
		b.Logger.Error("Failed to get likes", "post_id", postID, "error", err)
		return nil, err
	}

	p.Comments = make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		p.Comments = append(p.Comments, *c)
	}

	likers := make([]string, 0, len(likes))
	for _, l := range likes {
		likers = append(likers, l.LikedBy)
	}
	p.Likes = domain.UniqueLikes(p.Likes, likers)

	return p, nil
}
