package comment

import (
	"context"
	"sort"
	"time"

	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
)

const postIDField = "postId"

type document struct {
	PostID        string    `json:"postId"`
	CommentedBy   string    `json:"commentedBy"`
	CommentedUser string    `json:"commentedUser"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

func toDocument(c domain.Comment) document {
	return document{
		PostID:        c.PostID,
		CommentedBy:   c.CommentedBy,
		CommentedUser: c.CommentedUser,
		Content:       c.Content,
		Timestamp:     c.Timestamp.UTC(),
	}
}

func (d document) toDomain(id string) *domain.Comment {
	return &domain.Comment{
		ID:            id,
		PostID:        d.PostID,
		CommentedBy:   d.CommentedBy,
		CommentedUser: d.CommentedUser,
		Content:       d.Content,
		Timestamp:     d.Timestamp,
	}
}

type DocStoreRepository struct {
	store  docstore.Store
	codec  *docstore.Codec
	logger logger.Logger
}

func NewDocStoreRepository(store docstore.Store, codec *docstore.Codec, logger logger.Logger) *DocStoreRepository {
	return &DocStoreRepository{
		store:  store,
		codec:  codec,
		logger: logger.WithComponent("CommentRepo"),
	}
}

var _ Repository = (*DocStoreRepository)(nil)

func (r *DocStoreRepository) Create(ctx context.Context, comment domain.Comment) (string, error) {
	if comment.Persisted() {
		return "", ErrAlreadyPersisted
	}
	if comment.PostID == "" {
		return "", ErrMissingPost
	}

	body, err := r.codec.Encode(docstore.CollectionComments, toDocument(comment))
	if err != nil {
		return "", err
	}

	id, err := r.store.Insert(ctx, docstore.CollectionComments, docstore.Document{Body: body})
	if err != nil {
		return "", errors.Wrap(err, "failed to create comment")
	}

	r.logger.Debug("Comment created", "comment_id", id, "post_id", comment.PostID)
	return id, nil
}

func (r *DocStoreRepository) GetByPostID(ctx context.Context, postID string) ([]*domain.Comment, error) {
	docs, err := r.store.Where(ctx, docstore.CollectionComments, postIDField, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query comments by post")
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for _, doc := range docs {
		var d document
		if err := r.codec.Decode(docstore.CollectionComments, doc.Body, &d); err != nil {
			return nil, errors.Wrap(err, "failed to decode comment "+doc.ID)
		}
		comments = append(comments, d.toDomain(doc.ID))
	}

	// docs arrive in insertion order, which breaks timestamp ties
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Timestamp.Before(comments[j].Timestamp)
	})

	return comments, nil
}
