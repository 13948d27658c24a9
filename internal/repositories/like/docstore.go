package like

import (
	"context"
	"time"

	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
)

const postIDField = "postId"

type document struct {
	PostID    string    `json:"postId"`
	LikedBy   string    `json:"likedBy"`
	Timestamp time.Time `json:"timestamp"`
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
		logger: logger.WithComponent("LikeRepo"),
	}
}

var _ Repository = (*DocStoreRepository)(nil)

func (r *DocStoreRepository) Create(ctx context.Context, like domain.Like) (string, error) {
	if like.Persisted() {
		return "", ErrAlreadyPersisted
	}
	if like.PostID == "" || like.LikedBy == "" {
		return "", ErrIncomplete
	}

	body, err := r.codec.Encode(docstore.CollectionLikes, document{
		PostID:    like.PostID,
		LikedBy:   like.LikedBy,
		Timestamp: like.Timestamp.UTC(),
	})
	if err != nil {
		return "", err
	}

	id, err := r.store.Insert(ctx, docstore.CollectionLikes, docstore.Document{
		UniqueKey: like.Key(),
		Body:      body,
	})
	if err != nil {
		if errors.IsAlreadyExists(err) {
			return "", ErrAlreadyExists
		}
		return "", errors.Wrap(err, "failed to create like")
	}

	r.logger.Debug("Like created", "like_id", id, "post_id", like.PostID, "liked_by", like.LikedBy)
	return id, nil
}

func (r *DocStoreRepository) GetByPostID(ctx context.Context, postID string) ([]*domain.Like, error) {
	docs, err := r.store.Where(ctx, docstore.CollectionLikes, postIDField, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query likes by post")
	}
	return r.decodeAll(docs)
}

func (r *DocStoreRepository) GetAll(ctx context.Context) ([]*domain.Like, error) {
	docs, err := r.store.All(ctx, docstore.CollectionLikes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list likes")
	}
	return r.decodeAll(docs)
}

func (r *DocStoreRepository) decodeAll(docs []docstore.Document) ([]*domain.Like, error) {
	likes := make([]*domain.Like, 0, len(docs))
	for _, doc := range docs {
		var d document
		if err := r.codec.Decode(docstore.CollectionLikes, doc.Body, &d); err != nil {
			return nil, errors.Wrap(err, "failed to decode like "+doc.ID)
		}
		likes = append(likes, &domain.Like{
			ID:        doc.ID,
			PostID:    d.PostID,
			LikedBy:   d.LikedBy,
			Timestamp: d.Timestamp,
		})
	}
	return likes, nil
}
