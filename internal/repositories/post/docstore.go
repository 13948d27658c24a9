package post

import (
	"context"
	"time"

	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
)

// document is the stored shape of a post. The id is the document key and
// comments live in their own collection.
type document struct {
	PostedBy   string    `json:"postedBy"`
	PostedUser string    `json:"postedUser"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Likes      []string  `json:"likes"`
}

func toDocument(p domain.Post) document {
	return document{
		PostedBy:   p.PostedBy,
		PostedUser: p.PostedUser,
		Title:      p.Title,
		Content:    p.Content,
		Timestamp:  p.Timestamp.UTC(),
		Likes:      domain.UniqueLikes(p.Likes),
	}
}

func (d document) toDomain(id string) *domain.Post {
	return &domain.Post{
		ID:         id,
		PostedBy:   d.PostedBy,
		PostedUser: d.PostedUser,
		Title:      d.Title,
		Content:    d.Content,
		Timestamp:  d.Timestamp,
		Likes:      domain.UniqueLikes(d.Likes),
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
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*DocStoreRepository)(nil)

func (r *DocStoreRepository) Create(ctx context.Context, post domain.Post) (string, error) {
	if post.Persisted() {
		return "", ErrAlreadyPersisted
	}

	body, err := r.codec.Encode(docstore.CollectionPosts, toDocument(post))
	if err != nil {
		return "", err
	}

	id, err := r.store.Insert(ctx, docstore.CollectionPosts, docstore.Document{Body: body})
	if err != nil {
		return "", errors.Wrap(err, "failed to create post")
	}

	r.logger.Debug("Post created", "post_id", id, "posted_by", post.PostedBy)
	return id, nil
}

func (r *DocStoreRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionPosts, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get post by id")
	}

	return r.decode(doc)
}

func (r *DocStoreRepository) GetAll(ctx context.Context) ([]*domain.Post, error) {
	docs, err := r.store.All(ctx, docstore.CollectionPosts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, doc := range docs {
		p, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, nil
}

func (r *DocStoreRepository) decode(doc docstore.Document) (*domain.Post, error) {
	var d document
	if err := r.codec.Decode(docstore.CollectionPosts, doc.Body, &d); err != nil {
		return nil, errors.Wrap(err, "failed to decode post "+doc.ID)
	}
	return d.toDomain(doc.ID), nil
}
