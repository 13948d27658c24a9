package comment

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *DocStoreRepository {
	t.Helper()
	codec, err := docstore.NewCodec()
	require.NoError(t, err)
	return NewDocStoreRepository(docstore.NewMemory(), codec, logger.Nop())
}

func fakeComment(postID string, ts time.Time) domain.Comment {
	return domain.Comment{
		PostID:        postID,
		CommentedBy:   gofakeit.UUID(),
		CommentedUser: gofakeit.Username(),
		Content:       gofakeit.Paragraph(1, 1, 6, " "),
		Timestamp:     ts,
	}
}

func TestCreateThenGetByPostID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)

	late := fakeComment("p1", base.Add(time.Minute))
	early := fakeComment("p1", base)
	tie := fakeComment("p1", base.Add(time.Minute))
	other := fakeComment("p2", base)

	var ids []string
	for _, c := range []domain.Comment{late, early, tie, other} {
		id, err := repo.Create(ctx, c)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := repo.GetByPostID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, ids[1], got[0].ID)
	assert.Equal(t, ids[0], got[1].ID)
	assert.Equal(t, ids[2], got[2].ID)

	early.ID = ids[1]
	assert.Equal(t, early, *got[0])
}

func TestGetByPostIDEmpty(t *testing.T) {
	got, err := newTestRepo(t).GetByPostID(context.Background(), "p1")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	ts := time.Now()

	withID := fakeComment("p1", ts)
	withID.ID = "c1"
	_, err := repo.Create(ctx, withID)
	assert.ErrorIs(t, err, ErrAlreadyPersisted)

	_, err = repo.Create(ctx, fakeComment("", ts))
	assert.ErrorIs(t, err, ErrMissingPost)

	empty := fakeComment("p1", ts)
	empty.Content = ""
	_, err = repo.Create(ctx, empty)
	assert.True(t, errors.IsSerialization(err))
}

func TestDocumentRoundTrip(t *testing.T) {
	codec, err := docstore.NewCodec()
	require.NoError(t, err)
	in := fakeComment("p1", time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC))

	body, err := codec.Encode(docstore.CollectionComments, toDocument(in))
	require.NoError(t, err)

	var d document
	require.NoError(t, codec.Decode(docstore.CollectionComments, body, &d))

	in.ID = "c1"
	assert.Equal(t, in, *d.toDomain("c1"))
}
