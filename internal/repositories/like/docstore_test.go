package like

import (
	"context"
	"sync"
	"testing"
	"time"

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

var ts = time.Date(2024, 5, 10, 10, 0, 0, 5, time.UTC)

func TestCreateAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id1, err := repo.Create(ctx, domain.Like{PostID: "p1", LikedBy: "User3", Timestamp: ts})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Like{PostID: "p2", LikedBy: "User3", Timestamp: ts})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Like{PostID: "p1", LikedBy: "User4", Timestamp: ts})
	require.NoError(t, err)

	got, err := repo.GetByPostID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Like{ID: id1, PostID: "p1", LikedBy: "User3", Timestamp: ts}, *got[0])
	assert.Equal(t, "User4", got[1].LikedBy)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, domain.Like{PostID: "p1", LikedBy: "User3", Timestamp: ts})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.Like{PostID: "p1", LikedBy: "User3", Timestamp: ts.Add(time.Second)})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestConcurrentLikesDoNotDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, domain.Like{PostID: "p1", LikedBy: "User3", Timestamp: ts})
		}()
	}
	wg.Wait()

	got, err := repo.GetByPostID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, domain.Like{ID: "l1", PostID: "p1", LikedBy: "u1"})
	assert.ErrorIs(t, err, ErrAlreadyPersisted)

	_, err = repo.Create(ctx, domain.Like{PostID: "p1"})
	assert.ErrorIs(t, err, ErrIncomplete)
}
