package boardimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/domain"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/internal/repositories/comment"
	"github.com/orgball2608/board-api/internal/repositories/like"
	"github.com/orgball2608/board-api/internal/repositories/post"
	"github.com/orgball2608/board-api/pkg/clock"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryBoard(t *testing.T) (*BoardImpl, *clock.StubClock) {
	t.Helper()

	store := docstore.NewMemory()
	codec, err := docstore.NewCodec()
	require.NoError(t, err)

	log := logger.Nop()
	clk := clock.NewStubClock(now)

	return New(Opts{
		PostRepo:    post.NewDocStoreRepository(store, codec, log),
		CommentRepo: comment.NewDocStoreRepository(store, codec, log),
		LikeRepo:    like.NewDocStoreRepository(store, codec, log),
		Publisher:   events.Nop{},
		Metrics:     metrics.New(),
		Logger:      log,
		Clock:       clk,
	}), clk
}

func TestCreateThenList(t *testing.T) {
	b, _ := newMemoryBoard(t)
	ctx := context.Background()

	in := domain.Post{
		PostedBy:   gofakeit.UUID(),
		PostedUser: gofakeit.Username(),
		Title:      gofakeit.Paragraph(1, 1, 4, " "),
		Content:    gofakeit.Paragraph(1, 3, 10, " "),
		Timestamp:  now.Add(-time.Hour),
	}

	id, err := b.CreatePost(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	want := in
	want.ID = id
	want.Likes = []string{}
	assert.Equal(t, want, posts[0])
}

func TestExamplePostIsListed(t *testing.T) {
	b, _ := newMemoryBoard(t)
	ctx := context.Background()

	id, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 1", Content: "Content 1"})
	require.NoError(t, err)

	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, id, posts[0].ID)
	assert.Equal(t, "User1", posts[0].PostedBy)
	assert.Equal(t, "Title 1", posts[0].Title)
	assert.Equal(t, "Content 1", posts[0].Content)
	assert.Equal(t, now, posts[0].Timestamp)
}

func TestListEmptyStore(t *testing.T) {
	b, _ := newMemoryBoard(t)

	posts, err := b.GetAllPosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Len(t, posts, 0)
}

func TestCommentThenGetWithComments(t *testing.T) {
	b, clk := newMemoryBoard(t)
	ctx := context.Background()

	postID, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 1", Content: "Content 1"})
	require.NoError(t, err)
	otherID, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 2", Content: "Content 2"})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	first, err := b.AddCommentToPost(ctx, postID, domain.Comment{CommentedBy: "User2", CommentedUser: "bob", Content: "first"})
	require.NoError(t, err)
	_, err = b.AddCommentToPost(ctx, otherID, domain.Comment{CommentedBy: "User2", Content: "elsewhere"})
	require.NoError(t, err)
	clk.Advance(time.Minute)
	second, err := b.AddCommentToPost(ctx, postID, domain.Comment{CommentedBy: "User3", Content: "second"})
	require.NoError(t, err)

	p, err := b.GetPostWithComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, domain.Comment{
		ID:            first,
		PostID:        postID,
		CommentedBy:   "User2",
		CommentedUser: "bob",
		Content:       "first",
		Timestamp:     now.Add(time.Minute),
	}, p.Comments[0])
	assert.Equal(t, second, p.Comments[1].ID)

	// listing never populates comments
	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	for _, listed := range posts {
		assert.Nil(t, listed.Comments)
	}
}

func TestGetWithCommentsUnknownPost(t *testing.T) {
	b, _ := newMemoryBoard(t)

	p, err := b.GetPostWithComments(context.Background(), "does-not-exist")
	assert.Nil(t, p)
	assert.True(t, errors.IsNotFound(err))
}

func TestCommentOnUnknownPost(t *testing.T) {
	b, _ := newMemoryBoard(t)

	_, err := b.AddCommentToPost(context.Background(), "does-not-exist", domain.Comment{CommentedBy: "User2", Content: "hi"})
	assert.True(t, errors.IsNotFound(err))
}

func TestLikeOncePerUser(t *testing.T) {
	b, _ := newMemoryBoard(t)
	ctx := context.Background()

	postID, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 1", Likes: []string{"User1", "User1"}})
	require.NoError(t, err)

	_, err = b.LikePost(ctx, postID, "User3")
	require.NoError(t, err)

	_, err = b.LikePost(ctx, postID, "User3")
	assert.True(t, errors.IsAlreadyExists(err))

	_, err = b.LikePost(ctx, postID, "User1")
	assert.True(t, errors.IsAlreadyExists(err))

	p, err := b.GetPostWithComments(ctx, postID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"User1", "User3"}, p.Likes)
}

func TestConcurrentLikes(t *testing.T) {
	b, _ := newMemoryBoard(t)
	ctx := context.Background()

	postID, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 1"})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.LikePost(ctx, postID, "User3"); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)

	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"User3"}, posts[0].Likes)
}

func TestLikeUnknownPost(t *testing.T) {
	b, _ := newMemoryBoard(t)

	_, err := b.LikePost(context.Background(), "does-not-exist", "User3")
	assert.True(t, errors.IsNotFound(err))
}

func TestCancelledContext(t *testing.T) {
	b, _ := newMemoryBoard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.CreatePost(ctx, domain.Post{PostedBy: "User1", Title: "Title 1"})
	assert.Error(t, err)
}
