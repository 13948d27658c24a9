package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/board-api/internal/domain"
	mock_board "github.com/orgball2608/board-api/internal/board/mocks"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/internal/ratelimit"
	"github.com/orgball2608/board-api/internal/repositories/like"
	"github.com/orgball2608/board-api/internal/repositories/post"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var ts = time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, burst int) (http.Handler, *mock_board.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	b := mock_board.NewMockClient(ctrl)

	s := New(Opts{
		Board:   b,
		Limiter: ratelimit.NewInMemoryLimiter(1, time.Hour, burst),
		Metrics: metrics.New(),
		Logger:  logger.Nop(),
		Config:  &config.Config{},
	})
	return s.Routes(), b
}

func do(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCreatePost(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().
		CreatePost(gomock.Any(), domain.Post{PostedBy: "User1", Title: "Title 1", Content: "Content 1"}).
		Return("p1", nil)

	rec := do(h, http.MethodPost, "/posts", `{"postedBy":"User1","title":"Title 1","content":"Content 1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "p1", decodeBody[idResponse](t, rec).ID)
}

func TestCreatePostMalformed(t *testing.T) {
	h, _ := newTestServer(t, 10)

	rec := do(h, http.MethodPost, "/posts", `{"postedBy":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, errors.CodeInvalidInput, body.Error)
	assert.Equal(t, http.StatusBadRequest, body.Status)
}

func TestListPosts(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().GetAllPosts(gomock.Any()).Return([]domain.Post{
		{ID: "p1", PostedBy: "User1", Title: "Title 1", Timestamp: ts},
	}, nil)

	rec := do(h, http.MethodGet, "/posts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	posts := decodeBody[[]postView](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, []string{}, posts[0].Likes)
	assert.Nil(t, posts[0].Comments)
	assert.NotContains(t, rec.Body.String(), `"comments"`)
}

func TestListPostsEmpty(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().GetAllPosts(gomock.Any()).Return([]domain.Post{}, nil)

	rec := do(h, http.MethodGet, "/posts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetPostWithComments(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().GetPostWithComments(gomock.Any(), "p1").Return(&domain.Post{
		ID:       "p1",
		PostedBy: "User1",
		Comments: []domain.Comment{{ID: "c1", PostID: "p1", CommentedBy: "User2", Content: "hi", Timestamp: ts}},
		Likes:    []string{"User3"},
	}, nil)

	rec := do(h, http.MethodGet, "/posts/p1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[postView](t, rec)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "c1", p.Comments[0].ID)
	assert.Equal(t, []string{"User3"}, p.Likes)
}

func TestGetPostNotFound(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().GetPostWithComments(gomock.Any(), "missing").Return(nil, post.ErrNotFound)

	rec := do(h, http.MethodGet, "/posts/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.CodeNotFound, decodeBody[errorBody](t, rec).Error)
}

func TestGetPostTransportFailure(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().GetPostWithComments(gomock.Any(), "p1").Return(nil, errors.Transport(assert.AnError, "store down"))

	rec := do(h, http.MethodGet, "/posts/p1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, errors.CodeTransport, body.Error)
	assert.NotContains(t, body.Reason, assert.AnError.Error())
}

func TestAddCommentUsesHeaderAuthor(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().
		AddCommentToPost(gomock.Any(), "p1", domain.Comment{CommentedBy: "User2", Content: "hi"}).
		Return("c1", nil)

	rec := do(h, http.MethodPost, "/posts/p1/comments", `{"content":"hi"}`, userHeader, "User2")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "c1", decodeBody[idResponse](t, rec).ID)
}

func TestLikePostConflict(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().LikePost(gomock.Any(), "p1", "User3").Return("l1", nil)
	b.EXPECT().LikePost(gomock.Any(), "p1", "User3").Return("", like.ErrAlreadyExists)

	rec := do(h, http.MethodPost, "/posts/p1/likes", "", userHeader, "User3")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/posts/p1/likes", `{"likedBy":"User3"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errors.CodeAlreadyExists, decodeBody[errorBody](t, rec).Error)
}

func TestLikePostWithoutUser(t *testing.T) {
	h, _ := newTestServer(t, 10)

	rec := do(h, http.MethodPost, "/posts/p1/likes", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikePostChunkedEmptyBody(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().LikePost(gomock.Any(), "p1", "User3").Return("l1", nil)

	req := httptest.NewRequest(http.MethodPost, "/posts/p1/likes", strings.NewReader(""))
	req.ContentLength = -1
	req.Header.Set(userHeader, "User3")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "l1", decodeBody[idResponse](t, rec).ID)
}

func TestLikePostBodyOverridesHeader(t *testing.T) {
	h, b := newTestServer(t, 10)

	b.EXPECT().LikePost(gomock.Any(), "p1", "User4").Return("l2", nil)

	rec := do(h, http.MethodPost, "/posts/p1/likes", `{"likedBy":"User4"}`, userHeader, "User3")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/posts/p1/likes", `{"likedBy":`, userHeader, "User3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWritesAreRateLimited(t *testing.T) {
	h, b := newTestServer(t, 1)

	b.EXPECT().LikePost(gomock.Any(), "p1", "User3").Return("l1", nil)

	rec := do(h, http.MethodPost, "/posts/p1/likes", "", userHeader, "User3")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/posts/p1/likes", "", userHeader, "User3")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", decodeBody[errorBody](t, rec).Error)

	// reads are never limited
	b.EXPECT().GetAllPosts(gomock.Any()).Return([]domain.Post{}, nil)
	rec = do(h, http.MethodGet, "/posts", "", userHeader, "User3")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	h, _ := newTestServer(t, 10)

	rec := do(h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
