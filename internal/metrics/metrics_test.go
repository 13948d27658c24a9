package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	start := time.Now()

	m.Observe("create_post", start, nil)
	m.Observe("create_post", start, nil)
	m.Observe("get_post", start, errors.NotFound(nil, "post not found"))
	m.Observe("get_post", start, assert.AnError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ops.WithLabelValues("create_post", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("get_post", errors.CodeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("get_post", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestSetDocuments(t *testing.T) {
	m := New()
	m.SetDocuments("posts", 3)
	m.SetDocuments("posts", 5)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.documents.WithLabelValues("posts")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetDocuments("likes", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `board_documents{collection="likes"} 1`))
}
