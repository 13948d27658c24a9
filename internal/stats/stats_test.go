package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gauges = `
# HELP board_documents Documents per collection at the last stats refresh.
# TYPE board_documents gauge
board_documents{collection="comments"} 0
board_documents{collection="likes"} 1
board_documents{collection="posts"} 2
`

func newRefresher(t *testing.T, interval time.Duration) (*Refresher, *metrics.Metrics) {
	t.Helper()

	store := docstore.NewMemory()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := store.Insert(ctx, docstore.CollectionPosts, docstore.Document{Body: []byte(`{}`)})
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, docstore.CollectionLikes, docstore.Document{UniqueKey: "p1:u1", Body: []byte(`{}`)})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Board.StatsInterval = interval

	m := metrics.New()
	return New(Opts{Store: store, Metrics: m, Logger: logger.Nop(), Config: cfg}), m
}

func TestRefresh(t *testing.T) {
	r, m := newRefresher(t, time.Minute)

	r.Refresh(context.Background())

	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(gauges), "board_documents"))
}

func TestStartRefreshesImmediately(t *testing.T) {
	r, m := newRefresher(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, r.Start(ctx))
	defer func() { _ = r.Stop() }()

	assert.Eventually(t, func() bool {
		return testutil.GatherAndCompare(m.Registry(), strings.NewReader(gauges), "board_documents") == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartDisabled(t *testing.T) {
	r, _ := newRefresher(t, 0)

	require.NoError(t, r.Start(context.Background()))
	assert.NoError(t, r.Stop())
}
