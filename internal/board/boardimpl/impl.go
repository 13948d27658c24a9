package boardimpl

import (
	"context"
	"time"

	"github.com/orgball2608/board-api/internal/board"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/internal/repositories/comment"
	"github.com/orgball2608/board-api/internal/repositories/like"
	"github.com/orgball2608/board-api/internal/repositories/post"
	"github.com/orgball2608/board-api/pkg/clock"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const tracerName = "github.com/orgball2608/board-api/internal/board"

// Operation names used for spans and metrics.
const (
	opCreatePost          = "create_post"
	opAddCommentToPost    = "add_comment_to_post"
	opGetAllPosts         = "get_all_posts"
	opGetPostWithComments = "get_post_with_comments"
	opLikePost            = "like_post"
)

type Opts struct {
	fx.In

	PostRepo    post.Repository
	CommentRepo comment.Repository
	LikeRepo    like.Repository
	Publisher   events.Publisher
	Metrics     *metrics.Metrics
	Logger      logger.Logger
	Clock       clock.Clock
}

type BoardImpl struct {
	PostRepo    post.Repository
	CommentRepo comment.Repository
	LikeRepo    like.Repository
	Publisher   events.Publisher
	Metrics     *metrics.Metrics
	Logger      logger.Logger
	Clock       clock.Clock
	tracer      trace.Tracer
}

func New(opts Opts) *BoardImpl {
	return &BoardImpl{
		PostRepo:    opts.PostRepo,
		CommentRepo: opts.CommentRepo,
		LikeRepo:    opts.LikeRepo,
		Publisher:   opts.Publisher,
		Metrics:     opts.Metrics,
		Logger:      opts.Logger.WithComponent("Board"),
		Clock:       opts.Clock,
		tracer:      otel.Tracer(tracerName),
	}
}

var _ board.Client = (*BoardImpl)(nil)

// begin opens a span for op; the returned func ends it and records the
// outcome held in *errp.
func (b *BoardImpl) begin(ctx context.Context, op string, attrs ...trace.SpanStartOption) (context.Context, func(errp *error)) {
	start := time.Now()
	ctx, span := b.tracer.Start(ctx, "board."+op, attrs...)

	return ctx, func(errp *error) {
		err := *errp
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		b.Metrics.Observe(op, start, err)
	}
}

// publish never fails the caller; the write has already happened.
func (b *BoardImpl) publish(ctx context.Context, event events.Event) {
	if err := b.Publisher.Publish(ctx, event); err != nil {
		b.Logger.Warn("Failed to publish board event", "type", event.Type, "id", event.ID, "error", err)
	}
}
