package fx

import (
	"github.com/orgball2608/board-api/internal/repositories/comment"
	"github.com/orgball2608/board-api/internal/repositories/like"
	"github.com/orgball2608/board-api/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	comment.Module,
	like.Module,
)
