package boardimpl

import (
	"github.com/orgball2608/board-api/internal/board"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(board.Client)),
	),
)
