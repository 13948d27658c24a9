package docstore

import (
	"github.com/Masterminds/squirrel"
	"github.com/orgball2608/board-api/pkg/errors"
)

var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")
