package docstore

import (
	"context"
	stderrors "errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
)

const pgUniqueViolation = "23505"

// Pgx stores each collection in a Postgres table of the same name holding
// the document body as JSONB. See internal/migrations for the schema.
type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PgxDocStore"),
	}
}

var _ Store = (*Pgx)(nil)

func (p *Pgx) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}

	builder := SqBuilder.Insert(collection).Columns("body").Values(string(doc.Body))
	if doc.UniqueKey != "" {
		builder = SqBuilder.Insert(collection).
			Columns("unique_key", "body").
			Values(doc.UniqueKey, string(doc.Body))
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return "", ErrBadQuery
	}

	var id string
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", ErrAlreadyExists
		}
		return "", errors.Transport(err, "failed to insert into "+collection)
	}

	p.logger.Debug("Document inserted", "collection", collection, "id", id)
	return id, nil
}

func (p *Pgx) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := checkCollection(collection); err != nil {
		return Document{}, err
	}

	query, args, err := SqBuilder.
		Select("id", "seq", "COALESCE(unique_key, '')", "body").
		From(collection).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Document{}, ErrBadQuery
	}

	doc, err := scanDocument(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, errors.Transport(err, "failed to get document from "+collection)
	}

	return doc, nil
}

func (p *Pgx) All(ctx context.Context, collection string) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query, args, err := SqBuilder.
		Select("id", "seq", "COALESCE(unique_key, '')", "body").
		From(collection).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, ErrBadQuery
	}

	return p.query(ctx, collection, query, args)
}

func (p *Pgx) Where(ctx context.Context, collection, field, value string) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if !plainField(field) {
		return nil, errors.InvalidInput("unsupported field name " + field)
	}

	// inlined so the expression indexes on body->>'postId' apply
	query, args, err := SqBuilder.
		Select("id", "seq", "COALESCE(unique_key, '')", "body").
		From(collection).
		Where(sq.Expr("body->>'"+field+"' = ?", value)).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, ErrBadQuery
	}

	return p.query(ctx, collection, query, args)
}

func (p *Pgx) Count(ctx context.Context, collection string) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	query, args, err := SqBuilder.Select("count(*)").From(collection).ToSql()
	if err != nil {
		return 0, ErrBadQuery
	}

	var n int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.Transport(err, "failed to count "+collection)
	}
	return n, nil
}

func (p *Pgx) query(ctx context.Context, collection, query string, args []interface{}) ([]Document, error) {
	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Transport(err, "failed to query "+collection)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, errors.Transport(err, "failed to scan "+collection+" row")
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Transport(err, "error iterating "+collection+" rows")
	}

	return docs, nil
}

func plainField(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}

func scanDocument(row pgx.Row) (Document, error) {
	var (
		doc  Document
		body []byte
	)
	if err := row.Scan(&doc.ID, &doc.Seq, &doc.UniqueKey, &body); err != nil {
		return Document{}, err
	}
	doc.Body = body
	return doc, nil
}
