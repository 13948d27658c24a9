package docstore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	redisPrefix    = "board:"
	releaseTimeout = 2 * time.Second
)

// envelope is the value stored per document in the collection hash.
type envelope struct {
	Seq  int64           `json:"seq"`
	Key  string          `json:"key,omitempty"`
	Body json.RawMessage `json:"body"`
}

// Redis keeps a collection in four keys: a hash of documents, a sorted set
// ordering ids by sequence, the sequence counter and a hash of claimed
// unique keys.
type Redis struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedis(rdb *redis.Client, logger logger.Logger) *Redis {
	return &Redis{
		rdb:    rdb,
		logger: logger.WithComponent("RedisDocStore"),
	}
}

var _ Store = (*Redis)(nil)

func docsKey(c string) string   { return redisPrefix + c + ":docs" }
func orderKey(c string) string  { return redisPrefix + c + ":order" }
func seqKey(c string) string    { return redisPrefix + c + ":seq" }
func uniqueKey(c string) string { return redisPrefix + c + ":unique" }

func (r *Redis) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}

	id := uuid.NewString()

	if doc.UniqueKey != "" {
		claimed, err := r.rdb.HSetNX(ctx, uniqueKey(collection), doc.UniqueKey, id).Result()
		if err != nil {
			return "", errors.Transport(err, "failed to claim unique key in "+collection)
		}
		if !claimed {
			return "", ErrAlreadyExists
		}
	}

	seq, err := r.rdb.Incr(ctx, seqKey(collection)).Result()
	if err != nil {
		r.releaseKey(ctx, collection, doc.UniqueKey)
		return "", errors.Transport(err, "failed to allocate sequence in "+collection)
	}

	value, err := json.Marshal(envelope{Seq: seq, Key: doc.UniqueKey, Body: doc.Body})
	if err != nil {
		r.releaseKey(ctx, collection, doc.UniqueKey)
		return "", errors.Serialization(err, "failed to encode document envelope")
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, docsKey(collection), id, value)
		pipe.ZAdd(ctx, orderKey(collection), redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		r.releaseKey(ctx, collection, doc.UniqueKey)
		return "", errors.Transport(err, "failed to insert into "+collection)
	}

	r.logger.Debug("Document inserted", "collection", collection, "id", id)
	return id, nil
}

func (r *Redis) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := checkCollection(collection); err != nil {
		return Document{}, err
	}

	value, err := r.rdb.HGet(ctx, docsKey(collection), id).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return Document{}, ErrNotFound
		}
		return Document{}, errors.Transport(err, "failed to get document from "+collection)
	}

	return decodeEnvelope(id, value)
}

func (r *Redis) All(ctx context.Context, collection string) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	ids, err := r.rdb.ZRange(ctx, orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, errors.Transport(err, "failed to list "+collection)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	values, err := r.rdb.HMGet(ctx, docsKey(collection), ids...).Result()
	if err != nil {
		return nil, errors.Transport(err, "failed to load "+collection)
	}

	docs := make([]Document, 0, len(ids))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// order entry without a document: a concurrent insert has not finished
			continue
		}
		doc, err := decodeEnvelope(ids[i], s)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *Redis) Where(ctx context.Context, collection, field, value string) ([]Document, error) {
	all, err := r.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0)
	for _, d := range all {
		if fieldEquals(d.Body, field, value) {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (r *Redis) Count(ctx context.Context, collection string) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	n, err := r.rdb.HLen(ctx, docsKey(collection)).Result()
	if err != nil {
		return 0, errors.Transport(err, "failed to count "+collection)
	}
	return n, nil
}

// releaseKey drops a unique-key claim left behind by a failed insert. It runs
// detached from ctx so a cancelled caller still frees the claim.
func (r *Redis) releaseKey(ctx context.Context, collection, key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := r.rdb.HDel(ctx, uniqueKey(collection), key).Err(); err != nil {
		r.logger.Error("Failed to release unique key", "collection", collection, "key", key, "error", err)
	}
}

func decodeEnvelope(id, value string) (Document, error) {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return Document{}, errors.Serialization(err, "failed to decode document "+id)
	}
	return Document{
		ID:        id,
		UniqueKey: env.Key,
		Body:      env.Body,
		Seq:       env.Seq,
	}, nil
}
