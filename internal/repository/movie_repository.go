package repository

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/config"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/index"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/models"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/redisearch"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/search"
)

// replaceScript swaps the mutable fields of a movie hash if and only if
// the stored version still matches the caller's expectation. Runs inside
// the store so concurrent editors cannot interleave between check and
// write. Returns the new version, -1 when the key is gone, -2 on a
// version mismatch. ARGV[1] is the expected version, or "any" to skip
// the check.
const replaceScript = `
local cur = redis.call('HGET', KEYS[1], 'version')
if not cur then return -1 end
if ARGV[1] ~= 'any' and cur ~= ARGV[1] then return -2 end
local newv = tonumber(cur) + 1
for i = 2, #ARGV - 1, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i+1])
end
redis.call('HSET', KEYS[1], 'version', newv)
return newv
`

// MovieRepository executes all index-store operations for movie records.
// Every round-trip runs under a bounded timeout and gets one retry with
// backoff before the failure surfaces as retryable to the caller.
type MovieRepository struct {
	exec    redisearch.Executor
	schema  index.Schema
	timeout time.Duration
	backoff time.Duration
}

// New creates a MovieRepository.
func New(exec redisearch.Executor, schema index.Schema, cfg config.SearchConfig) *MovieRepository {
	return &MovieRepository{
		exec:    exec,
		schema:  schema,
		timeout: cfg.QueryTimeout,
		backoff: cfg.RetryBackoff,
	}
}

// Schema exposes the index schema backing this repository.
func (r *MovieRepository) Schema() index.Schema { return r.schema }

// Search runs the compiled query and returns the total match count plus
// the requested page of records.
func (r *MovieRepository) Search(ctx context.Context, e search.Expr, s search.Sort, offset, limit int) (int64, []models.MovieRecord, error) {
	raw, err := r.do(ctx, "search", search.SearchArgs(r.schema.Name, e, s, offset, limit)...)
	if err != nil {
		return 0, nil, err
	}
	total, docs, err := redisearch.DecodeSearch(raw)
	if err != nil {
		return 0, nil, err
	}
	records := make([]models.MovieRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, *models.RecordFromFields(d.ID, d.Fields))
	}
	return total, records, nil
}

// Count returns the total match count without fetching documents.
func (r *MovieRepository) Count(ctx context.Context, e search.Expr) (int64, error) {
	raw, err := r.do(ctx, "count", search.CountArgs(r.schema.Name, e)...)
	if err != nil {
		return 0, err
	}
	total, _, err := redisearch.DecodeSearch(raw)
	return total, err
}

// Facet groups the filtered result set by one tag field and returns the
// per-value counts, ordered count descending with lexical tie-break.
func (r *MovieRepository) Facet(ctx context.Context, e search.Expr, field string, limit int) ([]models.FacetValue, error) {
	raw, err := r.do(ctx, "facet", search.FacetArgs(r.schema.Name, e, field, limit)...)
	if err != nil {
		return nil, err
	}
	rows, err := redisearch.DecodeAggregate(raw)
	if err != nil {
		return nil, err
	}

	values := make([]models.FacetValue, 0, len(rows))
	for _, row := range rows {
		v := row[field]
		if v == "" {
			continue
		}
		count, _ := strconv.ParseInt(row["count"], 10, 64)
		values = append(values, models.FacetValue{Value: v, Count: count})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	return values, nil
}

// Get fetches one record by ID. A missing or empty hash is ErrNotFound.
func (r *MovieRepository) Get(ctx context.Context, id string) (*models.MovieRecord, error) {
	raw, err := r.do(ctx, "get", "HGETALL", id)
	if err != nil {
		return nil, err
	}
	fields, err := asStringMap(raw)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperr.ErrNotFound
	}
	return models.RecordFromFields(id, fields), nil
}

// Insert writes a brand-new record hash. The caller owns ID minting and
// lifecycle timestamps.
func (r *MovieRepository) Insert(ctx context.Context, rec *models.MovieRecord) error {
	args := []interface{}{"HSET", rec.ID}
	for k, v := range rec.Fields() {
		args = append(args, k, v)
	}
	_, err := r.do(ctx, "insert", args...)
	return err
}

// Replace swaps the mutable fields of an existing record. When
// expectedVersion >= 0 the write only succeeds if the stored version
// still matches; pass a negative version to overwrite unconditionally.
// Returns the record's new version. The version, created_at and source
// fields are set once at insert and never travel with a replace; the
// script leaves unlisted fields untouched.
func (r *MovieRepository) Replace(ctx context.Context, id string, expectedVersion int64, fields map[string]interface{}) (int64, error) {
	expect := "any"
	if expectedVersion >= 0 {
		expect = strconv.FormatInt(expectedVersion, 10)
	}
	args := []interface{}{"EVAL", replaceScript, "1", id, expect}
	for k, v := range fields {
		if k == "version" || k == "created_at" || k == "source" {
			continue
		}
		args = append(args, k, v)
	}

	raw, err := r.do(ctx, "replace", args...)
	if err != nil {
		return 0, err
	}
	res, ok := raw.(int64)
	if !ok {
		return 0, errors.New("repository: unexpected replace reply")
	}
	switch res {
	case -1:
		return 0, apperr.ErrNotFound
	case -2:
		return 0, apperr.ErrVersionConflict
	}
	return res, nil
}

// Delete hard-deletes a record. Deleting an unknown ID is ErrNotFound.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	raw, err := r.do(ctx, "delete", "DEL", id)
	if err != nil {
		return err
	}
	if n, ok := raw.(int64); ok && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Info returns the raw FT.INFO attribute map.
func (r *MovieRepository) Info(ctx context.Context) (map[string]string, error) {
	raw, err := r.do(ctx, "info", "FT.INFO", r.schema.Name)
	if err != nil {
		return nil, err
	}
	return redisearch.DecodeInfo(raw)
}

// do runs one command under the repository timeout with a single retry
// on transient failure. Grammar rejections are never retried: they mean
// the query builder produced something malformed, which is our bug.
func (r *MovieRepository) do(ctx context.Context, op string, args ...interface{}) (any, error) {
	attempt := func() (any, error) {
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		return r.exec.Do(cctx, args...)
	}

	raw, err := attempt()
	if err == nil || errors.Is(err, redis.Nil) {
		return raw, nil
	}
	if redisearch.IsSyntaxErr(err) {
		return nil, &apperr.QuerySyntaxError{Query: queryOf(args), Err: err}
	}
	if ctx.Err() != nil {
		return nil, &apperr.UpstreamError{Op: op, Err: ctx.Err()}
	}

	slog.Warn("index store call failed, retrying once", "op", op, "error", err)
	time.Sleep(r.backoff)

	raw, err = attempt()
	if err == nil || errors.Is(err, redis.Nil) {
		return raw, nil
	}
	if redisearch.IsSyntaxErr(err) {
		return nil, &apperr.QuerySyntaxError{Query: queryOf(args), Err: err}
	}
	return nil, &apperr.UpstreamError{Op: op, Err: err}
}

// queryOf extracts the query string from an FT.SEARCH/FT.AGGREGATE arg
// slice for defect logging.
func queryOf(args []interface{}) string {
	if len(args) > 2 {
		if q, ok := args[2].(string); ok {
			return q
		}
	}
	return ""
}

func asStringMap(raw any) (map[string]string, error) {
	switch t := raw.(type) {
	case map[string]string:
		return t, nil
	case map[interface{}]interface{}:
		m := make(map[string]string, len(t))
		for k, v := range t {
			ks, _ := k.(string)
			vs, _ := v.(string)
			m[ks] = vs
		}
		return m, nil
	case map[string]interface{}:
		m := make(map[string]string, len(t))
		for k, v := range t {
			vs, _ := v.(string)
			m[k] = vs
		}
		return m, nil
	case []interface{}: // RESP2 alternating kv list
		m := make(map[string]string, len(t)/2)
		for i := 0; i+1 < len(t); i += 2 {
			ks, _ := t[i].(string)
			vs, _ := t[i+1].(string)
			m[ks] = vs
		}
		return m, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.New("repository: unexpected HGETALL reply shape")
	}
}
