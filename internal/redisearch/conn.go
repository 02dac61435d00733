// Package redisearch is a thin shim over github.com/redis/go-redis/v9 for
// issuing FT.* commands and decoding their replies. The repository layer
// talks to the index store exclusively through the Executor interface so
// tests can substitute a fake.
package redisearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Executor runs one raw command against the index store.
type Executor interface {
	Do(ctx context.Context, args ...interface{}) (any, error)
}

// Conn implements Executor on top of *redis.Client, recording a span per
// round-trip.
type Conn struct {
	client *redis.Client
}

// NewConn wraps an existing go-redis client.
func NewConn(c *redis.Client) *Conn { return &Conn{client: c} }

// Do satisfies Executor.
func (c *Conn) Do(ctx context.Context, args ...interface{}) (any, error) {
	ctx, span := otel.Tracer("moviesearch.redisearch").Start(ctx, "redis.do")
	defer span.End()

	start := time.Now()
	res, err := c.client.Do(ctx, args...).Result()
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("redis.cmd", stringifyCmd(args)),
		attribute.Float64("redis.duration_ms", float64(elapsed.Microseconds())/1000.0),
	)
	if err != nil {
		span.RecordError(err)
	}
	return res, err
}

// Close closes the underlying client.
func (c *Conn) Close() error { return c.client.Close() }

// IsSyntaxErr reports whether the store rejected the query grammar, which
// indicates a bug in our query builder rather than an infrastructure fault.
func IsSyntaxErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "syntax error") ||
		strings.Contains(msg, "unknown argument") ||
		strings.Contains(msg, "expected")
}

func stringifyCmd(args []interface{}) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(toString(a))
	}
	return sb.String()
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
