// Package usecase implements the market-data fallback chain.
//
// Each canonical operation is served by an ordered list of sources (primary first). A
// source performs one upstream call, classifies the raw response and normalizes it into
// the canonical shape. The resolver walks the list once and never surfaces errors to the
// caller: it returns either a normalized value or the operation's sentinel.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Outcome classifies what a source's attempt produced.
type Outcome int

const (
	// Success means Value holds a normalized answer.
	Success Outcome = iota
	// RateLimited means the upstream answered with a throttling notice.
	RateLimited
	// NoData means the upstream answered well-formed but without a result.
	// Value holds the normalized "nothing found" shape.
	NoData
	// Malformed means the body could not be normalized.
	Malformed
	// TransportFailed means no usable response was obtained at all.
	TransportFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case RateLimited:
		return "rate_limited"
	case NoData:
		return "no_data"
	case Malformed:
		return "malformed"
	case TransportFailed:
		return "transport_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the tagged outcome of one attempt.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

// Succeeded wraps a normalized value.
func Succeeded[T any](v T) Result[T] { return Result[T]{Outcome: Success, Value: v} }

// Failed builds a non-success result carrying the cause.
func Failed[T any](o Outcome, err error) Result[T] { return Result[T]{Outcome: o, Err: err} }

// Empty builds a NoData result carrying the normalized empty answer.
func Empty[T any](v T, err error) Result[T] { return Result[T]{Outcome: NoData, Value: v, Err: err} }

// Source is one provider's capability for one operation.
// Following Go convention: the interface is defined here, by the consumer.
type Source[In, T any] interface {
	Name() string
	Attempt(ctx context.Context, in In) Result[T]
}

// SourceFunc adapts a function to Source.
type SourceFunc[In, T any] struct {
	Provider string
	Fn       func(ctx context.Context, in In) Result[T]
}

// Name returns the provider name.
func (s SourceFunc[In, T]) Name() string { return s.Provider }

// Attempt calls Fn.
func (s SourceFunc[In, T]) Attempt(ctx context.Context, in In) Result[T] { return s.Fn(ctx, in) }

// Chain is the static, ordered fallback list of one operation.
type Chain[In, T any] struct {
	op          string
	sources     []Source[In, T]
	unavailable func() T
	logger      *slog.Logger
}

// NewChain builds a chain. unavailable produces the sentinel returned when every source
// fails; it is a func so that slices and maps are never shared between calls.
func NewChain[In, T any](op string, unavailable func() T, logger *slog.Logger, sources ...Source[In, T]) *Chain[In, T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain[In, T]{op: op, sources: sources, unavailable: unavailable, logger: logger}
}

// Resolve tries each source exactly once, in order.
//
// The first Success wins. A NoData answer from the last source is the genuine answer and is
// returned as-is; any other failure of the last source yields the sentinel. A panic inside a
// source counts as Malformed for that source.
func (c *Chain[In, T]) Resolve(ctx context.Context, in In) T {
	for i, src := range c.sources {
		r := attempt(ctx, src, in)
		if r.Outcome == Success {
			return r.Value
		}

		last := i == len(c.sources)-1
		if !last {
			c.logger.Warn("market data source failed, falling back",
				"op", c.op, "provider", src.Name(), "outcome", r.Outcome.String(), "error", r.Err)
			continue
		}
		if r.Outcome == NoData {
			c.logger.Info("market data not found",
				"op", c.op, "provider", src.Name(), "error", r.Err)
			return r.Value
		}
		c.logger.Error("market data unavailable",
			"op", c.op, "provider", src.Name(), "outcome", r.Outcome.String(), "error", r.Err)
	}
	return c.unavailable()
}

func attempt[In, T any](ctx context.Context, src Source[In, T], in In) (r Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = Failed[T](Malformed, fmt.Errorf("%s: panic during normalization: %v", src.Name(), p))
		}
	}()
	return src.Attempt(ctx, in)
}
