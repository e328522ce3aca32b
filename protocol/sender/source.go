package sender

import (
	"context"

	"github.com/kilroybot/kilroyws/protocol/frame"
)

// Source is a pull-based iterator over JSON payloads, adapting either a
// pre-materialized sequence or a lazily produced one to one shape. Next
// returns (payload, true, nil) for each item in order, then (zero, false,
// nil) on clean exhaustion, or (zero, false, err) if production failed.
type Source interface {
	Next(ctx context.Context) (frame.JSON, bool, error)
}

// SliceSource adapts a pre-materialized, synchronous sequence of payloads.
type SliceSource struct {
	Items []frame.JSON
	pos   int
}

// NewSliceSource builds a Source over a fixed slice of payloads.
func NewSliceSource(items []frame.JSON) *SliceSource {
	return &SliceSource{Items: items}
}

// Next implements Source.
func (s *SliceSource) Next(ctx context.Context) (frame.JSON, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}
	if s.pos >= len(s.Items) {
		return nil, false, nil
	}
	item := s.Items[s.pos]
	s.pos++
	return item, true, nil
}

// ChanSource adapts a lazily produced, asynchronous sequence of payloads
// fed over a channel. Items must be closed by the producer when done; Err,
// if non-nil, is checked once after Items closes and, if it yields a
// non-nil error, that error is surfaced from Next instead of clean
// exhaustion.
type ChanSource struct {
	Items <-chan frame.JSON
	Err   <-chan error
}

// Next implements Source.
func (s *ChanSource) Next(ctx context.Context) (frame.JSON, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case item, ok := <-s.Items:
		if !ok {
			if s.Err != nil {
				if err := <-s.Err; err != nil {
					return nil, false, err
				}
			}
			return nil, false, nil
		}
		return item, true, nil
	}
}
