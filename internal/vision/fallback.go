package vision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cardintake/internal/port"
)

// circuitState tracks rate-limit backoff for a single describer.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackDescriber tries describers in order, skipping those with open circuits.
// It implements port.CardDescriber.
type FallbackDescriber struct {
	describers []port.CardDescriber
	circuits   []*circuitState
	names      []string
}

// NewFallbackDescriber creates a FallbackDescriber from an ordered list of describers and their names.
func NewFallbackDescriber(describers []port.CardDescriber, names []string) *FallbackDescriber {
	circuits := make([]*circuitState, len(describers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackDescriber{
		describers: describers,
		circuits:   circuits,
		names:      names,
	}
}

func (f *FallbackDescriber) Describe(ctx context.Context, input port.DescribeInput) (*port.DescribeOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, d := range f.describers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("vision.FallbackDescriber: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := d.Describe(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("vision.FallbackDescriber: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All describers were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all vision providers rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all vision providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all vision providers failed: %w", lastErr)
}
