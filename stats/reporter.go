package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/omniscale/osmworld/logging"
)

// StartReporter logs the element rates every interval until ctx is done.
func (m *Metrics) StartReporter(ctx context.Context, interval time.Duration) {
	if m == nil {
		return
	}
	go func() {
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				logging.Progress(m.progress(now))
			}
		}
	}()
}

func (m *Metrics) progress(now time.Time) string {
	pointsPS := int64(m.points.Tick(now)/100) * 100
	waysPS := int64(m.ways.Tick(now)/100) * 100
	relsPS := int64(m.rels.Tick(now)/10) * 10
	return fmt.Sprintf("Points: %7d/s (%9d) Ways: %7d/s (%8d) Relations: %6d/s (%7d)",
		pointsPS,
		m.points.Value(),
		waysPS,
		m.ways.Value(),
		relsPS,
		m.rels.Value(),
	)
}

// Summary returns the totals of all added elements.
func (m *Metrics) Summary() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("points: %d (%.0f/s), ways: %d (%.0f/s), relations: %d",
		m.points.Value(), m.points.Rps(),
		m.ways.Value(), m.ways.Rps(),
		m.rels.Value(),
	)
}
