package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Window bounds.
const (
	DefaultDays = 7
	MinDays     = 1
	MaxDays     = 90

	// MaxChunk is the widest range the provider accepts for a single grouped query.
	MaxChunk = 24 * time.Hour
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// LastDays returns the window ending at now and spanning days * 24h.
func LastDays(now time.Time, days int) Window {
	now = now.UTC()
	return Window{Start: now.Add(-time.Duration(days) * 24 * time.Hour), End: now}
}

// Last24h returns the trailing 24 hour window.
func Last24h(now time.Time) Window {
	return LastDays(now, 1)
}

// Chunks splits the window into consecutive, disjoint sub-windows of at most size.
// The last chunk may be shorter. An empty or inverted window yields no chunks.
func (w Window) Chunks(size time.Duration) []Window {
	if size <= 0 {
		size = MaxChunk
	}
	if !w.End.After(w.Start) {
		return nil
	}

	n := int(math.Ceil(float64(w.Duration()) / float64(size)))
	out := make([]Window, 0, n)
	for start := w.Start; start.Before(w.End); start = start.Add(size) {
		end := start.Add(size)
		if end.After(w.End) {
			end = w.End
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// ClampDays parses a days query value. Blank, invalid or non-positive input
// yields DefaultDays. Positive values are truncated and clamped to [MinDays, MaxDays].
func ClampDays(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDays
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultDays
	}
	if f <= 0 {
		return DefaultDays
	}
	return max(MinDays, int(math.Trunc(math.Min(f, MaxDays))))
}
