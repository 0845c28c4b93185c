// Package analysis summarizes counter histories. All figures are computed
// directly from event timestamps:
//   - totals, first/last event and the time span between them
//   - mean and shortest interval between consecutive events
//   - events per minute and a least-squares trend of the cumulative count
//   - counters whose totals stand out from the rest (Z-score)
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/tally/internal/registry"
	"github.com/Mr-Dark-debug/tally/pkg/timeutil"
)

// ============================================================
// Per-counter summary
// ============================================================

// CounterSummary describes one counter's history.
type CounterSummary struct {
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	FirstEvent     *int64  `json:"first_event,omitempty"` // Unix milliseconds
	LastEvent      *int64  `json:"last_event,omitempty"`
	SpanMs         int64   `json:"span_ms"`
	MeanIntervalMs float64 `json:"mean_interval_ms"`
	MinIntervalMs  int64   `json:"min_interval_ms"`
	PerMinute      float64 `json:"per_minute"`
	Slope          float64 `json:"slope"`     // events per minute, fitted
	RSquared       float64 `json:"r_squared"` // goodness of fit
}

// dataPoint is one observation of the cumulative count.
type dataPoint struct {
	minutes float64 // since the first event
	count   float64
}

// Summarize computes the summary for a single counter. events must be in
// the order they were recorded.
func Summarize(name string, events []int64) CounterSummary {
	s := CounterSummary{Name: name, Total: len(events)}
	if len(events) == 0 {
		return s
	}

	sorted := make([]int64, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	first, last := sorted[0], sorted[len(sorted)-1]
	s.FirstEvent = &first
	s.LastEvent = &last
	s.SpanMs = last - first

	if len(sorted) < 2 {
		return s
	}

	s.MinIntervalMs = math.MaxInt64
	points := make([]dataPoint, 0, len(sorted))
	for i, ts := range sorted {
		points = append(points, dataPoint{
			minutes: float64(ts-first) / 60000.0,
			count:   float64(i + 1),
		})
		if i > 0 {
			if gap := ts - sorted[i-1]; gap < s.MinIntervalMs {
				s.MinIntervalMs = gap
			}
		}
	}
	s.MeanIntervalMs = round(float64(s.SpanMs)/float64(len(sorted)-1), 100)

	if s.SpanMs > 0 {
		s.PerMinute = round(float64(len(sorted))/(float64(s.SpanMs)/60000.0), 100)
	}

	slope, _, rSquared := linearRegression(points)
	s.Slope = round(slope, 1000)
	s.RSquared = round(rSquared, 1000)
	return s
}

// linearRegression computes ordinary least squares regression.
// Returns slope (m), intercept (b), and R-squared goodness of fit.
func linearRegression(points []dataPoint) (slope, intercept, rSquared float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		sumX += p.minutes
		sumY += p.count
		sumXY += p.minutes * p.count
		sumX2 += p.minutes * p.minutes
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for _, p := range points {
		predicted := slope*p.minutes + intercept
		ssRes += (p.count - predicted) * (p.count - predicted)
		ssTot += (p.count - meanY) * (p.count - meanY)
	}

	if ssTot == 0 {
		rSquared = 1.0
	} else {
		rSquared = 1 - ssRes/ssTot
	}

	return slope, intercept, rSquared
}

func round(v float64, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// ============================================================
// Outlier counters
// ============================================================

// Hotspot is a counter whose total is far above the others.
type Hotspot struct {
	Name     string  `json:"name"`
	Total    int     `json:"total"`
	ZScore   float64 `json:"z_score"`
	Severity string  `json:"severity"` // "low", "medium", "high"
}

// DetectHotspots flags counters whose totals have a Z-score above 1.5
// relative to all counters. Fewer than three counters never produce
// hotspots.
func DetectHotspots(summaries []CounterSummary) []Hotspot {
	if len(summaries) < 3 {
		return nil
	}

	var sum, sumSq float64
	for _, s := range summaries {
		v := float64(s.Total)
		sum += v
		sumSq += v * v
	}
	n := float64(len(summaries))
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)
	if stddev == 0 {
		return nil
	}

	var hotspots []Hotspot
	for _, s := range summaries {
		z := (float64(s.Total) - mean) / stddev
		if z <= 1.5 {
			continue
		}
		severity := "low"
		if z > 3.0 {
			severity = "high"
		} else if z > 2.0 {
			severity = "medium"
		}
		hotspots = append(hotspots, Hotspot{
			Name:     s.Name,
			Total:    s.Total,
			ZScore:   round(z, 100),
			Severity: severity,
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].ZScore > hotspots[j].ZScore
	})
	return hotspots
}

// ============================================================
// Full report
// ============================================================

// Report is the output of `tally summarize`.
type Report struct {
	GeneratedAt string           `json:"generated_at"`
	Counters    []CounterSummary `json:"counters"`
	TotalEvents int              `json:"total_events"`
	Hotspots    []Hotspot        `json:"hotspots"`
}

// Analyze summarizes every counter in snap, keeping its order.
func Analyze(snap registry.Snapshot, now time.Time) *Report {
	report := &Report{
		GeneratedAt: now.Format(time.RFC3339),
		Counters:    make([]CounterSummary, 0, len(snap.Names)),
	}
	for _, name := range snap.Names {
		s := Summarize(name, snap.Events[name])
		report.Counters = append(report.Counters, s)
		report.TotalEvents += s.Total
	}
	report.Hotspots = DetectHotspots(report.Counters)
	return report
}

// FormatReport renders the report as markdown.
func FormatReport(report *Report) string {
	var b strings.Builder

	b.WriteString("# Tally Summary\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n", report.GeneratedAt))
	b.WriteString(fmt.Sprintf("**Counters:** %d  **Events:** %d\n\n", len(report.Counters), report.TotalEvents))

	if len(report.Counters) == 0 {
		b.WriteString("No counters.\n")
		return b.String()
	}

	b.WriteString("| Counter | Total | First | Last | Span | Mean Gap | Per Min | R² |\n")
	b.WriteString("|---------|-------|-------|------|------|----------|---------|----|\n")
	for _, s := range report.Counters {
		first, last := "-", "-"
		if s.FirstEvent != nil {
			first = timeutil.FormatTimestampFull(*s.FirstEvent)
			last = timeutil.FormatTimestampFull(*s.LastEvent)
		}
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %.2f | %.3f |\n",
			escapeCell(s.Name), s.Total, first, last,
			timeutil.FormatDuration(s.SpanMs),
			timeutil.FormatDuration(int64(s.MeanIntervalMs)),
			s.PerMinute, s.RSquared))
	}
	b.WriteString("\n")

	if len(report.Hotspots) > 0 {
		b.WriteString("## Hotspots\n\n")
		for _, h := range report.Hotspots {
			b.WriteString(fmt.Sprintf("- **%s**: %d events (Z-score %.2f, %s)\n",
				h.Name, h.Total, h.ZScore, h.Severity))
		}
	}

	return b.String()
}

// escapeCell keeps a value inside its markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
