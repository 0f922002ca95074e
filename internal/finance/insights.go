package finance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"finboard/internal/core"
)

// ErrUnknownFilter is returned when an insight filter mode is not recognised.
var ErrUnknownFilter = errors.New("unknown insight filter")

// InsightFilter selects which insights are shown.
type InsightFilter string

const (
	FilterAll            InsightFilter = "all"
	FilterHighPriority   InsightFilter = "high"
	FilterActionRequired InsightFilter = "action-required"
)

// ParseInsightFilter maps a user-supplied mode to an InsightFilter. An empty
// string means FilterAll.
func ParseInsightFilter(s string) (InsightFilter, error) {
	switch f := InsightFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterHighPriority, FilterActionRequired:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Match reports whether i passes the filter.
func (f InsightFilter) Match(i core.Insight) bool {
	switch f {
	case FilterHighPriority:
		return i.Priority == core.High
	case FilterActionRequired:
		return i.ActionRequired
	}
	return true
}

// PriorityWeight orders priorities from low (1) to high (3). Unknown
// priorities weigh 0 and sort last.
func PriorityWeight(p core.Priority) int {
	switch p {
	case core.High:
		return 3
	case core.Medium:
		return 2
	case core.Low:
		return 1
	}
	return 0
}

// RankInsights filters insights and orders the result by priority, impact
// and recency, all descending. Insights with identical keys keep their input
// order. The input slice is not modified.
func RankInsights(insights []core.Insight, f InsightFilter) []core.Insight {
	out := make([]core.Insight, 0, len(insights))
	for _, i := range insights {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if wx, wy := PriorityWeight(x.Priority), PriorityWeight(y.Priority); wx != wy {
			return wx > wy
		}
		if x.Impact != y.Impact {
			return x.Impact > y.Impact
		}
		return x.CreatedAt.After(y.CreatedAt)
	})
	return out
}

// InsightsSummary backs the counters above the insights list.
type InsightsSummary struct {
	Total          int     `json:"total"`
	HighPriority   int     `json:"high_priority"`
	ActionRequired int     `json:"action_required"`
	AverageImpact  float64 `json:"average_impact"`
}

// SummarizeInsights counts insights by priority and action flag and averages
// their impact. An empty list yields zeros.
func SummarizeInsights(insights []core.Insight) InsightsSummary {
	var s InsightsSummary
	var impact int
	for _, i := range insights {
		s.Total++
		impact += i.Impact
		if i.Priority == core.High {
			s.HighPriority++
		}
		if i.ActionRequired {
			s.ActionRequired++
		}
	}
	s.AverageImpact = mean(float64(impact), s.Total)
	return s
}
