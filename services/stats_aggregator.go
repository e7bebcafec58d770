package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yeremiapane/restaurant-reservation/utils"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// WeeklyMode selects how weekly buckets are keyed.
type WeeklyMode string

const (
	// WeeklyCalendar buckets by day-of-month div 7, so boundaries reset
	// at the start of every month. This mirrors the dashboard's
	// historical behavior and is the default.
	WeeklyCalendar WeeklyMode = "calendar"
	// WeeklyISO buckets by ISO week number, tracking continuous weeks
	// across month boundaries.
	WeeklyISO WeeklyMode = "iso"
)

// StatPoint is one raw day of dashboard data: a count (reservations,
// orders) and a total (pax, revenue).
type StatPoint struct {
	Date  string  `json:"date"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// StatBucket is one aggregated output point.
type StatBucket struct {
	Label string  `json:"label"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// StatsAggregator rolls a daily series up into dashboard buckets.
// Sums are conserved: the totals across output buckets always equal
// the totals across the input series.
type StatsAggregator struct {
	WeeklyMode WeeklyMode
}

func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{WeeklyMode: WeeklyCalendar}
}

// Aggregate buckets the series by the requested granularity. Points
// with unparseable dates are bucketed under their raw date string
// rather than dropped, keeping aggregation total and conserving sums.
func (a *StatsAggregator) Aggregate(series []StatPoint, granularity Granularity) ([]StatBucket, error) {
	switch granularity {
	case GranularityDaily:
		return a.daily(series), nil
	case GranularityWeekly:
		return a.bucketBy(series, a.weekLabel), nil
	case GranularityMonthly:
		return a.monthly(series), nil
	default:
		return nil, fmt.Errorf("unknown granularity %q: %w", granularity, ErrValidation)
	}
}

func (a *StatsAggregator) daily(series []StatPoint) []StatBucket {
	sorted := make([]StatPoint, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	out := make([]StatBucket, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, StatBucket{Label: p.Date, Count: p.Count, Total: p.Total})
	}
	return out
}

func (a *StatsAggregator) weekLabel(day time.Time) string {
	if a.WeeklyMode == WeeklyISO {
		year, week := day.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	// Week index restarts on the 1st of each month: days 1-7 are W1,
	// 8-14 are W2, and so on.
	return fmt.Sprintf("%s W%d", day.Format("2006-01"), (day.Day()-1)/7+1)
}

func (a *StatsAggregator) bucketBy(series []StatPoint, label func(time.Time) string) []StatBucket {
	sorted := make([]StatPoint, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	index := make(map[string]int)
	var out []StatBucket
	for _, p := range sorted {
		key := p.Date
		if day, err := utils.ParseDate(p.Date); err == nil {
			key = label(day)
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, StatBucket{Label: key})
		}
		out[i].Count += p.Count
		out[i].Total += p.Total
	}
	return out
}

// monthly sums into twelve fixed buckets named Jan..Dec regardless of
// year; a series spanning several years folds onto the same twelve
// buckets. Months without data stay at zero.
func (a *StatsAggregator) monthly(series []StatPoint) []StatBucket {
	out := make([]StatBucket, 12)
	for i := range out {
		out[i].Label = time.Month(i + 1).String()[:3]
	}
	extra := make(map[string]int)
	for _, p := range series {
		day, err := utils.ParseDate(p.Date)
		if err != nil {
			// Trailing raw-label bucket so bad input is visible in the
			// output instead of silently dropped.
			i, ok := extra[p.Date]
			if !ok {
				i = len(out)
				extra[p.Date] = i
				out = append(out, StatBucket{Label: p.Date})
			}
			out[i].Count += p.Count
			out[i].Total += p.Total
			continue
		}
		i := int(day.Month()) - 1
		out[i].Count += p.Count
		out[i].Total += p.Total
	}
	return out
}
