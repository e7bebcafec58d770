package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSeries() []StatPoint {
	return []StatPoint{
		{Date: "2025-01-03", Count: 2, Total: 4},
		{Date: "2025-01-08", Count: 1, Total: 2},
		{Date: "2025-01-29", Count: 3, Total: 7},
		{Date: "2025-02-01", Count: 5, Total: 12},
		{Date: "2024-02-14", Count: 1, Total: 3},
	}
}

func sumSeries(series []StatPoint) (int64, float64) {
	var count int64
	var total float64
	for _, p := range series {
		count += p.Count
		total += p.Total
	}
	return count, total
}

func sumBuckets(buckets []StatBucket) (int64, float64) {
	var count int64
	var total float64
	for _, b := range buckets {
		count += b.Count
		total += b.Total
	}
	return count, total
}

func TestAggregateDailyPassthrough(t *testing.T) {
	agg := NewStatsAggregator()
	buckets, err := agg.Aggregate(sampleSeries(), GranularityDaily)
	assert.NoError(t, err)
	assert.Len(t, buckets, 5)
	// Sorted by date regardless of input order.
	assert.Equal(t, "2024-02-14", buckets[0].Label)
	assert.Equal(t, "2025-02-01", buckets[4].Label)
}

func TestAggregateWeeklyCalendarMode(t *testing.T) {
	agg := NewStatsAggregator()
	buckets, err := agg.Aggregate(sampleSeries(), GranularityWeekly)
	assert.NoError(t, err)

	byLabel := make(map[string]StatBucket)
	for _, b := range buckets {
		byLabel[b.Label] = b
	}

	// Jan 3 and Jan 8 sit in different day-of-month weeks; Feb 1 starts
	// a fresh W1 even though it is midweek on the calendar.
	assert.Equal(t, int64(2), byLabel["2025-01 W1"].Count)
	assert.Equal(t, int64(1), byLabel["2025-01 W2"].Count)
	assert.Equal(t, int64(3), byLabel["2025-01 W5"].Count)
	assert.Equal(t, int64(5), byLabel["2025-02 W1"].Count)
}

func TestAggregateWeeklyISOMode(t *testing.T) {
	agg := NewStatsAggregator()
	agg.WeeklyMode = WeeklyISO
	buckets, err := agg.Aggregate([]StatPoint{
		// Jan 29 - Feb 1 2025 share ISO week 5; the calendar scheme
		// would split them.
		{Date: "2025-01-29", Count: 3, Total: 7},
		{Date: "2025-02-01", Count: 5, Total: 12},
	}, GranularityWeekly)
	assert.NoError(t, err)
	assert.Len(t, buckets, 1)
	assert.Equal(t, "2025-W05", buckets[0].Label)
	assert.Equal(t, int64(8), buckets[0].Count)
}

func TestAggregateMonthlyFoldsYears(t *testing.T) {
	agg := NewStatsAggregator()
	buckets, err := agg.Aggregate(sampleSeries(), GranularityMonthly)
	assert.NoError(t, err)
	assert.Len(t, buckets, 12)
	assert.Equal(t, "Jan", buckets[0].Label)
	assert.Equal(t, "Dec", buckets[11].Label)

	// 2024-02 and 2025-02 land in the same Feb bucket: month-name-only
	// rollover is intentional dashboard behavior.
	assert.Equal(t, int64(6), buckets[1].Count)
	assert.Equal(t, float64(15), buckets[1].Total)

	// Months without data stay present at zero.
	assert.Equal(t, int64(0), buckets[6].Count)
}

func TestAggregateConservation(t *testing.T) {
	agg := NewStatsAggregator()
	wantCount, wantTotal := sumSeries(sampleSeries())

	for _, granularity := range []Granularity{GranularityDaily, GranularityWeekly, GranularityMonthly} {
		buckets, err := agg.Aggregate(sampleSeries(), granularity)
		assert.NoError(t, err)
		gotCount, gotTotal := sumBuckets(buckets)
		assert.Equal(t, wantCount, gotCount, "count conserved for %s", granularity)
		assert.Equal(t, wantTotal, gotTotal, "total conserved for %s", granularity)
	}

	agg.WeeklyMode = WeeklyISO
	buckets, err := agg.Aggregate(sampleSeries(), GranularityWeekly)
	assert.NoError(t, err)
	gotCount, gotTotal := sumBuckets(buckets)
	assert.Equal(t, wantCount, gotCount)
	assert.Equal(t, wantTotal, gotTotal)
}

func TestAggregateUnknownGranularity(t *testing.T) {
	agg := NewStatsAggregator()
	_, err := agg.Aggregate(sampleSeries(), Granularity("hourly"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAggregateEmptySeries(t *testing.T) {
	agg := NewStatsAggregator()

	buckets, err := agg.Aggregate(nil, GranularityDaily)
	assert.NoError(t, err)
	assert.Empty(t, buckets)

	buckets, err = agg.Aggregate(nil, GranularityMonthly)
	assert.NoError(t, err)
	assert.Len(t, buckets, 12)
}
