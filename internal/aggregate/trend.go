package aggregate

import (
	"sort"
	"time"

	"github.com/gyeh/hisdash/internal/model"
)

// Bucket is the granularity of a revenue trend.
type Bucket string

const (
	Daily   Bucket = "day"
	Monthly Bucket = "month"
)

// Trend sums revenue per payment-date bucket, oldest first.
func Trend(records []model.Record, bucket Bucket) []model.TrendPoint {
	byPeriod := make(map[string]*model.TrendPoint)
	for i := range records {
		r := &records[i]
		start, label := bucketOf(r.PaidAt, bucket)
		pt, ok := byPeriod[label]
		if !ok {
			pt = &model.TrendPoint{Period: label, Start: start}
			byPeriod[label] = pt
		}
		pt.Count++
		pt.TotalCost += r.Amount
	}

	out := make([]model.TrendPoint, 0, len(byPeriod))
	for _, pt := range byPeriod {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func bucketOf(t time.Time, b Bucket) (time.Time, string) {
	if b == Monthly {
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.Format("2006-01")
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Format("2006-01-02")
}
