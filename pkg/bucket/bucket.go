// Package bucket truncates timestamps to fixed-width hour or minute buckets
// so that events can be grouped into a time series.
package bucket

import (
	"time"

	"github.com/activecm/cowrie-analyzer/util"
)

// ByHour returns the start of the hour bucket containing t. Minutes, seconds
// and sub-second fields are zeroed and the hour is reduced to the largest
// multiple of widthHours not greater than the original hour. The location of
// t is kept. widthHours is clamped into 1..24.
func ByHour(t time.Time, widthHours int) time.Time {
	widthHours = util.Max(1, util.Min(widthHours, 24))
	hour := t.Hour() - t.Hour()%widthHours
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// ByMinute returns the start of the minute bucket containing t. Seconds and
// sub-second fields are zeroed and the minute is reduced to the largest
// multiple of widthMinutes. widthMinutes is clamped into 1..60.
func ByMinute(t time.Time, widthMinutes int) time.Time {
	widthMinutes = util.Max(1, util.Min(widthMinutes, 60))
	minute := t.Minute() - t.Minute()%widthMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
