package statistic

import (
	"hourbot/internal/models"
	"time"
)

const dateKey = "2006-01-02"

// StartOfDay returns 00:00 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(wd - 1))
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// countable filters out reset sentinels and entries whose timestamp did not parse.
func countable(e models.Entry) bool {
	return !e.Reset && e.HasTimestamp()
}

func AllTimeTotal(entries []models.Entry) float64 {
	var total float64
	for _, e := range entries {
		if countable(e) {
			total += e.Hours
		}
	}
	return total
}

func TodayTotal(entries []models.Entry, now time.Time) float64 {
	var total float64
	for _, e := range entries {
		if countable(e) && SameDay(e.Timestamp.In(now.Location()), now) {
			total += e.Hours
		}
	}
	return total
}

// WeekTotal sums entries in [Monday 00:00, next Monday 00:00) of now's week.
func WeekTotal(entries []models.Entry, now time.Time) float64 {
	from := StartOfWeek(now)
	to := from.AddDate(0, 0, 7)

	var total float64
	for _, e := range entries {
		if !countable(e) {
			continue
		}
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			total += e.Hours
		}
	}
	return total
}

// DailyBreakdown returns exactly days totals, oldest first, the last one being today.
// Days without entries are present with zero hours.
func DailyBreakdown(entries []models.Entry, now time.Time, days int) []models.DayTotal {
	if days <= 0 {
		return []models.DayTotal{}
	}

	first := StartOfDay(now).AddDate(0, 0, -(days - 1))
	out := make([]models.DayTotal, days)
	index := make(map[string]int, days)
	for i := range out {
		day := first.AddDate(0, 0, i)
		out[i].Date = day
		index[day.Format(dateKey)] = i
	}

	for _, e := range entries {
		if !countable(e) {
			continue
		}
		if i, ok := index[e.Timestamp.In(now.Location()).Format(dateKey)]; ok {
			out[i].Hours += e.Hours
		}
	}
	return out
}

// Summarize bundles the today, week and all-time figures with the session count.
func Summarize(entries []models.Entry, now time.Time) models.Summary {
	sessions := 0
	for _, e := range entries {
		if countable(e) {
			sessions++
		}
	}
	return models.Summary{
		Today:    TodayTotal(entries, now),
		Week:     WeekTotal(entries, now),
		Total:    AllTimeTotal(entries),
		Sessions: sessions,
	}
}
