// Package adherence summarizes how closely users follow their plan.
package adherence

import (
	"math"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

const (
	DateLayout = "2006-01-02"
	WindowDays = 7
)

// Day is one entry in the weekly chart.
type Day struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Status  string `json:"status"`
}

// Weekly is the check-in history ending today. Rate is the rounded
// percentage of logged days marked followed, nil when no day was logged.
type Weekly struct {
	Days     []Day `json:"days"`
	Logged   int   `json:"logged"`
	Followed int   `json:"followed"`
	Rate     *int  `json:"rate"`
}

// WindowStart is the first date covered by the weekly summary ending on today.
func WindowStart(today time.Time) string {
	return today.AddDate(0, 0, -(WindowDays - 1)).Format(DateLayout)
}

// Summarize lays entries out oldest first over the seven days ending on
// today. Days without an entry are pending and do not count toward the rate.
func Summarize(entries []model.DailyAdherence, today time.Time) Weekly {
	byDate := make(map[string]string, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e.Status
	}

	w := Weekly{Days: make([]Day, 0, WindowDays)}
	for i := WindowDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := d.Format(DateLayout)
		status, ok := byDate[date]
		if !ok || status == model.AdherencePending {
			status = model.AdherencePending
		} else {
			w.Logged++
			if status == model.AdherenceFollowed {
				w.Followed++
			}
		}
		w.Days = append(w.Days, Day{Date: date, Weekday: d.Format("Mon"), Status: status})
	}

	if w.Logged > 0 {
		rate := int(math.Round(float64(w.Followed) / float64(w.Logged) * 100))
		w.Rate = &rate
	}
	return w
}

// NextMealStatus flips a meal between followed and pending.
func NextMealStatus(current string) string {
	if current == model.AdherenceFollowed {
		return model.AdherencePending
	}
	return model.AdherenceFollowed
}

// WeekDates returns the seven dates starting at start.
func WeekDates(start time.Time) []string {
	out := make([]string, WindowDays)
	for i := range out {
		out[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return out
}
