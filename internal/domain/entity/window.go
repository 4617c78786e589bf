package entity

import (
	"fmt"
	"time"
)

// DateLayout é o formato de data usado pela API do Cost Explorer.
const DateLayout = "2006-01-02"

// TimeWindow is a daily range, inclusive of Start and exclusive of End.
// Both bounds are UTC midnights.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow truncates both bounds to UTC days.
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: TruncateDay(start), End: TruncateDay(end)}
}

// TruncateDay returns the UTC midnight of t.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks End >= Start.
func (w TimeWindow) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s is before start %s", w.End.Format(DateLayout), w.Start.Format(DateLayout))
	}
	return nil
}

// Days lists every date in [Start, End).
func (w TimeWindow) Days() []time.Time {
	days := make([]time.Time, 0, w.Len())
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len is the number of days in the window.
func (w TimeWindow) Len() int {
	if !w.End.After(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// LastDay is the last date inside the window, the day before End.
func (w TimeWindow) LastDay() time.Time {
	return w.End.AddDate(0, 0, -1)
}

// Contains reports whether the day of t falls in [Start, End).
func (w TimeWindow) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(w.Start) && d.Before(w.End)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// ReportWindow pairs the displayed window with the extra history fetched
// ahead of it for the rolling median.
type ReportWindow struct {
	Display      TimeWindow `json:"display"`
	LookbackDays int        `json:"lookback_days"`
}

// Validate checks the display window and a non-negative lookback.
func (r ReportWindow) Validate() error {
	if err := r.Display.Validate(); err != nil {
		return err
	}
	if r.LookbackDays < 0 {
		return fmt.Errorf("lookback must not be negative, got %d", r.LookbackDays)
	}
	return nil
}

// FetchWindow is the display window extended backwards by the lookback.
func (r ReportWindow) FetchWindow() TimeWindow {
	return TimeWindow{
		Start: r.Display.Start.AddDate(0, 0, -r.LookbackDays),
		End:   r.Display.End,
	}
}
