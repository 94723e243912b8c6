package airport

import (
	"fmt"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// TimeWindow is a daily UTC window expressed as HH:MM bounds.
// When From > To the window wraps through midnight (e.g. 23:00-06:00).
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsEmpty reports whether the window is unset
func (w *TimeWindow) IsEmpty() bool {
	return w == nil || w.From == "" || w.To == ""
}

// Validate checks that both bounds parse as HH:MM
func (w *TimeWindow) Validate() error {
	if w.IsEmpty() {
		return nil
	}
	if _, err := parseClock(w.From); err != nil {
		return shared.NewValidationError("window.from", err.Error())
	}
	if _, err := parseClock(w.To); err != nil {
		return shared.NewValidationError("window.to", err.Error())
	}
	return nil
}

// Contains reports whether the UTC time-of-day of t lies in [From, To).
// Unparseable or empty windows never match.
func (w *TimeWindow) Contains(t time.Time) bool {
	if w.IsEmpty() {
		return false
	}
	from, err := parseClock(w.From)
	if err != nil {
		return false
	}
	to, err := parseClock(w.To)
	if err != nil {
		return false
	}

	utc := t.UTC()
	minute := utc.Hour()*60 + utc.Minute()

	if from == to {
		return false
	}
	if from < to {
		return minute >= from && minute < to
	}
	// overnight window
	return minute >= from || minute < to
}

func (w *TimeWindow) String() string {
	if w.IsEmpty() {
		return "none"
	}
	return fmt.Sprintf("%s-%sZ", w.From, w.To)
}

// InCurfew reports whether an arrival at t falls within the curfew window
func InCurfew(arrival time.Time, curfew *TimeWindow) bool {
	return curfew.Contains(arrival)
}

// parseClock returns minutes since midnight for an HH:MM string
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid HH:MM %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
