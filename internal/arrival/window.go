// Package arrival picks the next catchable departure out of an arrival
// series and classifies how urgently the rider has to leave for it.
//
// Everything here is a pure function of its inputs and the supplied "now".
package arrival

import (
	"time"
)

// Urgency is the leave-now / leave-soon classification for a panel
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyNow
	UrgencySoon
)

func (u Urgency) String() string {
	switch u {
	case UrgencyNow:
		return "now"
	case UrgencySoon:
		return "soon"
	default:
		return "none"
	}
}

// Window is the next departure beyond the walk threshold and the one after it.
// Following is nil when the chosen departure is the last one in the series.
type Window struct {
	Minutes   int
	Following *int
}

// SelectWindow returns the first departure strictly later than
// now + walkMinutes, or nil when there is none.
func SelectWindow(series []int64, walkMinutes int, now time.Time) *Window {
	nowUnix := now.Unix()
	threshold := nowUnix + int64(walkMinutes)*60

	for i, t := range series {
		if t <= threshold {
			continue
		}

		w := &Window{Minutes: minutesUntil(t, nowUnix)}
		if i+1 < len(series) {
			following := minutesUntil(series[i+1], nowUnix)
			w.Following = &following
		}
		return w
	}

	return nil
}

// ClassifyUrgency derives the leave instruction for a window
func ClassifyUrgency(w *Window, walkMinutes int) Urgency {
	if w == nil {
		return UrgencyNone
	}

	switch {
	case w.Minutes < walkMinutes+2:
		return UrgencyNow
	case w.Minutes < walkMinutes+5:
		return UrgencySoon
	default:
		return UrgencyNone
	}
}

// minutesUntil floors (t - now) / 60 toward negative infinity
func minutesUntil(t, now int64) int {
	d := t - now
	m := d / 60
	if d%60 != 0 && d < 0 {
		m--
	}
	return int(m)
}
