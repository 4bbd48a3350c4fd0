package board

import (
	"strconv"
	"time"

	"github.com/jusunglee/mta-board/internal/arrival"
	"github.com/jusunglee/mta-board/internal/canvas"
	"github.com/jusunglee/mta-board/internal/models"
)

// Status is the service state shown by a panel's indicator lights
type Status int

const (
	StatusOK Status = iota
	StatusDelayed
)

func (s Status) String() string {
	if s == StatusDelayed {
		return "delayed"
	}
	return "ok"
}

const placeholder = "--"

type badge struct {
	label      string
	foreground canvas.Color
	background canvas.Color
}

// Panel is one station resolved against a snapshot, ready to draw
type Panel struct {
	Name        string
	ReverseName string
	Status      Status
	Urgency     arrival.Urgency
	Primary     *arrival.Window
	Reverse     *arrival.Window

	badge badge
}

func resolvePanel(station models.StationConfig, b badge, arrivals models.Arrivals, alerts models.AlertFlags, now time.Time) (Panel, error) {
	dir := station.PrimaryDirection()

	primary, err := series(arrivals, dir, station.Route)
	if err != nil {
		return Panel{}, err
	}
	reverse, err := series(arrivals, dir.Opposite(), station.Route)
	if err != nil {
		return Panel{}, err
	}

	alerted, ok := alerts[station.Route]
	if !ok {
		return Panel{}, &InputShapeError{Source: "alerts", Route: station.Route}
	}

	p := Panel{
		Name:        station.Name,
		ReverseName: station.ReverseName,
		Status:      StatusOK,
		Primary:     arrival.SelectWindow(primary, station.WalkMinutes, now),
		Reverse:     arrival.SelectWindow(reverse, station.WalkMinutes, now),
		badge:       b,
	}
	p.Urgency = arrival.ClassifyUrgency(p.Primary, station.WalkMinutes)
	if alerted {
		p.Status = StatusDelayed
	}

	return p, nil
}

func series(arrivals models.Arrivals, dir models.Direction, route string) ([]int64, error) {
	byRoute, ok := arrivals[dir]
	if !ok {
		return nil, &InputShapeError{Source: "arrivals", Route: route, Direction: dir}
	}
	s, ok := byRoute[route]
	if !ok {
		return nil, &InputShapeError{Source: "arrivals", Route: route, Direction: dir}
	}
	return s, nil
}

// drawPanel lays out one panel with its top-left corner at (x, y).
// Offsets are fixed; panels differ only in data.
func drawPanel(c *canvas.Canvas, x, y int, p Panel, pal Palette) {
	c.Circle(x+20, y+28, 24, p.badge.background)
	c.Text(p.badge.label, x+20, y+28, 48, 48, 32, p.badge.foreground, true)

	drawLeave(c, x, y, p.Urgency, pal)
	drawStatus(c, x, y, p.Status, pal)

	c.Rect(x+92, y+124, 184, 92, 8, &pal.Surface, nil)
	c.Text(p.Name, x+92, y+100, 0, 16, 16, pal.Ink, false)

	primary, following := placeholder, placeholder
	if p.Primary != nil {
		primary = strconv.Itoa(p.Primary.Minutes)
		if p.Primary.Following != nil {
			following = strconv.Itoa(*p.Primary.Following)
		}
	}
	c.Text(primary, x+104, y+136, 0, 68, 84, pal.Ink, false)
	c.Text("min.", x+232, y+160, 0, 20, 16, pal.Ink, false)

	c.Text("NEXT", x+300, y+122, 0, 16, 12, pal.Ink, false)
	c.Text(following+" min.", x+300, y+141, 0, 16, 16, pal.Ink, false)

	reverse := placeholder
	if p.Reverse != nil {
		reverse = strconv.Itoa(p.Reverse.Minutes)
	}
	c.Text(p.ReverseName, x+300, y+177, 0, 16, 12, pal.Ink, false)
	c.Text(reverse+" min.", x+300, y+196, 0, 16, 16, pal.Ink, false)
}

// drawStatus lights exactly one of the two indicators
func drawStatus(c *canvas.Canvas, x, y int, status Status, pal Palette) {
	top, bottom := pal.StatusOK, pal.Dim
	if status == StatusDelayed {
		top, bottom = pal.Dim, pal.StatusWarning
	}
	c.Rect(x+36, y+100, 16, 16, 4, &top, nil)
	c.Rect(x+36, y+124, 16, 16, 4, &bottom, nil)
}

func drawLeave(c *canvas.Canvas, x, y int, urgency arrival.Urgency, pal Palette) {
	c.Rect(x+92, y+28, 284, 48, 8, nil, &pal.Dim)

	label := pal.Ink
	if urgency == arrival.UrgencyNone {
		label = pal.Muted
	}
	c.Text("LEAVE", x+100, y+44, 64, 16, 16, label, true)

	drawLeaveOption(c, x+202, y, "NOW", urgency == arrival.UrgencyNow, pal.StatusOK, pal)
	drawLeaveOption(c, x+304, y, "SOON", urgency == arrival.UrgencySoon, pal.StatusWarning, pal)
}

func drawLeaveOption(c *canvas.Canvas, x, y int, text string, lit bool, fill canvas.Color, pal Palette) {
	if !lit {
		c.Text(text, x, y+44, 64, 16, 16, pal.Muted, true)
		return
	}
	c.Rect(x, y+36, 64, 32, 4, &fill, nil)
	c.Text(text, x, y+44, 64, 16, 16, pal.Ink, true)
}
