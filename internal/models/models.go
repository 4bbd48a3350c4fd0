package models

import (
	"time"
)

// Direction is a platform direction as used in MTA stop IDs
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
)

// Directions lists both directions in a stable order
var Directions = []Direction{North, South}

// Opposite returns the other direction
func (d Direction) Opposite() Direction {
	if d == North {
		return South
	}
	return North
}

// Arrivals holds departure epoch seconds keyed by direction, then route.
// Each series is ascending.
type Arrivals map[Direction]map[string][]int64

// AlertFlags marks routes with an active service alert
type AlertFlags map[string]bool

// RouteBadge is the colored route bullet shown on a panel.
// Colors are "#RRGGBB" hex strings.
type RouteBadge struct {
	Label      string `json:"label" yaml:"label" validate:"required"`
	Foreground string `json:"foreground" yaml:"foreground" validate:"required,hexcolor"`
	Background string `json:"background" yaml:"background" validate:"required,hexcolor"`
}

// StationConfig is the static description of one board panel
type StationConfig struct {
	Name        string     `json:"name" yaml:"name" validate:"required"`
	ReverseName string     `json:"reverse_name" yaml:"reverse_name" validate:"required"`
	Route       string     `json:"route" yaml:"route" validate:"required"`
	Badge       RouteBadge `json:"badge" yaml:"badge"`
	WalkMinutes int        `json:"walk_minutes" yaml:"walk_minutes" validate:"gte=0"`
	Direction   Direction  `json:"direction" yaml:"direction" validate:"omitempty,oneof=N S"`
	StopID      string     `json:"stop_id" yaml:"stop_id" validate:"required"`
	Feed        string     `json:"feed" yaml:"feed" validate:"required"`
}

// PrimaryDirection returns the configured direction, North when unset
func (s StationConfig) PrimaryDirection() Direction {
	if s.Direction == "" {
		return North
	}
	return s.Direction
}

// Alert represents a service alert
type Alert struct {
	ID            string       `json:"id"`
	Header        string       `json:"header"`
	Description   string       `json:"description"`
	Routes        []string     `json:"routes"`
	Stations      []string     `json:"stations"`
	ActivePeriods []TimePeriod `json:"active_periods"`
}

// TimePeriod represents a time range
type TimePeriod struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Snapshot is one fetch cycle's worth of board input
type Snapshot struct {
	Arrivals  Arrivals   `json:"arrivals"`
	Alerts    AlertFlags `json:"alerts"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// SnapshotResponse is the API response format for a snapshot
type SnapshotResponse struct {
	N         map[string][]time.Time `json:"N"`
	S         map[string][]time.Time `json:"S"`
	Alerts    AlertFlags             `json:"alerts"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// ConvertToResponse converts a Snapshot to SnapshotResponse format
func (s *Snapshot) ConvertToResponse() SnapshotResponse {
	convert := func(byRoute map[string][]int64) map[string][]time.Time {
		out := make(map[string][]time.Time, len(byRoute))
		for route, series := range byRoute {
			times := make([]time.Time, len(series))
			for i, ts := range series {
				times[i] = time.Unix(ts, 0).UTC()
			}
			out[route] = times
		}
		return out
	}

	return SnapshotResponse{
		N:         convert(s.Arrivals[North]),
		S:         convert(s.Arrivals[South]),
		Alerts:    s.Alerts,
		FetchedAt: s.FetchedAt,
	}
}
