package feed

import (
	"time"

	"github.com/jusunglee/mta-board/internal/config"
	"github.com/jusunglee/mta-board/internal/models"
)

// sampleOffsets are minutes after the walk threshold. Successive stations
// get progressively later trains so one board shows every urgency.
var sampleOffsets = [][]int{
	{1, 8, 15},
	{4, 11},
	{12},
	{},
}

// SampleSnapshot builds a synthetic snapshot for the board without any
// network access. The last station's route is flagged with an alert.
func SampleSnapshot(board *config.BoardConfig, now time.Time) models.Snapshot {
	snap := models.Snapshot{
		Arrivals:  make(models.Arrivals, len(models.Directions)),
		Alerts:    make(models.AlertFlags, len(board.Stations)),
		FetchedAt: now,
	}
	for _, dir := range models.Directions {
		snap.Arrivals[dir] = make(map[string][]int64, len(board.Stations))
	}

	base := now.Unix() + 30
	for i, s := range board.Stations {
		offsets := sampleOffsets[i%len(sampleOffsets)]
		walk := int64(s.WalkMinutes)

		primary := make([]int64, 0, len(offsets))
		for _, m := range offsets {
			primary = append(primary, base+(walk+int64(m))*60)
		}
		reverse := []int64{base + (walk+int64(3+i*2))*60}

		dir := s.PrimaryDirection()
		snap.Arrivals[dir][s.Route] = primary
		snap.Arrivals[dir.Opposite()][s.Route] = reverse
		snap.Alerts[s.Route] = i == len(board.Stations)-1
	}

	return snap
}
