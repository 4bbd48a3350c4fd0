package board

import "github.com/jusunglee/mta-board/internal/canvas"

// Palette is the set of colors shared by every panel
type Palette struct {
	Background    canvas.Color // NEUTRAL_100
	Surface       canvas.Color // NEUTRAL_000
	Dim           canvas.Color // NEUTRAL_200
	Muted         canvas.Color // NEUTRAL_300
	Ink           canvas.Color // NEUTRAL_900
	StatusOK      canvas.Color
	StatusWarning canvas.Color
}

// DefaultPalette is the warm-neutral e-paper palette
func DefaultPalette() Palette {
	return Palette{
		Background:    canvas.Hex("#F8F3EF"),
		Surface:       canvas.Hex("#FFFFFF"),
		Dim:           canvas.Hex("#E4DBD4"),
		Muted:         canvas.Hex("#B6A99F"),
		Ink:           canvas.Hex("#000000"),
		StatusOK:      canvas.Hex("#34915A"),
		StatusWarning: canvas.Hex("#E2B244"),
	}
}
