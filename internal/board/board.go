// Package board composes the four-panel arrival board and writes it out
// as a raster file for the e-paper display.
//
// Rendering is a pure projection of (stations, arrivals, alerts, now) to
// pixels: identical inputs produce byte-identical output.
package board

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"github.com/jusunglee/mta-board/internal/canvas"
	"github.com/jusunglee/mta-board/internal/models"
)

const (
	Width  = 800
	Height = 480

	// PanelCount is fixed; the layout has no notion of more or fewer panels.
	PanelCount = 4

	separatorInset = 16
	separatorGap   = 16
)

// quadrants are the panel origins in station order:
// left column top to bottom, then right column top to bottom.
var quadrants = [PanelCount]image.Point{
	{0, 0},
	{0, Height / 2},
	{Width / 2, 0},
	{Width / 2, Height / 2},
}

// Format is the raster encoding written by Render
type Format int

const (
	FormatPNG Format = iota
	FormatBMP
)

// FormatFor picks the encoding from the file extension; .bmp selects
// BMP, anything else PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return FormatBMP
	}
	return FormatPNG
}

// Board is the static description of the four panels
type Board struct {
	stations [PanelCount]models.StationConfig
	badges   [PanelCount]badge
	palette  Palette
}

// New validates the station list and parses badge colors
func New(stations []models.StationConfig, palette Palette) (*Board, error) {
	if len(stations) != PanelCount {
		return nil, fmt.Errorf("board needs exactly %d stations, got %d", PanelCount, len(stations))
	}

	b := &Board{palette: palette}
	seen := make(map[string]bool, PanelCount)
	for i, station := range stations {
		if seen[station.Route] {
			return nil, fmt.Errorf("route %s is used by more than one station", station.Route)
		}
		seen[station.Route] = true

		fg, err := canvas.ParseHex(station.Badge.Foreground)
		if err != nil {
			return nil, fmt.Errorf("station %q badge: %w", station.Name, err)
		}
		bg, err := canvas.ParseHex(station.Badge.Background)
		if err != nil {
			return nil, fmt.Errorf("station %q badge: %w", station.Name, err)
		}

		label := station.Badge.Label
		if label == "" {
			label = station.Route
		}

		b.stations[i] = station
		b.badges[i] = badge{label: label, foreground: fg, background: bg}
	}

	return b, nil
}

// Stations returns the configured stations in panel order
func (b *Board) Stations() []models.StationConfig {
	out := make([]models.StationConfig, PanelCount)
	copy(out, b.stations[:])
	return out
}

// Routes returns the distinct routes the board needs data for
func (b *Board) Routes() []string {
	seen := make(map[string]bool)
	var routes []string
	for _, s := range b.stations {
		if !seen[s.Route] {
			seen[s.Route] = true
			routes = append(routes, s.Route)
		}
	}
	return routes
}

// Panels resolves every station against the snapshot. Any missing key
// fails the whole board before anything is drawn.
func (b *Board) Panels(arrivals models.Arrivals, alerts models.AlertFlags, now time.Time) ([]Panel, error) {
	panels := make([]Panel, PanelCount)
	for i, station := range b.stations {
		p, err := resolvePanel(station, b.badges[i], arrivals, alerts, now)
		if err != nil {
			return nil, err
		}
		panels[i] = p
	}
	return panels, nil
}

// Compose draws the board into a new image without touching the filesystem
func (b *Board) Compose(arrivals models.Arrivals, alerts models.AlertFlags, now time.Time) (*image.RGBA, error) {
	panels, err := b.Panels(arrivals, alerts, now)
	if err != nil {
		return nil, err
	}

	c := canvas.New(Width, Height)
	defer c.Close()

	c.Fill(b.palette.Background)
	for i, p := range panels {
		drawPanel(c, quadrants[i].X, quadrants[i].Y, p, b.palette)
	}
	drawSeparators(c, b.palette)

	return c.Image(), nil
}

// Render composes the board and writes it to outputPath, creating parent
// directories as needed. The file is replaced atomically.
func (b *Board) Render(outputPath string, arrivals models.Arrivals, alerts models.AlertFlags, now time.Time) error {
	img, err := b.Compose(arrivals, alerts, now)
	if err != nil {
		return err
	}
	return WriteImage(outputPath, img)
}

// WriteImage encodes img in the format implied by path and writes it
func WriteImage(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, FormatFor(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode writes img as PNG or BMP
func Encode(w io.Writer, img image.Image, format Format) error {
	if format == FormatBMP {
		return bmp.Encode(w, img)
	}
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, img)
}

// drawSeparators draws a divider under each row and one between the
// columns, leaving a gap where they cross
func drawSeparators(c *canvas.Canvas, pal Palette) {
	cx, cy := Width/2, Height/2

	// The bottom row's divider sits on the last pixel row.
	for _, y := range []int{cy, Height - 1} {
		c.Line(separatorInset, y, cx-separatorGap, y, pal.Dim)
		c.Line(cx+separatorGap, y, Width-separatorInset, y, pal.Dim)
	}

	c.Line(cx, separatorInset, cx, cy-separatorGap, pal.Dim)
	c.Line(cx, cy+separatorGap, cx, Height-separatorInset, pal.Dim)
}
