package canvas

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = Hex("#FFFFFF")
	black = Hex("#000000")
	red   = Hex("#EE352E")
)

func newWhite(t *testing.T) *Canvas {
	t.Helper()
	c := New(100, 80)
	c.Fill(white)
	t.Cleanup(c.Close)
	return c
}

func at(c *Canvas, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func TestFill(t *testing.T) {
	c := newWhite(t)

	assert.Equal(t, 100, c.Image().Bounds().Dx())
	assert.Equal(t, 80, c.Image().Bounds().Dy())
	assert.Equal(t, white.RGBA(), at(c, 0, 0))
	assert.Equal(t, white.RGBA(), at(c, 99, 79))
}

func TestRectFill(t *testing.T) {
	c := newWhite(t)
	c.Rect(10, 10, 40, 20, 0, &red, nil)

	assert.Equal(t, red.RGBA(), at(c, 30, 20), "interior should be filled")
	assert.Equal(t, red.RGBA(), at(c, 10, 10), "square corner pixel should be filled")
	assert.Equal(t, white.RGBA(), at(c, 9, 20), "left of the rect should be untouched")
	assert.Equal(t, white.RGBA(), at(c, 50, 20), "right edge is exclusive")
	assert.Equal(t, white.RGBA(), at(c, 30, 30), "bottom edge is exclusive")
}

func TestRectRoundedCorners(t *testing.T) {
	c := newWhite(t)
	c.Rect(10, 10, 40, 40, 16, &red, nil)

	assert.Equal(t, white.RGBA(), at(c, 10, 10), "corner outside the arc should be untouched")
	assert.Equal(t, red.RGBA(), at(c, 30, 30), "center should be filled")
	assert.Equal(t, red.RGBA(), at(c, 30, 10), "top edge midpoint should be filled")
}

func TestRectRadiusClamped(t *testing.T) {
	// A huge radius on a 20x10 box is clamped to 5, so the box becomes a pill.
	c := newWhite(t)
	c.Rect(10, 10, 20, 10, 100, &red, nil)

	assert.Equal(t, red.RGBA(), at(c, 20, 15))
	assert.Equal(t, red.RGBA(), at(c, 20, 10), "flat top between the end caps")
	assert.Equal(t, white.RGBA(), at(c, 10, 10))
}

func TestRectStroke(t *testing.T) {
	c := newWhite(t)
	c.Rect(10, 10, 40, 20, 0, nil, &black)

	assert.Equal(t, white.RGBA(), at(c, 30, 20), "stroke only should leave the interior")
	assert.NotEqual(t, white.RGBA(), at(c, 30, 10), "top edge should be stroked")
	assert.NotEqual(t, white.RGBA(), at(c, 9, 20), "left edge straddles x=10")
	assert.Equal(t, white.RGBA(), at(c, 30, 5))
}

func TestRectFillAndStroke(t *testing.T) {
	c := newWhite(t)
	c.Rect(10, 10, 40, 20, 4, &red, &black)

	assert.Equal(t, red.RGBA(), at(c, 30, 20))
	assert.NotEqual(t, red.RGBA(), at(c, 30, 10), "stroke paints over the fill edge")
}

func TestInvalidGeometryDrawsNothing(t *testing.T) {
	c := newWhite(t)
	before := bytes.Clone(c.Image().Pix)

	c.Rect(10, 10, -5, 20, 0, &red, &black)
	c.Rect(10, 10, 20, -1, 0, &red, &black)
	c.Rect(10, 10, 20, 20, -3, &red, &black)
	c.Circle(10, 10, -4, red)
	c.Circle(10, 10, 0, red)
	c.Line(5, 5, 5, 5, red)
	c.Text("x", 10, 10, -1, 16, 16, red, true)
	c.Text("x", 10, 10, 10, -1, 16, red, false)
	c.Text("x", 10, 10, 10, 10, 0, red, false)
	c.Text("", 10, 10, 10, 10, 16, red, false)

	assert.True(t, bytes.Equal(before, c.Image().Pix), "invalid geometry must not change pixels")
}

func TestOffCanvasShapeIsClipped(t *testing.T) {
	c := newWhite(t)
	c.Rect(-20, -20, 30, 30, 0, &red, nil)
	c.Rect(500, 500, 30, 30, 0, &red, nil)

	assert.Equal(t, red.RGBA(), at(c, 0, 0))
	assert.Equal(t, red.RGBA(), at(c, 9, 9))
	assert.Equal(t, white.RGBA(), at(c, 10, 10))
}

func TestCircle(t *testing.T) {
	c := newWhite(t)
	c.Circle(20, 20, 10, red)

	assert.Equal(t, red.RGBA(), at(c, 30, 30), "disc is centered at (x+r, y+r)")
	assert.Equal(t, red.RGBA(), at(c, 22, 30))
	assert.Equal(t, white.RGBA(), at(c, 20, 20), "bounding box corner is outside the disc")
	assert.Equal(t, white.RGBA(), at(c, 41, 30))
}

func TestLine(t *testing.T) {
	c := newWhite(t)
	c.Line(10, 40, 90, 40, black)

	// A 1px line on an integer coordinate straddles two pixel rows.
	assert.NotEqual(t, white.RGBA(), at(c, 50, 39))
	assert.NotEqual(t, white.RGBA(), at(c, 50, 40))
	assert.Equal(t, white.RGBA(), at(c, 50, 38))
	assert.Equal(t, white.RGBA(), at(c, 50, 41))
	assert.Equal(t, white.RGBA(), at(c, 5, 40))
}

// inkBounds returns the bounding box of non-white pixels.
func inkBounds(c *Canvas) (minX, minY, maxX, maxY int, found bool) {
	b := c.Image().Bounds()
	minX, minY = b.Max.X, b.Max.Y
	maxX, maxY = -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if at(c, x, y) != white.RGBA() {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
				found = true
			}
		}
	}
	return minX, minY, maxX, maxY, found
}

func TestTextCentered(t *testing.T) {
	c := newWhite(t)
	c.Text("NOW", 10, 20, 80, 40, 16, black, true)

	minX, minY, maxX, maxY, found := inkBounds(c)
	require.True(t, found, "text should produce ink")

	centerX := float64(minX+maxX+1) / 2
	centerY := float64(minY+maxY+1) / 2
	assert.InDelta(t, 50, centerX, 2, "ink should be horizontally centered in [10, 90]")
	assert.InDelta(t, 40, centerY, 2, "ink should be vertically centered in [20, 60]")
}

func TestTextLeftAligned(t *testing.T) {
	c := newWhite(t)
	c.Text("LEAVE", 20, 10, 0, 30, 16, black, false)

	minX, minY, maxX, maxY, found := inkBounds(c)
	require.True(t, found)

	assert.GreaterOrEqual(t, minX, 20, "text starts at x")
	assert.LessOrEqual(t, minX, 23, "left bearing is small")
	assert.Greater(t, maxX, 50)
	assert.InDelta(t, 25, float64(minY+maxY+1)/2, 2, "ink should be vertically centered in [10, 40]")
}

func TestTextDeterministic(t *testing.T) {
	a := newWhite(t)
	b := newWhite(t)
	for _, c := range []*Canvas{a, b} {
		c.Text("33 min.", 5, 5, 90, 20, 16, black, true)
		c.Rect(5, 40, 50, 30, 8, &red, &black)
	}

	assert.True(t, bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input       string
		expected    color.RGBA
		expectError bool
	}{
		{"#EE352E", color.RGBA{0xEE, 0x35, 0x2E, 0xff}, false},
		{"#fccc0a", color.RGBA{0xFC, 0xCC, 0x0A, 0xff}, false},
		{"FF6319", color.RGBA{0xFF, 0x63, 0x19, 0xff}, false},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseHex(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.RGBA())
		})
	}
}

func TestHexPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { Hex("nope") })
}

func TestColorClamp(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 0xff, 0x80, 0xff}, Color{R: -1, G: 2, B: 0.5}.RGBA())
}
