// Package canvas is a small vector drawing surface over an RGBA image.
//
// Shapes are flattened to polygons and rasterized with anti-aliasing by
// golang.org/x/image/vector; text is drawn in Go Bold through
// golang.org/x/image/font. A Canvas is owned by a single render call and
// is not safe for concurrent use.
package canvas

import (
	"image"
	"math"
	"slices"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Canvas is the drawing target passed to every primitive
type Canvas struct {
	img   *image.RGBA
	faces map[int]font.Face
}

type point struct {
	x, y float64
}

// New creates a canvas of the given pixel size
func New(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[int]font.Face),
	}
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Close releases cached font faces
func (c *Canvas) Close() {
	for size, face := range c.faces {
		_ = face.Close()
		delete(c.faces, size)
	}
}

// Fill paints the whole canvas with a single color
func (c *Canvas) Fill(col Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// Rect draws a rectangle with corners rounded by min(radius, w/2, h/2).
// A nil fill or stroke skips that pass; the stroke is 1px wide.
func (c *Canvas) Rect(x, y, w, h, radius int, fill, stroke *Color) {
	if w < 0 || h < 0 || radius < 0 {
		return
	}

	fx, fy, fw, fh := float64(x), float64(y), float64(w), float64(h)
	r := math.Min(float64(radius), math.Min(fw/2, fh/2))

	if fill != nil && w > 0 && h > 0 {
		c.fill([][]point{roundedRect(fx, fy, fw, fh, r)}, *fill)
	}

	if stroke != nil {
		outer := roundedRect(fx-0.5, fy-0.5, fw+1, fh+1, r+0.5)
		contours := [][]point{outer}
		if fw >= 1 && fh >= 1 {
			inner := roundedRect(fx+0.5, fy+0.5, fw-1, fh-1, math.Max(r-0.5, 0))
			slices.Reverse(inner)
			contours = append(contours, inner)
		}
		c.fill(contours, *stroke)
	}
}

// Circle draws a filled disc whose bounding box starts at (x, y)
func (c *Canvas) Circle(x, y, radius int, fill Color) {
	if radius <= 0 {
		return
	}
	r := float64(radius)
	c.fill([][]point{arc(float64(x)+r, float64(y)+r, r, 0, 2*math.Pi)}, fill)
}

// Line draws a 1px straight line
func (c *Canvas) Line(x1, y1, x2, y2 int, col Color) {
	dx, dy := float64(x2-x1), float64(y2-y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	nx, ny := -dy/length*0.5, dx/length*0.5
	a := point{float64(x1), float64(y1)}
	b := point{float64(x2), float64(y2)}
	c.fill([][]point{{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}}, col)
}

// Text draws bold sans-serif text vertically centered within [y, y+h].
// When centered is set the ink is also centered within [x, x+w];
// otherwise the pen starts at x.
func (c *Canvas) Text(s string, x, y, w, h, sizePx int, col Color, centered bool) {
	if s == "" || sizePx <= 0 || w < 0 || h < 0 {
		return
	}

	face := c.face(sizePx)
	inkX, inkY, inkW, inkH := c.measure(face, s)

	tx := float64(x)
	if centered {
		tx = float64(x) - (inkW/2 + inkX) + float64(w)/2
	}
	ty := float64(y) - (inkH/2 + inkY) + float64(h)/2

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.RGBA()),
		Face: face,
		Dot:  fixed.P(int(math.Round(tx)), int(math.Round(ty))),
	}
	d.DrawString(s)
}

// measure returns the ink bounds of s relative to the pen position:
// left bearing, top bearing (negative above the baseline), width, height.
func (c *Canvas) measure(face font.Face, s string) (x, y, w, h float64) {
	bounds, _ := font.BoundString(face, s)
	x = fixedToFloat(bounds.Min.X)
	y = fixedToFloat(bounds.Min.Y)
	w = fixedToFloat(bounds.Max.X - bounds.Min.X)
	h = fixedToFloat(bounds.Max.Y - bounds.Min.Y)
	return x, y, w, h
}

func (c *Canvas) face(sizePx int) font.Face {
	if face, ok := c.faces[sizePx]; ok {
		return face
	}

	f, err := boldFont()
	if err != nil {
		panic(err) // embedded font
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(err)
	}

	c.faces[sizePx] = face
	return face
}

// fill rasterizes the contours with the nonzero rule and composites the
// coverage over the canvas. Reversed contours cut holes.
func (c *Canvas) fill(contours [][]point, col Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, contour := range contours {
		for _, p := range contour {
			minX, minY = math.Min(minX, p.x), math.Min(minY, p.y)
			maxX, maxY = math.Max(maxX, p.x), math.Max(maxY, p.y)
		}
	}

	bounds := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	if bounds.Empty() || !bounds.Overlaps(c.img.Bounds()) {
		return
	}

	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for _, contour := range contours {
		if len(contour) < 3 {
			continue
		}
		z.MoveTo(float32(contour[0].x)-ox, float32(contour[0].y)-oy)
		for _, p := range contour[1:] {
			z.LineTo(float32(p.x)-ox, float32(p.y)-oy)
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(c.img, bounds, image.NewUniform(col.RGBA()), image.Point{}, mask, image.Point{}, draw.Over)
}

// roundedRect traces a clockwise rounded rectangle
func roundedRect(x, y, w, h, r float64) []point {
	if r <= 0 {
		return []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}

	var pts []point
	pts = append(pts, arc(x+w-r, y+r, r, -math.Pi/2, 0)...)
	pts = append(pts, arc(x+w-r, y+h-r, r, 0, math.Pi/2)...)
	pts = append(pts, arc(x+r, y+h-r, r, math.Pi/2, math.Pi)...)
	pts = append(pts, arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)...)
	return pts
}

// arc flattens a circular arc from angle a0 to a1 (radians, y down)
func arc(cx, cy, r, a0, a1 float64) []point {
	segments := int(math.Ceil(math.Abs(a1-a0) * r / 2))
	if segments < 4 {
		segments = 4
	}

	pts := make([]point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(segments)
		pts = append(pts, point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return pts
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
