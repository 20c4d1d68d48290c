package object

import (
	"math"

	"github.com/tomz197/meteorfall/internal/draw"
)

// Meteor size and speed ranges.
const (
	MeteorMinRadius     = 12.0
	MeteorMaxRadius     = 28.0
	MeteorMinSpeed      = 2.0
	MeteorMaxSpeed      = 4.0
	MeteorSpeedPerLevel = 0.4
	MeteorHPDivisor     = 8.0

	meteorFocusOffset = 0.3 // gradient highlight sits up and left of center
	meteorFocusRadius = 2.0
	meteorRimAlpha    = 0.2
)

// Meteor falls straight down and takes several hits depending on its size.
type Meteor struct {
	X, Y float64
	R    float64
	VY   float64
	HP   int
}

// NewMeteor spawns a meteor just above the top edge at a random column.
// The draws from r happen in order: radius, x, speed.
func NewMeteor(level int, screen Screen, r Rand) *Meteor {
	radius := Uniform(r, MeteorMinRadius, MeteorMaxRadius)
	return &Meteor{
		X:  Uniform(r, radius, screen.Width-radius),
		Y:  -radius,
		R:  radius,
		VY: Uniform(r, MeteorMinSpeed, MeteorMaxSpeed) + float64(level)*MeteorSpeedPerLevel,
		HP: int(math.Ceil(radius / MeteorHPDivisor)),
	}
}

func (m *Meteor) Center() (float64, float64) { return m.X, m.Y }
func (m *Meteor) Radius() float64            { return m.R }

// Score is the points awarded for destroying the meteor.
func (m *Meteor) Score() int {
	return int(math.Round(10 + m.R))
}

// Update moves the meteor down; it is removed once fully below the playfield.
func (m *Meteor) Update(ctx UpdateContext) bool {
	m.Y += m.VY
	return m.Y-m.R > ctx.Screen.Height
}

// Draw paints a radial gradient disc lit from the upper left, with a faint rim.
func (m *Meteor) Draw(ctx DrawContext) {
	fx := m.X - m.R*meteorFocusOffset
	fy := m.Y - m.R*meteorFocusOffset
	ctx.Canvas.FillCircle(m.X, m.Y, m.R, func(x, y float64) draw.RGB {
		t := radialGradientT(x, y, fx, fy, meteorFocusRadius, m.X, m.Y, m.R)
		return draw.Lerp(ColorMeteorInner, ColorMeteorOuter, t)
	}, 1)
	drawRim(ctx.Canvas, m.X, m.Y, m.R, ColorMeteorRim, meteorRimAlpha)
}

// radialGradientT maps (x, y) to a position in [0,1] on a two-circle radial
// gradient from the circle (x0, y0, r0) to (x1, y1, r1): the largest t for
// which the point lies on the interpolated circle.
func radialGradientT(x, y, x0, y0, r0, x1, y1, r1 float64) float64 {
	dx, dy := x-x0, y-y0
	ex, ey := x1-x0, y1-y0
	dr := r1 - r0

	a := ex*ex + ey*ey - dr*dr
	b := -2 * (dx*ex + dy*ey + r0*dr)
	c := dx*dx + dy*dy - r0*r0

	var t float64
	if math.Abs(a) < 1e-9 {
		if b == 0 {
			return 0
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0
		}
		sq := math.Sqrt(disc)
		t = math.Max((-b+sq)/(2*a), (-b-sq)/(2*a))
	}
	return math.Max(0, math.Min(1, t))
}

// drawRim outlines a circle with a ring of sample points.
func drawRim(c *draw.Canvas, x, y, r float64, col draw.RGB, alpha float64) {
	const segments = 24
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := float64(i) / segments * 2 * math.Pi
		pts[i] = draw.Point{X: x + math.Cos(a)*r, Y: y + math.Sin(a)*r}
	}
	c.DrawPolygon(pts, col, alpha, false)
}
