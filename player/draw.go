package player

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/kinetic"
)

const (
	ellipseSegments  = 48
	particleSegments = 12
)

// Renderer draws scene objects as untextured triangles. Vertex and index
// buffers are reused between frames.
type Renderer struct {
	verts []ebiten.Vertex
	inds  []uint32
	white *ebiten.Image
}

func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

// DrawScene draws every visible object of s in scene order through view.
// Text is drawn with the debug font after the shape batch.
func (r *Renderer) DrawScene(dst *ebiten.Image, s *kinetic.Scene, view kinetic.View) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	var texts []*kinetic.Object
	for _, o := range s.Objects() {
		if !view.Visible(o) {
			continue
		}
		if o.Type == kinetic.TypeText {
			texts = append(texts, o)
			continue
		}
		r.appendObject(o, view.Matrix().Mul(kinetic.ObjectMatrix(o)))
	}
	r.flush(dst)
	for _, o := range texts {
		p := view.WorldToScreen(kinetic.Point{X: o.X, Y: o.Y})
		ebitenutil.DebugPrintAt(dst, o.Text, int(p.X), int(p.Y))
	}
}

func (r *Renderer) flush(dst *ebiten.Image) {
	if len(r.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	dst.DrawTriangles32(r.verts, r.inds, r.whitePixel(), &op)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// appendObject emits the triangles of o transformed by m.
func (r *Renderer) appendObject(o *kinetic.Object, m kinetic.Matrix) {
	switch o.Type {
	case kinetic.TypeRect, kinetic.TypeImage:
		quad := []kinetic.Point{{0, 0}, {o.Width, 0}, {o.Width, o.Height}, {0, o.Height}}
		r.appendFill(m, quad, o.Fill, o.Opacity)
		if o.Type == kinetic.TypeRect && o.StrokeWidth > 0 {
			r.appendStroke(m, quad, true, o.StrokeWidth, o.Stroke, o.Opacity)
		}
	case kinetic.TypeEllipse:
		ring := circle(o.Radius, ellipseSegments)
		r.appendFill(m, ring, o.Fill, o.Opacity)
		if o.StrokeWidth > 0 {
			r.appendStroke(m, ring, true, o.StrokeWidth, o.Stroke, o.Opacity)
		}
	case kinetic.TypeParticle:
		r.appendFill(m, circle(o.Radius, particleSegments), o.Fill, o.Opacity)
	case kinetic.TypeLine:
		r.appendStroke(m, o.Points, false, o.StrokeWidth, o.Stroke, o.Opacity)
	case kinetic.TypePath:
		r.appendFill(m, o.Points, o.Fill, o.Opacity)
		if o.StrokeWidth > 0 {
			r.appendStroke(m, o.Points, true, o.StrokeWidth, o.Stroke, o.Opacity)
		}
	}
}

// circle returns n points on a circle of radius rad around the origin.
func circle(rad float64, n int) []kinetic.Point {
	pts := make([]kinetic.Point, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = kinetic.Point{X: cos * rad, Y: sin * rad}
	}
	return pts
}

// vertex builds a premultiplied vertex sampling the white pixel.
func vertex(p kinetic.Point, c kinetic.Color, opacity float64) ebiten.Vertex {
	a := float32(float64(c.A) / 255 * math.Max(0, math.Min(1, opacity)))
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) / 255 * a,
		ColorG: float32(c.G) / 255 * a,
		ColorB: float32(c.B) / 255 * a,
		ColorA: a,
	}
}

// appendFill emits a triangle fan over pts. Fans are exact for convex
// outlines; concave paths overdraw.
func (r *Renderer) appendFill(m kinetic.Matrix, pts []kinetic.Point, c kinetic.Color, opacity float64) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	base := uint32(len(r.verts))
	for _, p := range pts {
		r.verts = append(r.verts, vertex(m.Apply(p), c, opacity))
	}
	for i := 1; i < len(pts)-1; i++ {
		r.inds = append(r.inds, base, base+uint32(i), base+uint32(i+1))
	}
}

// appendStroke emits one quad per segment of the polyline. Segment width is
// measured in screen pixels after m is applied.
func (r *Renderer) appendStroke(m kinetic.Matrix, pts []kinetic.Point, closed bool, width float64, c kinetic.Color, opacity float64) {
	if len(pts) < 2 || width <= 0 || c.A == 0 {
		return
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	half := width / 2
	for i := 0; i < n; i++ {
		a := m.Apply(pts[i])
		b := m.Apply(pts[(i+1)%len(pts)])
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			continue
		}
		nx, ny := -d.Y/l*half, d.X/l*half
		base := uint32(len(r.verts))
		r.verts = append(r.verts,
			vertex(kinetic.Point{X: a.X + nx, Y: a.Y + ny}, c, opacity),
			vertex(kinetic.Point{X: b.X + nx, Y: b.Y + ny}, c, opacity),
			vertex(kinetic.Point{X: a.X - nx, Y: a.Y - ny}, c, opacity),
			vertex(kinetic.Point{X: b.X - nx, Y: b.Y - ny}, c, opacity),
		)
		r.inds = append(r.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}
