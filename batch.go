package canopy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// verticesPerQuad is two triangles, TL-TR-BL and TR-BR-BL.
const verticesPerQuad = 6

var quadOrder = [verticesPerQuad]int{0, 1, 2, 1, 3, 2}

// VertexBuffer is a fixed-capacity vertex store filled once per frame.
type VertexBuffer struct {
	verts []ebiten.Vertex
}

// NewVertexBuffer allocates a buffer holding up to capacity vertices.
func NewVertexBuffer(capacity int) *VertexBuffer {
	return &VertexBuffer{verts: make([]ebiten.Vertex, 0, capacity)}
}

// Len returns the number of vertices written.
func (b *VertexBuffer) Len() int { return len(b.verts) }

// Cap returns the vertex capacity.
func (b *VertexBuffer) Cap() int { return cap(b.verts) }

// Vertices returns the written vertices. Valid until the next Reset.
func (b *VertexBuffer) Vertices() []ebiten.Vertex { return b.verts }

// Reset discards every vertex, keeping the storage.
func (b *VertexBuffer) Reset() { b.verts = b.verts[:0] }

func (b *VertexBuffer) fits(n int) bool { return len(b.verts)+n <= cap(b.verts) }

// Batch is a contiguous run of vertices sharing one texture and kind.
type Batch struct {
	Texture *ebiten.Image
	Text    bool
	Start   int
	Count   int
}

// BatchWriter appends primitives to a VertexBuffer and groups contiguous
// primitives by active texture into batches. Every Write* method returns
// false when the vertex buffer or the batch table is full; vertices already
// written stay in place and the caller should stop emitting for this frame.
type BatchWriter struct {
	buf        *VertexBuffer
	batches    []Batch
	maxBatches int
	indices    []uint32
	op         ebiten.DrawTrianglesOptions
}

// NewBatchWriter returns a writer over buf allowing up to maxBatches batches
// per frame.
func NewBatchWriter(buf *VertexBuffer, maxBatches int) *BatchWriter {
	w := &BatchWriter{
		buf:        buf,
		batches:    make([]Batch, 0, maxBatches),
		maxBatches: maxBatches,
	}
	w.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	return w
}

// Reset discards the previous frame's vertices and batches.
func (w *BatchWriter) Reset() {
	w.buf.Reset()
	w.batches = w.batches[:0]
}

// Buffer returns the vertex buffer the writer appends to.
func (w *BatchWriter) Buffer() *VertexBuffer { return w.buf }

// Batches returns the batches written since the last Reset.
func (w *BatchWriter) Batches() []Batch { return w.batches }

// SetActiveTexture makes tex (WhitePixel when nil) the texture of the
// following primitives. It continues the last batch when texture and kind
// match, otherwise opens a new batch. Returns false when the batch table is
// full.
func (w *BatchWriter) SetActiveTexture(tex *ebiten.Image, text bool) bool {
	if tex == nil {
		tex = WhitePixel
	}
	if n := len(w.batches); n > 0 {
		last := &w.batches[n-1]
		if last.Texture == tex && last.Text == text {
			return true
		}
	}
	if len(w.batches) >= w.maxBatches {
		return false
	}
	w.batches = append(w.batches, Batch{Texture: tex, Text: text, Start: w.buf.Len()})
	return true
}

// writeQuad appends one quad into the active batch. Corners are TL, TR, BL,
// BR.
func (w *BatchWriter) writeQuad(dst, src [4]Vec2, col [4]Color) bool {
	if len(w.batches) == 0 || !w.buf.fits(verticesPerQuad) {
		return false
	}
	for _, i := range quadOrder {
		r, g, b, a := col[i].premultiplied()
		w.buf.verts = append(w.buf.verts, ebiten.Vertex{
			DstX:   float32(dst[i].X),
			DstY:   float32(dst[i].Y),
			SrcX:   float32(src[i].X),
			SrcY:   float32(src[i].Y),
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	w.batches[len(w.batches)-1].Count += verticesPerQuad
	return true
}

func rectCorners(r Rect) [4]Vec2 {
	return [4]Vec2{
		{r.MinX, r.MinY},
		{r.MaxX, r.MinY},
		{r.MinX, r.MaxY},
		{r.MaxX, r.MaxY},
	}
}

func materialOrWhite(mat *Material) *Material {
	if mat == nil {
		white := SolidMaterial(ColorWhite)
		return &white
	}
	return mat
}

// WriteRect writes r filled with mat (solid white when nil).
func (w *BatchWriter) WriteRect(r Rect, mat *Material) bool {
	mat = materialOrWhite(mat)
	tex, src := mat.sourceRect()
	if !w.SetActiveTexture(tex, false) {
		return false
	}
	return w.writeQuad(rectCorners(r), rectCorners(src), mat.cornerColors())
}

// WriteRotatedRect writes r rotated by angle radians about its center.
func (w *BatchWriter) WriteRotatedRect(r Rect, angle float64, mat *Material) bool {
	mat = materialOrWhite(mat)
	tex, src := mat.sourceRect()
	if !w.SetActiveTexture(tex, false) {
		return false
	}
	c := r.Center()
	sin, cos := math.Sincos(angle)
	dst := rectCorners(r)
	for i, p := range dst {
		dx, dy := p.X-c.X, p.Y-c.Y
		dst[i] = Vec2{c.X + dx*cos - dy*sin, c.Y + dx*sin + dy*cos}
	}
	return w.writeQuad(dst, rectCorners(src), mat.cornerColors())
}

// WriteLine writes a segment from a to b, width pixels thick. A horizontal
// gradient runs from a to b. Zero-length segments write nothing.
func (w *BatchWriter) WriteLine(a, b Vec2, width float64, mat *Material) bool {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return true
	}
	mat = materialOrWhite(mat)
	tex, src := mat.sourceRect()
	if !w.SetActiveTexture(tex, false) {
		return false
	}
	n := Vec2{-d.Y / l, d.X / l}.Scale(width / 2)
	dst := [4]Vec2{a.Sub(n), b.Sub(n), a.Add(n), b.Add(n)}
	return w.writeQuad(dst, rectCorners(src), mat.cornerColors())
}

// bilerpColor samples the TL, TR, BL, BR corner values at (tx, ty).
func bilerpColor(c [4]Color, tx, ty float64) Color {
	top := c[0].lerp(c[1], tx)
	bottom := c[2].lerp(c[3], tx)
	return top.lerp(bottom, ty)
}

// WriteClippedRect writes the part of r inside clip. The quad is shrunk and
// its texture coordinates and colors adjusted by the clipped ratio. A rect
// entirely outside clip writes nothing and reports success.
func (w *BatchWriter) WriteClippedRect(r, clip Rect, mat *Material) bool {
	in, ok := r.Intersect(clip)
	if !ok {
		return true
	}
	if in == r {
		return w.WriteRect(r, mat)
	}
	mat = materialOrWhite(mat)
	tex, src := mat.sourceRect()
	if !w.SetActiveTexture(tex, false) {
		return false
	}
	return w.writeQuad(rectCorners(in), clipSource(r, in, src), clipColors(r, in, mat.cornerColors()))
}

// clipSource maps the clipped part in of r onto src by ratio.
func clipSource(r, in, src Rect) [4]Vec2 {
	rw, rh := r.Width(), r.Height()
	u0 := (in.MinX - r.MinX) / rw
	u1 := (in.MaxX - r.MinX) / rw
	v0 := (in.MinY - r.MinY) / rh
	v1 := (in.MaxY - r.MinY) / rh
	sw, sh := src.Width(), src.Height()
	return rectCorners(Rect{
		MinX: src.MinX + sw*u0,
		MinY: src.MinY + sh*v0,
		MaxX: src.MinX + sw*u1,
		MaxY: src.MinY + sh*v1,
	})
}

func clipColors(r, in Rect, col [4]Color) [4]Color {
	rw, rh := r.Width(), r.Height()
	u0 := (in.MinX - r.MinX) / rw
	u1 := (in.MaxX - r.MinX) / rw
	v0 := (in.MinY - r.MinY) / rh
	v1 := (in.MaxY - r.MinY) / rh
	return [4]Color{
		bilerpColor(col, u0, v0),
		bilerpColor(col, u1, v0),
		bilerpColor(col, u0, v1),
		bilerpColor(col, u1, v1),
	}
}

// clipSegment clips the segment a-b against clip (Liang-Barsky) and returns
// the parameters of the visible part.
func clipSegment(a, b Vec2, clip Rect) (t0, t1 float64, ok bool) {
	d := b.Sub(a)
	t0, t1 = 0, 1
	p := [4]float64{-d.X, d.X, -d.Y, d.Y}
	q := [4]float64{a.X - clip.MinX, clip.MaxX - a.X, a.Y - clip.MinY, clip.MaxY - a.Y}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// WriteClippedLine writes the part of segment a-b inside clip. The color of
// a gradient line is resampled at the clipped end points.
func (w *BatchWriter) WriteClippedLine(a, b Vec2, width float64, clip Rect, mat *Material) bool {
	t0, t1, ok := clipSegment(a, b, clip)
	if !ok {
		return true
	}
	mat = materialOrWhite(mat)
	clipped := *mat
	if mat.Fill == FillHorizontalGradient {
		clipped.Color1 = mat.Color1.lerp(mat.Color2, t0)
		clipped.Color2 = mat.Color1.lerp(mat.Color2, t1)
	}
	d := b.Sub(a)
	return w.WriteLine(a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), width, &clipped)
}

// WriteFontGlyph writes glyph r of font with the pen at pen (top of the line)
// and returns the scaled advance. A rune without a glyph writes nothing.
func (w *BatchWriter) WriteFontGlyph(font GlyphSource, r rune, pen Vec2, scale float64, c Color) (float64, bool) {
	return w.writeGlyph(font, r, pen, scale, c, nil)
}

func (w *BatchWriter) writeGlyph(font GlyphSource, r rune, pen Vec2, scale float64, c Color, clip *Rect) (float64, bool) {
	g, ok := font.Glyph(r)
	if !ok {
		return 0, true
	}
	advance := g.Advance * scale
	if g.Src.Width() <= 0 || g.Src.Height() <= 0 {
		return advance, true
	}
	dst := RectFromPosSize(pen.Add(g.Offset.Scale(scale)), g.Src.Size().Scale(scale))
	src := rectCorners(g.Src)
	if clip != nil {
		in, visible := dst.Intersect(*clip)
		if !visible {
			return advance, true
		}
		src = clipSource(dst, in, g.Src)
		dst = in
	}
	if !w.SetActiveTexture(font.Texture(), true) {
		return advance, false
	}
	return advance, w.writeQuad(rectCorners(dst), src, [4]Color{c, c, c, c})
}

// WriteText writes text starting at pos (top-left of the first line).
func (w *BatchWriter) WriteText(font GlyphSource, text string, pos Vec2, scale float64, c Color) bool {
	return w.writeText(font, text, pos, scale, c, nil)
}

// WriteClippedText writes the part of text inside clip. Glyphs straddling
// the clip edge are shrunk; glyphs entirely outside are skipped.
func (w *BatchWriter) WriteClippedText(font GlyphSource, text string, pos Vec2, scale float64, c Color, clip Rect) bool {
	return w.writeText(font, text, pos, scale, c, &clip)
}

func (w *BatchWriter) writeText(font GlyphSource, text string, pos Vec2, scale float64, c Color, clip *Rect) bool {
	if font == nil {
		return true
	}
	kern, _ := font.(Kerner)
	pen := pos
	var prev rune
	hasPrev := false
	for _, r := range text {
		if r == '\n' {
			pen.X = pos.X
			pen.Y += font.LineHeight() * scale
			hasPrev = false
			continue
		}
		if kern != nil {
			if _, ok := font.Glyph(r); !ok {
				hasPrev = false
				continue
			}
			if hasPrev {
				pen.X += kern.Kerning(prev, r) * scale
			}
			prev, hasPrev = r, true
		}
		advance, ok := w.writeGlyph(font, r, pen, scale, c, clip)
		if !ok {
			return false
		}
		pen.X += advance
	}
	return true
}

// Flush submits every non-empty batch to target, one DrawTriangles32 call
// per batch. Text batches sample with linear filtering.
func (w *BatchWriter) Flush(target *ebiten.Image) {
	verts := w.buf.Vertices()
	for _, b := range w.batches {
		if b.Count == 0 {
			continue
		}
		w.op.Filter = ebiten.FilterNearest
		if b.Text {
			w.op.Filter = ebiten.FilterLinear
		}
		target.DrawTriangles32(verts[b.Start:b.Start+b.Count], w.sequentialIndices(b.Count), b.Texture, &w.op)
	}
}

func (w *BatchWriter) sequentialIndices(n int) []uint32 {
	for i := len(w.indices); i < n; i++ {
		w.indices = append(w.indices, uint32(i))
	}
	return w.indices[:n]
}
