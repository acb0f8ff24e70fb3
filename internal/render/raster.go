package render

import (
	"image"
	"image/color"
	"sort"

	"worldgen/internal/polymap"
)

// Render paints every cell polygon, then edges and vertex markers according
// to the shader. Output size matches the mesh dimensions.
func Render(m *polymap.PolyMap, sh MapShader) *image.RGBA {
	w, h := int(m.Width()), int(m.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < m.NumCells(); i++ {
		id := polymap.CellID(i)
		fillPolygon(img, m.Cell(id).Polygon(), sh.CellColor(id))
	}
	for i := 0; i < m.NumEdges(); i++ {
		id := polymap.EdgeID(i)
		c, ok := sh.EdgeColor(id)
		if !ok {
			continue
		}
		e := m.Edge(id)
		a, b := m.Vertex(e.Start()), m.Vertex(e.End())
		drawLine(img, int(a.X()), int(a.Y()), int(b.X()), int(b.Y()), c)
	}
	if sh.DrawVertices() {
		for i := 0; i < m.NumVertices(); i++ {
			id := polymap.VertexID(i)
			c, ok := sh.VertexColor(id)
			if !ok {
				continue
			}
			v := m.Vertex(id)
			drawDot(img, int(v.X()), int(v.Y()), c)
		}
	}
	return img
}

// fillPolygon scanline-fills a convex or concave simple polygon.
func fillPolygon(img *image.RGBA, poly []polymap.Point, c color.RGBA) {
	if len(poly) < 3 {
		return
	}
	minY, maxY := poly[0].Y, poly[0].Y
	for _, p := range poly[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	y0 := maxInt(int(minY), img.Rect.Min.Y)
	y1 := minInt(int(maxY), img.Rect.Max.Y-1)
	xs := make([]float64, 0, 8)
	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			if (a.Y <= fy) == (b.Y <= fy) {
				continue
			}
			xs = append(xs, a.X+(fy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := maxInt(int(xs[i]), img.Rect.Min.X)
			x1 := minInt(int(xs[i+1]), img.Rect.Max.X-1)
			for x := x0; x <= x1; x++ {
				blend(img, x, y, c)
			}
		}
	}
}

// drawLine is Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		blend(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawDot paints a 3x3 square centered on the point.
func drawDot(img *image.RGBA, x, y int, c color.RGBA) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			blend(img, x+dx, y+dy, c)
		}
	}
}

// blend writes a pixel with source-over alpha compositing.
func blend(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	if c.A == 0xff {
		img.SetRGBA(x, y, c)
		return
	}
	if c.A == 0 {
		return
	}
	d := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(d.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(d.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(d.B)*inv) / 255),
		A: uint8(a + uint32(d.A)*inv/255),
	})
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
