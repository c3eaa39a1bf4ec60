package draw

import "math"

// DrawCircle draws a circle outline of logical radius r centred at (cx, cy).
// The number of segments grows with the on-screen size.
func (c *Canvas) DrawCircle(cx, cy, r float64) {
	px := r * math.Max(c.scaleX, c.scaleY)
	segments := int(math.Ceil(px * 2 * math.Pi / 2))
	if segments < 8 {
		segments = 8
	}
	points := c.BorrowPoints(segments)
	for i := range points {
		a := float64(i) / float64(segments) * 2 * math.Pi
		points[i] = Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	c.DrawPolygon(points, false)
}

// FillCircle draws a filled disc. Discs smaller than a pixel still set one.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	if r*c.scaleX < 1 && r*c.scaleY < 1 {
		c.SetFloat(cx, cy)
		return
	}
	x0 := int(math.Floor((cx - r) * c.scaleX))
	x1 := int(math.Ceil((cx + r) * c.scaleX))
	y0 := int(math.Floor((cy - r) * c.scaleY))
	y1 := int(math.Ceil((cy + r) * c.scaleY))
	r2 := r * r
	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if lx*lx+ly*ly <= r2 {
				c.setPixel(px, py)
			}
		}
	}
}

// DrawThickLine draws a line of the given logical thickness as a filled quad
// with round caps.
func (c *Canvas) DrawThickLine(p1, p2 Point, thickness float64) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	half := thickness / 2
	if length == 0 {
		c.FillCircle(p1.X, p1.Y, half)
		return
	}
	nx, ny := -dy/length*half, dx/length*half
	quad := c.BorrowPoints(4)
	quad[0] = Point{X: p1.X + nx, Y: p1.Y + ny}
	quad[1] = Point{X: p2.X + nx, Y: p2.Y + ny}
	quad[2] = Point{X: p2.X - nx, Y: p2.Y - ny}
	quad[3] = Point{X: p1.X - nx, Y: p1.Y - ny}
	c.DrawPolygon(quad, true)
	c.FillCircle(p1.X, p1.Y, half)
	c.FillCircle(p2.X, p2.Y, half)
}
