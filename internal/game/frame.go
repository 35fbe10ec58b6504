package game

// RGB is one opaque pixel colour.
type RGB struct {
	R, G, B uint8
}

// Scale darkens the colour by factor in [0,1].
func (c RGB) Scale(factor float64) RGB {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Frame is a CPU-side RGBA pixel buffer the renderer draws into. The Ebiten
// layer blits it to the screen with WritePixels; tests and the headless
// report read it directly, so nothing in the render core touches Ebiten.
type Frame struct {
	w, h int
	pix  []byte
}

// NewFrame allocates a w x h opaque frame.
func NewFrame(w, h int) *Frame {
	f := &Frame{w: w, h: h, pix: make([]byte, w*h*4)}
	f.Clear(RGB{})
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.w }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.h }

// Pix exposes the raw RGBA bytes for blitting.
func (f *Frame) Pix() []byte { return f.pix }

// Clear fills the whole frame with one colour.
func (f *Frame) Clear(c RGB) {
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i] = c.R
		f.pix[i+1] = c.G
		f.pix[i+2] = c.B
		f.pix[i+3] = 0xff
	}
}

// Set writes one pixel. Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	i := (y*f.w + x) * 4
	f.pix[i] = c.R
	f.pix[i+1] = c.G
	f.pix[i+2] = c.B
	f.pix[i+3] = 0xff
}

// At reads one pixel. Out-of-bounds reads return black.
func (f *Frame) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return RGB{}
	}
	i := (y*f.w + x) * 4
	return RGB{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2]}
}

// FillRect fills the axis-aligned rectangle, clipped to the frame.
func (f *Frame) FillRect(x, y, w, h int, c RGB) {
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(f.w, x+w), min(f.h, y+h)
	for py := y0; py < y1; py++ {
		i := (py*f.w + x0) * 4
		for px := x0; px < x1; px++ {
			f.pix[i] = c.R
			f.pix[i+1] = c.G
			f.pix[i+2] = c.B
			f.pix[i+3] = 0xff
			i += 4
		}
	}
}

// HLine draws a horizontal run of pixels on row y from x0 to x1 inclusive.
func (f *Frame) HLine(x0, x1, y int, c RGB) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	f.FillRect(x0, y, x1-x0+1, 1, c)
}

// VLine draws a vertical run of pixels in column x from y0 to y1 inclusive.
func (f *Frame) VLine(x, y0, y1 int, c RGB) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	f.FillRect(x, y0, 1, y1-y0+1, c)
}

// Tint alpha-blends colour c over the whole frame at strength alpha (0-255).
// Used for the damage flash overlay.
func (f *Frame) Tint(c RGB, alpha uint8) {
	a := int(alpha)
	inv := 255 - a
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i] = uint8((int(f.pix[i])*inv + int(c.R)*a) / 255)
		f.pix[i+1] = uint8((int(f.pix[i+1])*inv + int(c.G)*a) / 255)
		f.pix[i+2] = uint8((int(f.pix[i+2])*inv + int(c.B)*a) / 255)
	}
}
