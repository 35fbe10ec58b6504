package game

import "math/rand"

// Texture is an indexable pixel rectangle satisfying the
// (texture, x, y) -> RGB query the renderer needs. Sprite textures also
// carry a transparency mask; wall textures are fully opaque.
type Texture struct {
	size  int
	pix   []RGB
	alpha []bool // true = opaque; nil means fully opaque
}

// NewTexture allocates a size x size opaque texture filled with fill.
func NewTexture(size int, fill RGB) *Texture {
	t := &Texture{size: size, pix: make([]RGB, size*size)}
	for i := range t.pix {
		t.pix[i] = fill
	}
	return t
}

// NewSpriteTexture allocates a size x size fully transparent texture.
func NewSpriteTexture(size int) *Texture {
	return &Texture{size: size, pix: make([]RGB, size*size), alpha: make([]bool, size*size)}
}

// Size returns the texture edge length in pixels.
func (t *Texture) Size() int { return t.size }

// At samples the texture, clamping coordinates to the edge.
func (t *Texture) At(x, y int) RGB {
	x, y = t.clamp(x), t.clamp(y)
	return t.pix[y*t.size+x]
}

// Opaque reports whether the pixel at (x,y) should be drawn.
func (t *Texture) Opaque(x, y int) bool {
	if t.alpha == nil {
		return true
	}
	x, y = t.clamp(x), t.clamp(y)
	return t.alpha[y*t.size+x]
}

func (t *Texture) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= t.size {
		return t.size - 1
	}
	return v
}

func (t *Texture) set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return
	}
	i := y*t.size + x
	t.pix[i] = c
	if t.alpha != nil {
		t.alpha[i] = true
	}
}

func (t *Texture) fillRect(x, y, w, h int, c RGB) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			t.set(px, py, c)
		}
	}
}

func (t *Texture) fillCircle(cx, cy, r int, c RGB) {
	for py := cy - r; py <= cy+r; py++ {
		for px := cx - r; px <= cx+r; px++ {
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= r*r {
				t.set(px, py, c)
			}
		}
	}
}

// GenerateWallTextures builds the three procedural wall patterns: brick,
// stone block and tech panel. The rng seed is fixed by the caller so a level
// always looks the same.
func GenerateWallTextures(size int, rng *rand.Rand) []*Texture {
	return []*Texture{
		brickTexture(size, rng),
		stoneTexture(size, rng),
		panelTexture(size, rng),
	}
}

func brickTexture(size int, rng *rand.Rand) *Texture {
	t := NewTexture(size, RGB{140, 50, 30})
	for y := 0; y < size; y += 8 {
		for x := 0; x < size; x += 16 {
			offset := 0
			if y%16 == 0 {
				offset = 8
			}
			t.fillRect(x+offset+1, y+1, 7, 3, RGB{190, 100, 60})
			if rng.Float64() > 0.7 {
				shade := rng.Intn(41) - 20
				c := RGB{
					clampByte(190 + shade),
					clampByte(100 + shade/2),
					clampByte(60 + shade/3),
				}
				t.fillRect(x+offset+2, y+2, 5, 1, c)
			}
		}
	}
	return t
}

func stoneTexture(size int, rng *rand.Rand) *Texture {
	t := NewTexture(size, RGB{70, 70, 70})
	for y := 0; y < size; y += 8 {
		for x := 0; x < size; x += 8 {
			shade := 70 + rng.Intn(51)
			c := RGB{uint8(shade), uint8(shade), clampByte(shade + rng.Intn(21) - 10)}
			t.fillRect(x, y, 7, 7, c)
			edge := clampByte(max(30, shade-40))
			t.fillRect(x, y+7, 8, 1, RGB{edge, edge, edge})
			t.fillRect(x+7, y, 1, 8, RGB{edge, edge, edge})
		}
	}
	return t
}

func panelTexture(size int, rng *rand.Rand) *Texture {
	t := NewTexture(size, RGB{40, 55, 70})
	// Panel seams every quarter, rivets at the seam crossings.
	step := size / 4
	seam := RGB{25, 35, 45}
	rivet := RGB{120, 140, 160}
	for i := 0; i <= size; i += step {
		t.fillRect(i, 0, 1, size, seam)
		t.fillRect(0, i, size, 1, seam)
	}
	for y := step / 2; y < size; y += step {
		for x := step / 2; x < size; x += step {
			t.set(x, y, rivet)
			if rng.Float64() > 0.5 {
				t.set(x+1, y, RGB{90, 105, 120})
			}
		}
	}
	return t
}

// SpriteView indexes the precomputed enemy views.
type SpriteView int

const (
	ViewFront SpriteView = iota
	ViewSide
	ViewBack
	spriteViewCount
)

// GenerateEnemySprites builds the front/side/back views for one enemy class.
// The side view faces left; the compositor mirrors it for the other side.
func GenerateEnemySprites(size int, body, head RGB) [spriteViewCount]*Texture {
	var views [spriteViewCount]*Texture

	white := RGB{255, 255, 255}
	black := RGB{0, 0, 0}
	headR := size / 4
	eyeR := size / 12
	eyeOff := size / 16

	// Front: full body, two eyes.
	front := NewSpriteTexture(size)
	front.fillRect(size/4, size/3, size/2, size/2, body)
	front.fillCircle(size/2, size/4, headR, head)
	front.fillRect(size/8, size/3, size/6, size/3, body)
	front.fillRect(size*5/8, size/3, size/6, size/3, body)
	front.fillRect(size/3, size*5/6, size/6, size/6, body)
	front.fillRect(size/2, size*5/6, size/6, size/6, body)
	front.fillCircle(size/2-eyeOff, size/4, eyeR, white)
	front.fillCircle(size/2+eyeOff, size/4, eyeR, white)
	front.fillCircle(size/2-eyeOff, size/4, eyeR/2, black)
	front.fillCircle(size/2+eyeOff, size/4, eyeR/2, black)
	views[ViewFront] = front

	// Side: narrower body, one eye.
	side := NewSpriteTexture(size)
	side.fillRect(size*3/8, size/3, size/4, size/2, body)
	side.fillCircle(size/2, size/4, headR, head)
	side.fillRect(size*3/8, size/3, size/4, size/3, body)
	side.fillRect(size*3/8, size*5/6, size/6, size/6, body)
	side.fillRect(size/2, size*5/6, size/6, size/6, body)
	side.fillCircle(size*5/8, size/4, eyeR, white)
	side.fillCircle(size*5/8, size/4, eyeR/2, black)
	views[ViewSide] = side

	// Back: same silhouette, darker head, no eyes.
	back := NewSpriteTexture(size)
	back.fillRect(size/4, size/3, size/2, size/2, body)
	back.fillCircle(size/2, size/4, headR, RGB{head.R / 2, head.G / 2, head.B / 2})
	back.fillRect(size/8, size/3, size/6, size/3, body)
	back.fillRect(size*5/8, size/3, size/6, size/3, body)
	back.fillRect(size/3, size*5/6, size/6, size/6, body)
	back.fillRect(size/2, size*5/6, size/6, size/6, body)
	views[ViewBack] = back

	return views
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
