package paddleball

import (
	"fmt"
	"strings"
)

// RGBA is a straight-alpha colour with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Colors is the scene palette. The GPU shader receives it as WGSL constants (see Colors.WGSL)
// and Shade uses it directly, so both renderings agree.
type Colors struct {
	Clear  RGBA
	Paddle RGBA
	Ball   RGBA
}

// DefaultColors is the scaffold palette: a near-black background, a light grey paddle and an
// orange ball.
var DefaultColors = Colors{
	Clear:  RGBA{0.06, 0.07, 0.09, 1},
	Paddle: RGBA{0.86, 0.88, 0.92, 1},
	Ball:   RGBA{0.98, 0.55, 0.22, 1},
}

// WithClear returns a copy of c with the clear colour replaced.
func (c Colors) WithClear(clear [4]float64) Colors {
	c.Clear = RGBA{float32(clear[0]), float32(clear[1]), float32(clear[2]), float32(clear[3])}
	return c
}

// EdgeSoftness is the width, in uv units, over which shape edges fade out. The fade lies
// inside the shape, so a zero-sized shape covers nothing.
const EdgeSoftness = 0.003

// WGSL renders the palette and the edge width as WGSL constant declarations.
func (c Colors) WGSL() string {
	var sb strings.Builder
	writeConst := func(name string, v RGBA) {
		fmt.Fprintf(&sb, "const %s = vec4f(%s, %s, %s, %s);\n", name, wgslFloat(v.R), wgslFloat(v.G), wgslFloat(v.B), wgslFloat(v.A))
	}
	writeConst("PADDLE_COLOR", c.Paddle)
	writeConst("BALL_COLOR", c.Ball)
	fmt.Fprintf(&sb, "const EDGE_SOFTNESS: f32 = %s;\n", wgslFloat(EdgeSoftness))
	return sb.String()
}

// wgslFloat formats v as a WGSL abstract float literal; WGSL needs the decimal point.
func wgslFloat(v float32) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
