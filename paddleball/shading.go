package paddleball

import (
	"math"

	"github.com/Carmen-Shannon/paddleball/common"
)

func paddleCoverage(u SceneUniforms, x, y float32) float32 {
	dx := float32(math.Abs(float64(x-u.PaddleX))) - 0.5*u.PaddleW
	dy := float32(math.Abs(float64(y-u.PaddleY))) - 0.5*u.PaddleH
	return 1 - common.SmoothStep(-EdgeSoftness, 0, max(dx, dy))
}

func ballCoverage(u SceneUniforms, x, y float32) float32 {
	qx := float64((x - u.BallX) * u.Aspect)
	qy := float64(y - u.BallY)
	dist := float32(math.Hypot(qx, qy))
	return 1 - common.SmoothStep(u.BallR-EdgeSoftness, u.BallR, dist)
}

// Shade is the CPU reference of the fragment stage: the colour of the point (x, y) in uv space
// (origin bottom-left, y up) after blending the shapes over the clear colour.
//
// Parameters:
//   - u: the scene uniforms
//   - c: the palette
//   - x: horizontal uv coordinate in [0, 1]
//   - y: vertical uv coordinate in [0, 1]
//
// Returns:
//   - RGBA: the blended colour
func Shade(u SceneUniforms, c Colors, x, y float32) RGBA {
	p := paddleCoverage(u, x, y) * c.Paddle.A
	b := ballCoverage(u, x, y) * c.Ball.A

	// Premultiplied ball-over-paddle, then source-over onto the clear colour with the
	// pipeline's src-alpha / one-minus-src-alpha blend.
	a := b + p*(1-b)
	r := c.Ball.R*b + c.Paddle.R*p*(1-b)
	g := c.Ball.G*b + c.Paddle.G*p*(1-b)
	bl := c.Ball.B*b + c.Paddle.B*p*(1-b)

	return RGBA{
		R: r + c.Clear.R*(1-a),
		G: g + c.Clear.G*(1-a),
		B: bl + c.Clear.B*(1-a),
		A: a + c.Clear.A*(1-a),
	}
}
