package paddleball

import (
	"math"
	"strings"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func nearRGBA(a, b RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestShadeRegions(t *testing.T) {
	u := DefaultSceneUniforms(16.0 / 9.0)
	c := DefaultColors

	tests := []struct {
		name string
		x, y float32
		want RGBA
	}{
		{"background corner", 0.02, 0.98, c.Clear},
		{"paddle center", u.PaddleX, u.PaddleY, c.Paddle},
		{"ball center", u.BallX, u.BallY, c.Ball},
		{"beside paddle", u.PaddleX + u.PaddleW, u.PaddleY, c.Clear},
		{"below ball", u.BallX, u.BallY - 2*u.BallR, c.Clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shade(u, c, tt.x, tt.y); !nearRGBA(got, tt.want) {
				t.Errorf("Shade(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestShadeBallIsRoundOnScreen(t *testing.T) {
	u := DefaultSceneUniforms(2)
	c := DefaultColors

	// The radius is in height units, so horizontally the ball spans r/aspect in uv.
	inside := u.BallR * 0.9
	if got := Shade(u, c, u.BallX, u.BallY+inside); !nearRGBA(got, c.Ball) {
		t.Errorf("vertical inside = %+v, want ball", got)
	}
	if got := Shade(u, c, u.BallX+inside/u.Aspect, u.BallY); !nearRGBA(got, c.Ball) {
		t.Errorf("horizontal inside = %+v, want ball", got)
	}
	if got := Shade(u, c, u.BallX+inside, u.BallY); !nearRGBA(got, c.Clear) {
		t.Errorf("horizontal r in uv units = %+v, want background at aspect 2", got)
	}
}

func TestShadeBallOverPaddle(t *testing.T) {
	u := DefaultSceneUniforms(1)
	u.BallX, u.BallY = u.PaddleX, u.PaddleY
	if got := Shade(u, DefaultColors, u.PaddleX, u.PaddleY); !nearRGBA(got, DefaultColors.Ball) {
		t.Errorf("overlap = %+v, want ball colour on top", got)
	}
}

func TestShadeEdgeIsBlended(t *testing.T) {
	u := DefaultSceneUniforms(1)
	c := DefaultColors
	edge := u.PaddleX + 0.5*u.PaddleW - 0.5*EdgeSoftness
	got := Shade(u, c, edge, u.PaddleY)
	if nearRGBA(got, c.Paddle) || nearRGBA(got, c.Clear) {
		t.Errorf("edge pixel = %+v, want a blend", got)
	}
	if got.R < c.Clear.R || got.R > c.Paddle.R {
		t.Errorf("edge red %v outside [%v, %v]", got.R, c.Clear.R, c.Paddle.R)
	}
}

func TestShadeZeroSizedShapesAreInvisible(t *testing.T) {
	u := DefaultSceneUniforms(1)
	u.PaddleW, u.PaddleH, u.BallR = 0, 0, 0
	for _, p := range [][2]float32{{u.PaddleX, u.PaddleY}, {u.BallX, u.BallY}, {0.3, 0.3}} {
		if got := Shade(u, DefaultColors, p[0], p[1]); !nearRGBA(got, DefaultColors.Clear) {
			t.Errorf("Shade(%v) = %+v, want clear", p, got)
		}
	}
}

func TestColorsWGSL(t *testing.T) {
	src := DefaultColors.WGSL()
	for _, want := range []string{
		"const PADDLE_COLOR = vec4f(0.86, 0.88, 0.92, 1.0);",
		"const BALL_COLOR = vec4f(0.98, 0.55, 0.22, 1.0);",
		"const EDGE_SOFTNESS: f32 = 0.003;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("WGSL() missing %q in:\n%s", want, src)
		}
	}

	c := DefaultColors.WithClear([4]float64{1, 0, 0, 1})
	if c.Clear != (RGBA{1, 0, 0, 1}) || c.Paddle != DefaultColors.Paddle {
		t.Errorf("WithClear() = %+v", c)
	}
}
