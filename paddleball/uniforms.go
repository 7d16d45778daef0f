package paddleball

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/paddleball/common"
	"github.com/Carmen-Shannon/paddleball/config"
)

// SceneUniformsSize is the byte size of the SceneUniforms WGSL struct: eleven f32 values.
const SceneUniformsSize = 11 * 4

// ErrInvalidUniforms is returned by SceneUniforms.Validate.
var ErrInvalidUniforms = errors.New("invalid scene uniforms")

// Default scene placement in uv units (origin bottom-left, y up).
const (
	DefaultPaddleX = 0.5
	DefaultPaddleY = 0.12
	DefaultPaddleW = 0.20
	DefaultPaddleH = 0.04
	DefaultBallX   = 0.5
	DefaultBallY   = 0.65
	DefaultBallR   = 0.03
)

// SceneUniforms is the per-frame draw record uploaded to the fragment stage. Paddle position,
// width and height are in uv units; the ball radius is a fraction of the viewport height, and
// Aspect (width / height) keeps the ball round.
type SceneUniforms struct {
	PaddleX, PaddleY float32
	PaddleW, PaddleH float32
	BallX, BallY     float32
	BallR            float32
	Aspect           float32
}

// DefaultSceneUniforms returns the scaffold scene at the given aspect ratio.
func DefaultSceneUniforms(aspect float32) SceneUniforms {
	return SceneUniforms{
		PaddleX: DefaultPaddleX,
		PaddleY: DefaultPaddleY,
		PaddleW: DefaultPaddleW,
		PaddleH: DefaultPaddleH,
		BallX:   DefaultBallX,
		BallY:   DefaultBallY,
		BallR:   DefaultBallR,
		Aspect:  aspect,
	}
}

// UniformsFromConfig builds uniforms from a scene configuration.
func UniformsFromConfig(scene config.SceneConfig, aspect float32) SceneUniforms {
	return SceneUniforms{
		PaddleX: scene.Paddle.X,
		PaddleY: scene.Paddle.Y,
		PaddleW: scene.Paddle.W,
		PaddleH: scene.Paddle.H,
		BallX:   scene.Ball.X,
		BallY:   scene.Ball.Y,
		BallR:   scene.Ball.R,
		Aspect:  aspect,
	}
}

// AspectRatio returns width / height with the height clamped to at least one pixel.
func AspectRatio(width, height int) float32 {
	return float32(width) / float32(max(height, 1))
}

// Marshal encodes the uniforms in WGSL uniform layout, little-endian, padding included.
func (u SceneUniforms) Marshal() []byte {
	buf := make([]byte, SceneUniformsSize)
	common.PutFloat32s(buf,
		u.PaddleX, u.PaddleY, u.PaddleW, u.PaddleH,
		u.BallX, u.BallY, u.BallR, u.Aspect,
		0, 0, 0,
	)
	return buf
}

// Validate checks that every value is finite and that sizes and the aspect are not negative.
func (u SceneUniforms) Validate() error {
	fields := []struct {
		name        string
		v           float32
		nonNegative bool
	}{
		{"paddle_x", u.PaddleX, false},
		{"paddle_y", u.PaddleY, false},
		{"paddle_w", u.PaddleW, true},
		{"paddle_h", u.PaddleH, true},
		{"ball_x", u.BallX, false},
		{"ball_y", u.BallY, false},
		{"ball_r", u.BallR, true},
		{"aspect", u.Aspect, true},
	}
	for _, f := range fields {
		if !common.IsFinite32(f.v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidUniforms, f.name)
		}
		if f.nonNegative && f.v < 0 {
			return fmt.Errorf("%w: %s is negative (%g)", ErrInvalidUniforms, f.name, f.v)
		}
	}
	return nil
}
