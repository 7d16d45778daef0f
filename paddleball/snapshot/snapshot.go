// Package snapshot draws the paddleball scene on the CPU with gg, for PNG output without a GPU
// and for checking the shader against a reference.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/paddleball"
	"github.com/gogpu/gg"
)

// ErrInvalidSize is returned when the requested image has a zero or negative side.
var ErrInvalidSize = errors.New("snapshot size must be positive")

func toGG(c paddleball.RGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
}

func setColor(dc *gg.Context, c paddleball.RGBA) {
	dc.SetRGBA(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
}

// Render draws the scene as vector shapes: the paddle as a rectangle and the ball as a circle
// whose radius is BallR times the image height. The caller closes the context.
//
// Parameters:
//   - u: the scene uniforms; the aspect is taken from width and height
//   - colors: the palette
//   - width: image width in pixels
//   - height: image height in pixels
//
// Returns:
//   - *gg.Context: the drawn context
//   - error: ErrInvalidSize, invalid uniforms or a fill error
func Render(u paddleball.SceneUniforms, colors paddleball.Colors, width, height int) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	u.Aspect = paddleball.AspectRatio(width, height)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	gg.SetLogger(logger.Logger())

	w, h := float64(width), float64(height)
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(toGG(colors.Clear))

	// uv has its origin bottom-left; image rows grow downward.
	if u.PaddleW > 0 && u.PaddleH > 0 {
		x := float64(u.PaddleX-u.PaddleW/2) * w
		y := (1 - float64(u.PaddleY+u.PaddleH/2)) * h
		dc.DrawRectangle(x, y, float64(u.PaddleW)*w, float64(u.PaddleH)*h)
		setColor(dc, colors.Paddle)
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("fill paddle: %w", err)
		}
	}

	if u.BallR > 0 {
		dc.DrawCircle(float64(u.BallX)*w, (1-float64(u.BallY))*h, float64(u.BallR)*h)
		setColor(dc, colors.Ball)
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("fill ball: %w", err)
		}
	}

	logger.Logger().Debug("snapshot rendered", "width", width, "height", height)
	return dc, nil
}

// Reference shades every pixel centre with paddleball.Shade. It matches the GPU fragment stage
// exactly, edge fade included, at the cost of one Shade call per pixel.
//
// Parameters:
//   - u: the scene uniforms; the aspect is taken from width and height
//   - colors: the palette
//   - width: image width in pixels
//   - height: image height in pixels
//
// Returns:
//   - *gg.Context: the shaded context
//   - error: ErrInvalidSize or invalid uniforms
func Reference(u paddleball.SceneUniforms, colors paddleball.Colors, width, height int) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	u.Aspect = paddleball.AspectRatio(width, height)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	gg.SetLogger(logger.Logger())

	dc := gg.NewContext(width, height)
	for py := 0; py < height; py++ {
		v := 1 - (float32(py)+0.5)/float32(height)
		for px := 0; px < width; px++ {
			x := (float32(px) + 0.5) / float32(width)
			dc.SetPixel(px, py, toGG(paddleball.Shade(u, colors, x, v)))
		}
	}
	return dc, nil
}

// WritePNG renders the scene and saves it as a PNG file.
//
// Parameters:
//   - path: the output file
//   - u: the scene uniforms
//   - colors: the palette
//   - width: image width in pixels
//   - height: image height in pixels
//   - reference: shade per pixel with Reference instead of drawing shapes with Render
//
// Returns:
//   - error: a render or write error
func WritePNG(path string, u paddleball.SceneUniforms, colors paddleball.Colors, width, height int, reference bool) error {
	draw := Render
	if reference {
		draw = Reference
	}
	dc, err := draw(u, colors, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	logger.Logger().Info("snapshot written", "path", path, "width", width, "height", height)
	return nil
}
