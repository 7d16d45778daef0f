package renderer

import (
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption configures a Renderer during NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipeline queues a pipeline to be registered once the device exists.
//
// Parameters:
//   - p: the pipeline description
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pending = append(r.pending, p)
	}
}

// WithPipelines queues several pipelines. See WithPipeline.
func WithPipelines(pipelines ...pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pending = append(r.pending, pipelines...)
	}
}

// WithPresentMode sets how frames are delivered to the display.
//
// Parameters:
//   - mode: PresentModeAuto, PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.presentMode = mode
	}
}

// WithMSAA sets the sample count of the render pass. Counts other than 4 turn MSAA off.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if count != MSAA4x {
			count = MSAAOff
		}
		r.settings.sampleCount = count
	}
}

// WithForceFallbackAdapter requests the software adapter, for machines without a usable GPU.
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.forceFallbackAdapter = force
	}
}

// WithPowerPreference selects the adapter class to request.
func WithPowerPreference(pref PowerPreference) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.powerPreference = pref
	}
}

// WithClearColor sets the colour each frame is cleared to before drawing.
//
// Parameters:
//   - c: RGBA components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithClearColor(c [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.clearColor = wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
}
