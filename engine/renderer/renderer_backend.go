package renderer

import (
	"strings"

	"github.com/Carmen-Shannon/paddleball/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeAuto uses the first present mode the surface reports. On the web this is the
	// only mode the browser offers.
	PresentModeAuto PresentMode = iota

	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency. Falls back to the surface's
	// first mode when immediate presentation is unsupported.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "auto"
	}
}

// ParsePresentMode maps a configuration string onto a PresentMode. Unknown values map to
// PresentModeAuto.
//
// Parameters:
//   - s: "auto", "vsync" or "uncapped", case-insensitive
//
// Returns:
//   - PresentMode: the present mode
func ParsePresentMode(s string) PresentMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vsync":
		return PresentModeVSync
	case "uncapped":
		return PresentModeUncapped
	default:
		return PresentModeAuto
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4 only.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// PowerPreference selects between the discrete and the integrated adapter when both exist.
type PowerPreference int

const (
	// PowerHighPerformance prefers the discrete adapter. This is the default.
	PowerHighPerformance PowerPreference = iota

	// PowerLow prefers the integrated adapter.
	PowerLow
)

// ParsePowerPreference maps "high" or "low" onto a PowerPreference; anything else is
// PowerHighPerformance.
func ParsePowerPreference(s string) PowerPreference {
	if strings.EqualFold(strings.TrimSpace(s), "low") {
		return PowerLow
	}
	return PowerHighPerformance
}

func (p PowerPreference) toWGPU() wgpu.PowerPreference {
	if p == PowerLow {
		return wgpu.PowerPreferenceLowPower
	}
	return wgpu.PowerPreferenceHighPerformance
}

// backendSettings carries the builder options the backend needs at creation time.
type backendSettings struct {
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	forceFallbackAdapter bool
	powerPreference      PowerPreference
	clearColor           wgpu.Color
}

// RendererBackend is the GPU-facing half of the Renderer. The Renderer owns the pipeline cache
// and argument checks; the backend owns every GPU object and the per-frame encoder state.
type RendererBackend interface {
	// ConfigureSurface (re)configures the surface and the MSAA target for a new size.
	// Zero sizes are raised to 1.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if the surface reports no formats or a texture cannot be created
	ConfigureSurface(width, height int) error

	// SurfaceSize returns the size the surface was last configured with.
	SurfaceSize() (int, int)

	// SurfaceFormat returns the color format the surface was configured with.
	SurfaceFormat() wgpu.TextureFormat

	// RegisterRenderPipeline compiles the pipeline's shaders, builds its layout and attaches
	// the created GPU pipeline to p.
	//
	// Parameters:
	//   - p: the validated pipeline description
	//
	// Returns:
	//   - error: an error if any GPU object cannot be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitBindGroup creates the layout, any missing buffers and the bind group for a provider.
	//
	// Parameters:
	//   - provider: the provider to fill
	//   - descriptor: the layout parsed from the shader
	//   - bufferUsageOverrides: extra usage flags per binding
	//   - bufferSizeOverrides: buffer sizes per binding replacing MinBindingSize
	//
	// Returns:
	//   - error: an error if a GPU object cannot be created
	InitBindGroup(
		provider bind_group_provider.BindGroupProvider,
		descriptor wgpu.BindGroupLayoutDescriptor,
		bufferUsageOverrides map[int]wgpu.BufferUsage,
		bufferSizeOverrides map[int]uint64,
	) error

	// WriteBuffers queues buffer uploads. Writes to bindings without a buffer are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins a render pass that clears it.
	//
	// Returns:
	//   - error: ErrFrameInFlight if the previous frame was not presented, or the acquire error
	BeginFrame() error

	// Draw records a non-indexed draw into the current pass.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - vertexCount: the number of vertices to draw
	//   - bindGroups: providers bound at their own group index
	//
	// Returns:
	//   - error: ErrNoFrame outside BeginFrame/EndFrame
	Draw(p pipeline.Pipeline, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the pass and submits the recorded commands.
	//
	// Returns:
	//   - error: ErrNoFrame without a pass, or the encoder error
	EndFrame() error

	// Present shows the acquired texture. It is a no-op when no texture is held.
	Present()

	// Release frees every GPU object the backend owns.
	Release()
}
