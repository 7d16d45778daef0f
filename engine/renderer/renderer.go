package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/Carmen-Shannon/paddleball/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapter is returned by NewRenderer when no GPU adapter is compatible with the surface.
	ErrNoAdapter = errors.New("no compatible GPU adapter")

	// ErrFrameInFlight is returned by BeginFrame while the previous frame is not yet presented.
	ErrFrameInFlight = errors.New("previous frame not yet presented")

	// ErrNoSurface is returned by NewRenderer when the window supplies no surface descriptor.
	ErrNoSurface = errors.New("window has no surface descriptor")

	// ErrNoInstance is returned by NewRenderer when WebGPU is unavailable on the platform.
	ErrNoInstance = errors.New("webgpu is not available")

	// ErrNoFrame is returned by Draw and EndFrame outside a BeginFrame/EndFrame pair.
	ErrNoFrame = errors.New("no frame in progress")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu            sync.RWMutex
	pipelineCache map[string]pipeline.Pipeline
	backend       RendererBackend

	settings backendSettings

	// pending holds pipelines added through WithPipeline until the backend exists.
	pending []pipeline.Pipeline
}

// Renderer owns the GPU device, the configured surface and a cache of render pipelines, and
// records one render pass per frame.
type Renderer interface {
	// Resize reconfigures the surface. Zero sizes are raised to 1.
	//
	// Parameters:
	//   - width: the new backing width in pixels
	//   - height: the new backing height in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be reconfigured
	Resize(width, height int) error

	// SurfaceSize returns the size the surface is configured with.
	//
	// Returns:
	//   - int: the width in pixels
	//   - int: the height in pixels
	SurfaceSize() (int, int)

	// SurfaceFormat returns the color format pipelines render into.
	SurfaceFormat() wgpu.TextureFormat

	// RegisterPipelines creates the GPU pipeline for each description and caches it by key.
	// Keys already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipeline descriptions
	//
	// Returns:
	//   - error: the first validation or creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Pipeline looks up a registered pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	//   - bool: whether it is registered
	Pipeline(key string) (pipeline.Pipeline, bool)

	// BindGroupLayout returns the layout of one group of a registered pipeline, merged across
	// the vertex and fragment stages exactly as the pipeline layout was built. Bind groups used
	// with the pipeline must be created from it.
	//
	// Parameters:
	//   - pipelineKey: the pipeline key
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged layout
	//   - error: an error if the pipeline is unknown or does not use the group
	BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error)

	// InitBindGroup creates the buffers and the bind group behind a provider from a layout
	// parsed out of a shader.
	//
	// Parameters:
	//   - provider: the provider to fill
	//   - descriptor: the bind group layout
	//   - bufferUsageOverrides: extra usage flags per binding, may be nil
	//   - bufferSizeOverrides: buffer sizes per binding, may be nil
	//
	// Returns:
	//   - error: an error if a GPU object cannot be created
	InitBindGroup(
		provider bind_group_provider.BindGroupProvider,
		descriptor wgpu.BindGroupLayoutDescriptor,
		bufferUsageOverrides map[int]wgpu.BufferUsage,
		bufferSizeOverrides map[int]uint64,
	) error

	// WriteBuffers queues uploads into provider buffers.
	//
	// Parameters:
	//   - writes: the uploads
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and starts a pass that clears it to the
	// configured colour.
	//
	// Returns:
	//   - error: ErrFrameInFlight, or the acquire error
	BeginFrame() error

	// Draw records a non-indexed draw of a registered pipeline.
	//
	// Parameters:
	//   - pipelineKey: the pipeline key
	//   - vertexCount: the number of vertices
	//   - bindGroups: providers bound at their group index
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or no frame is in progress
	Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the pass and submits it.
	//
	// Returns:
	//   - error: ErrNoFrame, or the submission error
	EndFrame() error

	// Present shows the frame.
	Present()

	// Release frees every registered pipeline and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer walks the GPU setup chain for the window's surface and configures the surface at
// the window's current size.
//
// Parameters:
//   - w: the window whose surface is rendered to
//   - options: builder options
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrNoSurface, ErrNoInstance, ErrNoAdapter or any other setup error, wrapped
func NewRenderer(w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.settings)
	if err != nil {
		return nil, fmt.Errorf("renderer setup: %w", err)
	}
	if err := r.attach(backend, w.Width(), w.Height()); err != nil {
		backend.Release()
		return nil, fmt.Errorf("renderer setup: %w", err)
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		pipelineCache: make(map[string]pipeline.Pipeline),
		settings: backendSettings{
			presentMode:     PresentModeAuto,
			sampleCount:     MSAAOff,
			powerPreference: PowerHighPerformance,
			clearColor:      wgpu.Color{R: 0.06, G: 0.07, B: 0.09, A: 1},
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach configures the surface on a fresh backend and registers pipelines queued by options.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	if err := backend.ConfigureSurface(width, height); err != nil {
		return err
	}
	pending := r.pending
	r.pending = nil
	return r.RegisterPipelines(pending...)
}

func (r *renderer) Resize(width, height int) error {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	return nil
}

func (r *renderer) SurfaceSize() (int, int) {
	return r.backend.SurfaceSize()
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	return r.backend.SurfaceFormat()
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if p == nil {
			continue
		}
		if _, exists := r.pipelineCache[p.PipelineKey()]; exists {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[p.PipelineKey()] = p
		logger.Logger().Debug("pipeline registered", "key", p.PipelineKey())
	}
	return nil
}

func (r *renderer) Pipeline(key string) (pipeline.Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipelineCache[key]
	return p, ok
}

func (r *renderer) BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error) {
	p, ok := r.Pipeline(pipelineKey)
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	merged := mergeBindGroupLayouts(
		p.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors(),
		p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptors(),
	)
	desc, ok := merged[group]
	if !ok || len(desc.Entries) == 0 {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("pipeline %q has no bindings in group %d", pipelineKey, group)
	}
	return desc, nil
}

func (r *renderer) InitBindGroup(
	provider bind_group_provider.BindGroupProvider,
	descriptor wgpu.BindGroupLayoutDescriptor,
	bufferUsageOverrides map[int]wgpu.BufferUsage,
	bufferSizeOverrides map[int]uint64,
) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	pending := writes[:0:0]
	for _, w := range writes {
		if w.Provider == nil || w.Size() == 0 {
			continue
		}
		pending = append(pending, w)
	}
	if len(pending) == 0 {
		return
	}
	r.backend.WriteBuffers(pending)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, ok := r.Pipeline(pipelineKey)
	if !ok {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	return r.backend.Draw(p, vertexCount, bindGroups)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	r.backend.Release()
}
