package paddleball

import (
	"fmt"

	"github.com/Carmen-Shannon/paddleball/config"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/renderer"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/Carmen-Shannon/paddleball/engine/window"
)

// fullscreenVertexCount is the vertex count of the single viewport-covering triangle.
const fullscreenVertexCount = 3

// renderState is the implementation of the RenderState interface.
type renderState struct {
	renderer renderer.Renderer
	window   window.Window

	scene  config.SceneConfig
	colors Colors

	uniforms      SceneUniforms
	uniformBuffer bind_group_provider.BindGroupProvider
	binding       int

	// width and height are the size the surface was last configured for.
	width, height int
}

// RenderState is the scaffold scene: one pipeline, one uniform buffer and a paddle and ball
// drawn from it each frame.
type RenderState interface {
	// ResizeIfNeeded reconfigures the surface when the host raised the resize flag or the
	// window's drawable size differs from the configured one, and updates the aspect.
	//
	// Returns:
	//   - bool: whether the surface was reconfigured
	//   - error: a reconfiguration error
	ResizeIfNeeded() (bool, error)

	// Update pins the ball at its configured position and uploads the uniforms.
	//
	// Returns:
	//   - error: ErrInvalidUniforms if the record breaks its invariants
	Update() error

	// Render draws one frame and presents it.
	//
	// Returns:
	//   - error: a frame acquisition or submission error
	Render() error

	// Frame runs ResizeIfNeeded, Update and Render in order. It matches the engine's
	// per-frame callback.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame, unused by the static scene
	//
	// Returns:
	//   - error: the first step's error
	Frame(deltaTime float32) error

	// Uniforms returns the last record uploaded.
	Uniforms() SceneUniforms

	// Release frees the uniform buffer and bind group.
	Release()
}

var _ RenderState = &renderState{}

// RenderStateOption configures a RenderState during NewRenderState.
type RenderStateOption func(*renderState)

// WithScene sets the paddle and ball placement.
func WithScene(scene config.SceneConfig) RenderStateOption {
	return func(s *renderState) {
		s.scene = scene
	}
}

// WithColors sets the palette compiled into the shader.
func WithColors(colors Colors) RenderStateOption {
	return func(s *renderState) {
		s.colors = colors
	}
}

// DefaultScene returns the scaffold scene placement as a config section.
func DefaultScene() config.SceneConfig {
	return config.SceneConfig{
		Paddle: config.PaddleConfig{X: DefaultPaddleX, Y: DefaultPaddleY, W: DefaultPaddleW, H: DefaultPaddleH},
		Ball:   config.BallConfig{X: DefaultBallX, Y: DefaultBallY, R: DefaultBallR},
	}
}

// NewRenderState builds the scene pipeline on r, creates the uniform buffer and uploads the
// initial record with the aspect of w.
//
// Parameters:
//   - r: a renderer whose surface belongs to w
//   - w: the window the scene is drawn in
//   - options: scene and palette options
//
// Returns:
//   - RenderState: the scene
//   - error: a shader, pipeline or buffer setup error
func NewRenderState(r renderer.Renderer, w window.Window, options ...RenderStateOption) (RenderState, error) {
	s := &renderState{
		renderer: r,
		window:   w,
		scene:    DefaultScene(),
		colors:   DefaultColors,
	}
	for _, opt := range options {
		opt(s)
	}

	vs, fs, err := NewShaders(s.colors)
	if err != nil {
		return nil, fmt.Errorf("scene shaders: %w", err)
	}
	if err := r.RegisterPipelines(pipeline.NewPipeline(PipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)); err != nil {
		return nil, fmt.Errorf("scene pipeline: %w", err)
	}

	group, binding, err := uniformsBinding(fs)
	if err != nil {
		return nil, err
	}
	layout, err := r.BindGroupLayout(PipelineKey, group)
	if err != nil {
		return nil, fmt.Errorf("scene uniforms layout: %w", err)
	}

	s.binding = binding
	s.uniformBuffer = bind_group_provider.NewBindGroupProvider("scene uniforms", bind_group_provider.WithGroup(group))
	if err := r.InitBindGroup(s.uniformBuffer, layout, nil, nil); err != nil {
		s.uniformBuffer.Release()
		return nil, fmt.Errorf("scene uniforms: %w", err)
	}

	s.width, s.height = r.SurfaceSize()
	s.uniforms = UniformsFromConfig(s.scene, AspectRatio(s.width, s.height))
	if err := s.upload(); err != nil {
		s.uniformBuffer.Release()
		return nil, err
	}

	logger.Logger().Debug("scene ready",
		"group", group, "binding", binding,
		"width", s.width, "height", s.height)

	return s, nil
}

// uniformsBinding finds where the shader declares the scene uniforms.
func uniformsBinding(s shader.Shader) (int, int, error) {
	for _, d := range s.Declarations() {
		if d.Type == shader.AnnotationTypeBindingGroup && d.Args[2] == sceneUniformsInclude {
			return *d.Group, *d.Binding, nil
		}
	}
	return 0, 0, fmt.Errorf("shader %s declares no %s binding", s.Key(), sceneUniformsInclude)
}

func (s *renderState) ResizeIfNeeded() (bool, error) {
	w, h := max(s.window.Width(), 1), max(s.window.Height(), 1)
	pending := s.window.Display().TakeNeedsResize()
	if !pending && w == s.width && h == s.height {
		return false, nil
	}

	if err := s.renderer.Resize(w, h); err != nil {
		return false, err
	}
	s.width, s.height = w, h
	s.uniforms.Aspect = AspectRatio(w, h)
	logger.Logger().Debug("surface resized", "width", w, "height", h, "aspect", s.uniforms.Aspect)
	return true, nil
}

func (s *renderState) Update() error {
	// Static scene: later phases replace this with the simulation step.
	s.uniforms.BallX = s.scene.Ball.X
	s.uniforms.BallY = s.scene.Ball.Y
	return s.upload()
}

func (s *renderState) upload() error {
	if err := s.uniforms.Validate(); err != nil {
		return err
	}
	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: s.uniformBuffer,
		Binding:  s.binding,
		Data:     s.uniforms.Marshal(),
	}})
	return nil
}

func (s *renderState) Render() error {
	if err := s.renderer.BeginFrame(); err != nil {
		return err
	}
	drawErr := s.renderer.Draw(PipelineKey, fullscreenVertexCount,
		[]bind_group_provider.BindGroupProvider{s.uniformBuffer})
	if err := s.renderer.EndFrame(); err != nil {
		return err
	}
	s.renderer.Present()
	return drawErr
}

func (s *renderState) Frame(float32) error {
	if _, err := s.ResizeIfNeeded(); err != nil {
		return err
	}
	if err := s.Update(); err != nil {
		return err
	}
	return s.Render()
}

func (s *renderState) Uniforms() SceneUniforms {
	return s.uniforms
}

func (s *renderState) Release() {
	if s.uniformBuffer != nil {
		s.uniformBuffer.Release()
		s.uniformBuffer = nil
	}
}
