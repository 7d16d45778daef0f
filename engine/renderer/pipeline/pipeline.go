package pipeline

import (
	"errors"

	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingShader is returned by Validate when a render pipeline lacks a vertex or fragment shader.
var ErrMissingShader = errors.New("render pipeline needs both a vertex and a fragment shader")

// pipeline is the implementation of the Pipeline interface.
// It describes a render pipeline; the GPU object is attached by the renderer on registration.
type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the renderer registers the pipeline.
	renderPipeline *wgpu.RenderPipeline

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
}

// Pipeline describes a render pipeline: its shaders and fixed-function state.
type Pipeline interface {
	// PipelineKey returns the unique key the renderer caches this pipeline under.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Shader returns the shader bound to a stage.
	//
	// Parameters:
	//   - shaderType: the stage
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if the stage is unset
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// BlendEnabled reports whether BlendState is applied to the color target.
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order considered front-facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color channels written by the fragment stage.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the color target blend state.
	BlendState() *wgpu.BlendState

	// Validate checks that the pipeline can be registered.
	//
	// Returns:
	//   - error: ErrMissingShader if a stage is unset
	Validate() error

	// SetRenderPipeline attaches the created GPU pipeline.
	//
	// Parameters:
	//   - p: the render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline, if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. The defaults draw a triangle list
// without culling and blend the output over the target with straight alpha
// (src-alpha, one-minus-src-alpha).
//
// Parameters:
//   - pipelineKey: a unique key for caching and lookup
//   - opts: builder options
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		blendEnabled: true,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil || p.fragmentShader == nil {
		return ErrMissingShader
	}
	return nil
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
