package pipeline

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const src = "@vertex fn vs_main() -> @builtin(position) vec4f { return vec4f(0.0); }\n" +
	"@fragment fn fs_main() -> @location(0) vec4f { return vec4f(1.0); }\n"

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("scene")
	if p.PipelineKey() != "scene" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if !p.BlendEnabled() {
		t.Error("blending should be enabled by default")
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.CullMode() != wgpu.CullModeNone {
		t.Errorf("topology/cull = %v/%v", p.Topology(), p.CullMode())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask() = %v", p.WriteMask())
	}
	bs := p.BlendState()
	if bs.Color.SrcFactor != wgpu.BlendFactorSrcAlpha || bs.Color.DstFactor != wgpu.BlendFactorOneMinusSrcAlpha {
		t.Errorf("color blend = %+v, want src-alpha / one-minus-src-alpha", bs.Color)
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() should be nil before registration")
	}
}

func TestValidate(t *testing.T) {
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, src)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, src)
	if err != nil {
		t.Fatal(err)
	}

	if err := NewPipeline("half", WithVertexShader(vs)).Validate(); !errors.Is(err, ErrMissingShader) {
		t.Errorf("Validate() = %v, want ErrMissingShader", err)
	}
	p := NewPipeline("full", WithVertexShader(vs), WithFragmentShader(fs), WithBlendEnabled(false))
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if p.Shader(shader.ShaderTypeFragment) != fs || p.Shader(shader.ShaderTypeVertex) != vs {
		t.Error("Shader() returned the wrong stage")
	}
	if p.BlendEnabled() {
		t.Error("WithBlendEnabled(false) ignored")
	}
	p.Release()
}
