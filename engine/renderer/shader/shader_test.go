package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testUniforms = `struct SceneUniforms {
    paddle: vec4f,
    ball_x: f32,
    ball_y: f32,
    ball_r: f32,
    aspect: f32,
}`

const testSource = `//@pb:include scene_uniforms
//@pb:group 0 0 uniform scene scene_uniforms

struct VsOut {
    @builtin(position) pos: vec4f,
    @location(0) uv: vec2f,
}

// @vertex fn commented_out() {}

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> VsOut {
    var out: VsOut;
    return out;
}

@fragment
fn fs_main(in: VsOut) -> @location(0) vec4f {
    return vec4f(scene.aspect);
}
`

func newTestShader(t *testing.T, st ShaderType, opts ...ShaderBuilderOption) Shader {
	t.Helper()
	opts = append([]ShaderBuilderOption{WithInclude("scene_uniforms", testUniforms, "SceneUniforms")}, opts...)
	s, err := NewShader("test", st, testSource, opts...)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	return s
}

func TestNewShaderEntryPoints(t *testing.T) {
	if ep := newTestShader(t, ShaderTypeVertex).EntryPoint(); ep != "vs_main" {
		t.Errorf("vertex entry point = %q, want vs_main", ep)
	}
	if ep := newTestShader(t, ShaderTypeFragment).EntryPoint(); ep != "fs_main" {
		t.Errorf("fragment entry point = %q, want fs_main", ep)
	}
}

func TestNewShaderExpandsAnnotations(t *testing.T) {
	s := newTestShader(t, ShaderTypeFragment)
	src := s.Source()
	if strings.Contains(src, "@pb:") {
		t.Errorf("annotations left in processed source:\n%s", src)
	}
	if !strings.Contains(src, "struct SceneUniforms") {
		t.Error("include was not injected")
	}
	if !strings.Contains(src, "@group(0) @binding(0) var<uniform> scene: SceneUniforms;") {
		t.Errorf("group declaration not generated:\n%s", src)
	}
	if s.Module() == nil || s.Module().WGSLDescriptor.Code != src {
		t.Error("module descriptor does not carry the processed source")
	}

	decls := s.Declarations()
	if len(decls) != 1 || *decls[0].Group != 0 || *decls[0].Binding != 0 || decls[0].Args[1] != "scene" {
		t.Errorf("unexpected declarations %+v", decls)
	}
}

func TestBindGroupLayoutFromUniform(t *testing.T) {
	s := newTestShader(t, ShaderTypeFragment)
	desc := s.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(desc.Entries))
	}
	e := desc.Entries[0]
	if e.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("buffer type = %v, want uniform", e.Buffer.Type)
	}
	if e.Visibility != wgpu.ShaderStageFragment {
		t.Errorf("visibility = %v, want fragment", e.Visibility)
	}
	// vec4f (16) + 4 x f32 (16) = 32 bytes, 16-byte aligned.
	if e.Buffer.MinBindingSize != 32 {
		t.Errorf("MinBindingSize = %d, want 32", e.Buffer.MinBindingSize)
	}
	if name := s.BindGroupVarName(0, 0); name != "scene" {
		t.Errorf("BindGroupVarName = %q, want scene", name)
	}
	if b, ok := s.BindGroupFromVarName(0, "scene"); !ok || b != 0 {
		t.Errorf("BindGroupFromVarName = %d, %v", b, ok)
	}
	if _, ok := s.BindGroupFromVarName(0, "missing"); ok {
		t.Error("BindGroupFromVarName found a missing variable")
	}
}

func TestNoVertexLayoutsForGeneratedVertices(t *testing.T) {
	if n := len(newTestShader(t, ShaderTypeVertex).VertexLayouts()); n != 0 {
		t.Errorf("VertexLayouts() has %d entries, want 0", n)
	}
}

func TestNewShaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		st      ShaderType
		opts    []ShaderBuilderOption
		wantErr error
	}{
		{"no fragment stage", "@vertex fn vs() {}", ShaderTypeFragment, nil, ErrNoEntryPoint},
		{"entry point only in comment", "// @vertex fn vs() {}", ShaderTypeVertex, nil, ErrNoEntryPoint},
		{"missing named entry", "@vertex fn vs() {}", ShaderTypeVertex, []ShaderBuilderOption{WithEntryPoint("other")}, ErrNoEntryPoint},
		{"unknown include", "//@pb:include nope\n@vertex fn vs() {}", ShaderTypeVertex, nil, nil},
		{"malformed group", "//@pb:group x 0 uniform a b\n@vertex fn vs() {}", ShaderTypeVertex, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader("bad", tt.st, tt.src, tt.opts...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithEntryPointSelectsAmongMany(t *testing.T) {
	src := "@fragment fn first() {}\n@fragment fn second() {}"
	s, err := NewShader("multi", ShaderTypeFragment, src, WithEntryPoint("second"))
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.EntryPoint() != "second" {
		t.Errorf("EntryPoint() = %q, want second", s.EntryPoint())
	}
}
