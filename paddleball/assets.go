package paddleball

import (
	_ "embed"

	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
)

var (
	//go:embed assets/paddleball.wgsl
	shaderSource string

	//go:embed assets/scene_uniforms.wgsl
	sceneUniformsSource string
)

const (
	// PipelineKey is the key the scene pipeline is registered under.
	PipelineKey = "paddleball"

	sceneUniformsInclude = "scene_uniforms"
	sceneUniformsType    = "SceneUniforms"
	paletteInclude       = "palette"
)

// NewShaders parses the scene shader for both stages with the palette baked in.
//
// Parameters:
//   - colors: the palette compiled into the fragment stage
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
//   - error: a pre-processing or parse error
func NewShaders(colors Colors) (shader.Shader, shader.Shader, error) {
	opts := []shader.ShaderBuilderOption{
		shader.WithInclude(sceneUniformsInclude, sceneUniformsSource, sceneUniformsType),
		shader.WithInclude(paletteInclude, colors.WGSL(), ""),
	}
	vs, err := shader.NewShader("paddleball_vs", shader.ShaderTypeVertex, shaderSource, opts...)
	if err != nil {
		return nil, nil, err
	}
	fs, err := shader.NewShader("paddleball_fs", shader.ShaderTypeFragment, shaderSource, opts...)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}
