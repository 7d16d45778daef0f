package shader

// ShaderBuilderOption is a functional option for configuring a shader before its source is parsed.
type ShaderBuilderOption func(s *shader)

// WithInclude registers a named include that the source can pull in with //@pb:include.
//
// Parameters:
//   - name: the include name
//   - source: the WGSL text to inject
//   - wgslType: the struct name declared by source, used by //@pb:group; may be empty
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithInclude(name, source, wgslType string) ShaderBuilderOption {
	return func(s *shader) {
		s.pp.Register(name, Include{Source: source, Type: wgslType})
	}
}

// WithEntryPoint selects the entry point by name when the source declares more than one
// function for the shader's stage. By default the first one is used.
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}
