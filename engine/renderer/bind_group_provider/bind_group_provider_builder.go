package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the @group index the provider is bound at. Defaults to 0.
//
// Parameters:
//   - group: the group index
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index
func WithGroup(group int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}

// WithBuffer sets a pre-created buffer for a binding. InitBindGroup reuses it instead of
// allocating a new one.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}
