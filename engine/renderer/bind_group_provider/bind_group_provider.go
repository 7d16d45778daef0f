package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
// It owns the GPU buffers of one bind group along with the group and its layout.
type bindGroupProvider struct {
	// label prefixes the debug labels of every GPU object created for this provider.
	label string

	// group is the @group index this provider is bound at.
	group int

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout

	// buffers maps binding indices to their GPU buffers.
	buffers map[int]*wgpu.Buffer
}

// BindGroupProvider holds the GPU resources behind one @group of a pipeline: the buffers at each
// binding, the bind group referencing them and the layout it was created with. The renderer
// fills it in InitBindGroup and reads it when drawing.
type BindGroupProvider interface {
	// Release frees the bind group, its layout and every buffer.
	Release()

	// Label returns the debug label.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Group returns the @group index this provider is bound at when drawing.
	//
	// Returns:
	//   - int: the group index
	Group() int

	// BindGroup returns the bind group, or nil before InitBindGroup.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created with.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if none was created
	Buffer(binding int) *wgpu.Buffer

	// SetBindGroup stores the bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the buffer at a binding.
	SetBuffer(binding int, buf *wgpu.Buffer)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. GPU resources are attached by the renderer.
//
// Parameters:
//   - label: debug label for the provider's GPU objects
//   - options: builder options
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}
}
