package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("scene uniforms", WithGroup(2))
	if p.Label() != "scene uniforms" {
		t.Errorf("Label() = %q", p.Label())
	}
	if p.Group() != 2 {
		t.Errorf("Group() = %d, want 2", p.Group())
	}
	if p.BindGroup() != nil || p.BindGroupLayout() != nil || p.Buffer(0) != nil {
		t.Error("new provider should hold no GPU objects")
	}
	// Releasing an empty provider is a no-op.
	p.Release()
}

func TestBufferWriteSize(t *testing.T) {
	w := BufferWrite{Binding: 0, Offset: 16, Data: make([]byte, 44)}
	if w.Size() != 44 {
		t.Errorf("Size() = %d, want 44", w.Size())
	}
	if (BufferWrite{}).Size() != 0 {
		t.Error("empty write should have size 0")
	}
}
