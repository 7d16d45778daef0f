package bind_group_provider

// BufferWrite is one queued upload: Data is copied into the buffer at Binding of Provider,
// starting Offset bytes in. The renderer applies a batch of writes in order.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Size returns the number of bytes the write covers.
func (w BufferWrite) Size() uint64 {
	return uint64(len(w.Data))
}
