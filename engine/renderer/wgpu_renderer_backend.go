package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/paddleball/common"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	width, height        int
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	settings backendSettings

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend walks the WebGPU setup chain: instance, surface, adapter, device and
// queue. The surface is not configured yet; call ConfigureSurface next.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, settings backendSettings) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, ErrNoSurface
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
		settings: settings,
	}
	// In the browser the instance is nil when navigator.gpu is missing.
	if b.instance == nil {
		return nil, ErrNoInstance
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		b.Release()
		return nil, fmt.Errorf("create surface: no surface returned")
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: settings.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
		PowerPreference:      settings.powerPreference.toWGPU(),
	})
	if err != nil || a == nil {
		b.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "paddleball device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	logger.Logger().Debug("gpu device ready",
		"power_preference", settings.powerPreference,
		"fallback", settings.forceFallbackAdapter)

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.configureLocked(width, height)
}

func (b *wgpuRendererBackendImpl) configureLocked(width, height int) error {
	w, h := common.AtLeastOne(width), common.AtLeastOne(height)

	capabilities := b.surface.GetCapabilities(b.adapter)
	format, err := chooseSurfaceFormat(capabilities.Formats)
	if err != nil {
		return err
	}
	b.surfaceFormat = format
	presentMode := choosePresentMode(b.settings.presentMode, capabilities.PresentModes)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       w,
		Height:      h,
		PresentMode: presentMode,
		AlphaMode:   chooseAlphaMode(capabilities.AlphaModes),
	})
	b.width, b.height = int(w), int(h)

	b.releaseMSAALocked()
	count := uint32(b.settings.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The pass draws into the MSAA texture; the swapchain view is the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "paddleball msaa texture",
			Size: wgpu.Extent3D{
				Width:              w,
				Height:             h,
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		view, err := msaaTexture.CreateView(nil)
		if err != nil {
			msaaTexture.Release()
			return fmt.Errorf("create msaa view: %w", err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView = view
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		Label: "paddleball pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.settings.clearColor,
			},
		},
	}

	logger.Logger().Debug("surface configured",
		"width", w, "height", h,
		"format", format, "present_mode", presentMode,
		"msaa", count)

	return nil
}

func (b *wgpuRendererBackendImpl) releaseMSAALocked() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := p.Validate(); err != nil {
		return err
	}
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("compile %s: %w", vertexShader.Key(), err)
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("compile %s: %w", fragmentShader.Key(), err)
	}
	defer fs.Release()

	groups := pipelineLayoutGroups(mergeBindGroupLayouts(
		vertexShader.BindGroupLayoutDescriptors(),
		fragmentShader.BindGroupLayoutDescriptors(),
	))
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(groups))
	defer func() {
		for _, l := range bindGroupLayouts {
			if l != nil {
				l.Release()
			}
		}
	}()
	for g := range groups {
		layout, layoutErr := b.device.CreateBindGroupLayout(&groups[g])
		if layoutErr != nil {
			return fmt.Errorf("create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	var vertexLayouts []wgpu.VertexBufferLayout
	for _, layouts := range vertexShader.VertexLayouts() {
		vertexLayouts = append(vertexLayouts, layouts...)
	}

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " render pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.settings.sampleCount),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline %s: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(
	provider bind_group_provider.BindGroupProvider,
	descriptor wgpu.BindGroupLayoutDescriptor,
	bufferUsageOverrides map[int]wgpu.BufferUsage,
	bufferSizeOverrides map[int]uint64,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		layout, err = b.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return fmt.Errorf("create bind group layout %s: %w", provider.Label(), err)
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(descriptor.Entries))
	for _, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		var usage wgpu.BufferUsage
		switch entry.Buffer.Type {
		case wgpu.BufferBindingTypeUniform:
			usage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
		case wgpu.BufferBindingTypeStorage, wgpu.BufferBindingTypeReadOnlyStorage:
			usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
		default:
			return fmt.Errorf("binding %d of %s is not a buffer binding", binding, provider.Label())
		}
		if extra, ok := bufferUsageOverrides[binding]; ok {
			usage |= extra
		}

		buf := provider.Buffer(binding)
		if buf == nil {
			size := entry.Buffer.MinBindingSize
			if override, ok := bufferSizeOverrides[binding]; ok {
				size = override
			}
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: fmt.Sprintf("%s buffer %d", provider.Label(), binding),
				Size:  size,
				Usage: usage,
			})
			if err != nil {
				return fmt.Errorf("create buffer %d of %s: %w", binding, provider.Label(), err)
			}
			provider.SetBuffer(binding, buf)
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: entry.Binding,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " bind group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create bind group %s: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A held texture means the last frame was never presented; acquiring another one fails
	// with "surface image is already acquired" on native.
	if b.frameSurface != nil {
		return ErrFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		// Outdated or lost surfaces recover after one reconfigure.
		logger.Logger().Warn("surface texture unavailable, reconfiguring", "err", err)
		if cfgErr := b.configureLocked(b.width, b.height); cfgErr != nil {
			return fmt.Errorf("reconfigure surface: %w", cfgErr)
		}
		surfaceTexture, err = b.surface.GetCurrentTexture()
		if err != nil {
			return fmt.Errorf("acquire surface texture: %w", err)
		}
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("create surface view: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("create command encoder: %w", err)
	}

	if b.settings.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(
	p pipeline.Pipeline,
	vertexCount uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return ErrNoFrame
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	for _, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(bg.Group()), bg.BindGroup(), nil)
	}
	b.framePass.Draw(vertexCount, 1, 0, 0)

	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return ErrNoFrame
	}

	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameTextureLocked()
		return fmt.Errorf("finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()
	b.releaseFrameTextureLocked()
}

func (b *wgpuRendererBackendImpl) releaseFrameTextureLocked() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass != nil {
		b.framePass.End()
		b.framePass.Release()
		b.framePass = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	b.releaseFrameTextureLocked()
	b.releaseMSAALocked()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
