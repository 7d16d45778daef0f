package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/paddleball/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/paddleball/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const testSource = "@vertex fn vs_main() -> @builtin(position) vec4f { return vec4f(0.0); }\n" +
	"@fragment fn fs_main() -> @location(0) vec4f { return vec4f(1.0); }\n"

// fakeBackend records calls and mimics the frame state machine of the wgpu backend.
type fakeBackend struct {
	width, height int
	registered    []string
	draws         []uint32
	writes        int
	inFrame       bool
	held          bool
	released      bool
	registerErr   error
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.width, f.height = max(width, 1), max(height, 1)
	return nil
}

func (f *fakeBackend) SurfaceSize() (int, int)           { return f.width, f.height }
func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat { return wgpu.TextureFormatBGRA8UnormSrgb }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]wgpu.BufferUsage, map[int]uint64) error {
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) { f.writes += len(writes) }

func (f *fakeBackend) BeginFrame() error {
	if f.held {
		return ErrFrameInFlight
	}
	f.inFrame, f.held = true, true
	return nil
}

func (f *fakeBackend) Draw(_ pipeline.Pipeline, vertexCount uint32, _ []bind_group_provider.BindGroupProvider) error {
	if !f.inFrame {
		return ErrNoFrame
	}
	f.draws = append(f.draws, vertexCount)
	return nil
}

func (f *fakeBackend) EndFrame() error {
	if !f.inFrame {
		return ErrNoFrame
	}
	f.inFrame = false
	return nil
}

func (f *fakeBackend) Present() { f.held = false }
func (f *fakeBackend) Release() { f.released = true }

func newTestPipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, testSource)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, testSource)
	if err != nil {
		t.Fatal(err)
	}
	return pipeline.NewPipeline(key, pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))
}

func newTestRenderer(t *testing.T, backend *fakeBackend, opts ...RendererBuilderOption) *renderer {
	t.Helper()
	r := newRenderer(opts...)
	if err := r.attach(backend, 0, 0); err != nil {
		t.Fatalf("attach: %v", err)
	}
	return r
}

func TestRendererDefaults(t *testing.T) {
	r := newRenderer()
	if r.settings.presentMode != PresentModeAuto {
		t.Errorf("present mode = %v, want auto", r.settings.presentMode)
	}
	if r.settings.sampleCount != MSAAOff {
		t.Errorf("sample count = %d, want 1", r.settings.sampleCount)
	}
	if r.settings.powerPreference != PowerHighPerformance {
		t.Error("default power preference should be high performance")
	}
	want := wgpu.Color{R: 0.06, G: 0.07, B: 0.09, A: 1}
	if r.settings.clearColor != want {
		t.Errorf("clear color = %+v, want %+v", r.settings.clearColor, want)
	}
}

func TestRendererOptions(t *testing.T) {
	r := newRenderer(
		WithPresentMode(PresentModeVSync),
		WithMSAA(MSAA4x),
		WithForceFallbackAdapter(true),
		WithPowerPreference(PowerLow),
		WithClearColor([4]float64{1, 0, 0, 1}),
	)
	if r.settings.presentMode != PresentModeVSync || r.settings.sampleCount != MSAA4x {
		t.Errorf("settings = %+v", r.settings)
	}
	if !r.settings.forceFallbackAdapter || r.settings.powerPreference != PowerLow {
		t.Errorf("settings = %+v", r.settings)
	}
	if r.settings.clearColor.R != 1 || r.settings.clearColor.G != 0 {
		t.Errorf("clear color = %+v", r.settings.clearColor)
	}

	if got := newRenderer(WithMSAA(8)).settings.sampleCount; got != MSAAOff {
		t.Errorf("WithMSAA(8) = %d, want MSAAOff", got)
	}
}

func TestAttachConfiguresAtLeastOnePixel(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	if w, h := r.SurfaceSize(); w != 1 || h != 1 {
		t.Errorf("SurfaceSize() = %dx%d, want 1x1", w, h)
	}
	if err := r.Resize(640, 360); err != nil {
		t.Fatal(err)
	}
	if w, h := r.SurfaceSize(); w != 640 || h != 360 {
		t.Errorf("SurfaceSize() = %dx%d, want 640x360", w, h)
	}
}

func TestRegisterPipelines(t *testing.T) {
	backend := &fakeBackend{}
	queued := newTestPipeline(t, "queued")
	r := newTestRenderer(t, backend, WithPipeline(queued))

	if _, ok := r.Pipeline("queued"); !ok {
		t.Fatal("pipeline from WithPipeline not registered on attach")
	}

	if err := r.RegisterPipelines(newTestPipeline(t, "scene"), newTestPipeline(t, "queued"), nil); err != nil {
		t.Fatal(err)
	}
	if len(backend.registered) != 2 {
		t.Errorf("backend saw %v, want queued and scene once each", backend.registered)
	}

	half := pipeline.NewPipeline("half")
	if err := r.RegisterPipelines(half); !errors.Is(err, pipeline.ErrMissingShader) {
		t.Errorf("RegisterPipelines(invalid) = %v, want ErrMissingShader", err)
	}
	if _, ok := r.Pipeline("half"); ok {
		t.Error("invalid pipeline should not be cached")
	}
}

func TestRegisterPipelinesBackendError(t *testing.T) {
	boom := errors.New("boom")
	r := newTestRenderer(t, &fakeBackend{})
	r.backend.(*fakeBackend).registerErr = boom

	if err := r.RegisterPipelines(newTestPipeline(t, "scene")); !errors.Is(err, boom) {
		t.Errorf("RegisterPipelines() = %v, want boom", err)
	}
	if _, ok := r.Pipeline("scene"); ok {
		t.Error("failed pipeline should not be cached")
	}
}

func TestFrameSequence(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend, WithPipeline(newTestPipeline(t, "scene")))

	if err := r.Draw("scene", 3, nil); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Draw() outside frame = %v, want ErrNoFrame", err)
	}

	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := r.Draw("missing", 3, nil); err == nil {
		t.Error("Draw() with unknown pipeline should fail")
	}
	if err := r.Draw("scene", 3, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if err := r.BeginFrame(); !errors.Is(err, ErrFrameInFlight) {
		t.Errorf("BeginFrame() before Present = %v, want ErrFrameInFlight", err)
	}
	r.Present()
	if err := r.BeginFrame(); err != nil {
		t.Errorf("BeginFrame() after Present = %v", err)
	}

	if len(backend.draws) != 1 || backend.draws[0] != 3 {
		t.Errorf("draws = %v, want [3]", backend.draws)
	}
}

func TestWriteBuffersSkipsEmpty(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	r.WriteBuffers(nil)
	provider := bind_group_provider.NewBindGroupProvider("scene")
	r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: provider, Binding: 0, Data: []byte{1, 2, 3, 4}},
		{Provider: provider, Binding: 0},
		{Binding: 0, Data: []byte{1}},
	})
	if backend.writes != 1 {
		t.Errorf("writes = %d, want 1", backend.writes)
	}
}

func TestRelease(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend, WithPipeline(newTestPipeline(t, "scene")))
	r.Release()
	if !backend.released {
		t.Error("backend not released")
	}
	if _, ok := r.Pipeline("scene"); ok {
		t.Error("pipeline cache not cleared")
	}
}

func TestBindGroupLayoutMergesStages(t *testing.T) {
	src := "struct Params { scale: f32, offset: f32 }\n" +
		"@group(0) @binding(0) var<uniform> params: Params;\n" + testSource

	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, src)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, src)
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRenderer(t, &fakeBackend{},
		WithPipeline(pipeline.NewPipeline("scene", pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))))

	desc, err := r.BindGroupLayout("scene", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Entries) != 1 {
		t.Fatalf("entries = %+v, want one", desc.Entries)
	}
	e := desc.Entries[0]
	if e.Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("visibility = %v, want vertex|fragment", e.Visibility)
	}
	if e.Buffer.MinBindingSize != 8 {
		t.Errorf("MinBindingSize = %d, want 8", e.Buffer.MinBindingSize)
	}

	if _, err := r.BindGroupLayout("scene", 1); err == nil {
		t.Error("BindGroupLayout() for an unused group should fail")
	}
	if _, err := r.BindGroupLayout("missing", 0); err == nil {
		t.Error("BindGroupLayout() for an unknown pipeline should fail")
	}
}
