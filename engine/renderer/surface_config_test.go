package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestChooseSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
	}{
		{
			name:    "prefers srgb",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			want:    wgpu.TextureFormatBGRA8UnormSrgb,
		},
		{
			name:    "first srgb wins",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb},
			want:    wgpu.TextureFormatRGBA8UnormSrgb,
		},
		{
			name:    "falls back to first",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm},
			want:    wgpu.TextureFormatBGRA8Unorm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chooseSurfaceFormat(tt.formats)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("chooseSurfaceFormat() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := chooseSurfaceFormat(nil); !errors.Is(err, errNoSurfaceFormat) {
		t.Errorf("chooseSurfaceFormat(nil) = %v, want errNoSurfaceFormat", err)
	}
}

func TestChoosePresentMode(t *testing.T) {
	all := []wgpu.PresentMode{wgpu.PresentModeMailbox, wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
	fifoOnly := []wgpu.PresentMode{wgpu.PresentModeFifo}

	tests := []struct {
		name      string
		mode      PresentMode
		available []wgpu.PresentMode
		want      wgpu.PresentMode
	}{
		{"auto takes first", PresentModeAuto, all, wgpu.PresentModeMailbox},
		{"vsync", PresentModeVSync, all, wgpu.PresentModeFifo},
		{"uncapped", PresentModeUncapped, all, wgpu.PresentModeImmediate},
		{"uncapped unsupported", PresentModeUncapped, fifoOnly, wgpu.PresentModeFifo},
		{"empty list", PresentModeUncapped, nil, wgpu.PresentModeFifo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := choosePresentMode(tt.mode, tt.available); got != tt.want {
				t.Errorf("choosePresentMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePresentModeAndPower(t *testing.T) {
	cases := map[string]PresentMode{
		"vsync":    PresentModeVSync,
		"VSync":    PresentModeVSync,
		"uncapped": PresentModeUncapped,
		"auto":     PresentModeAuto,
		"":         PresentModeAuto,
		"bogus":    PresentModeAuto,
	}
	for in, want := range cases {
		if got := ParsePresentMode(in); got != want {
			t.Errorf("ParsePresentMode(%q) = %v, want %v", in, got, want)
		}
	}
	if ParsePowerPreference("low") != PowerLow || ParsePowerPreference("high") != PowerHighPerformance {
		t.Error("ParsePowerPreference mismatch")
	}
	if PowerLow.toWGPU() != wgpu.PowerPreferenceLowPower {
		t.Error("PowerLow should map to low-power")
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	uniform := func(binding uint32, vis wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: vis,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 48},
		}
	}
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageVertex)}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{uniform(1, wgpu.ShaderStageFragment), uniform(0, wgpu.ShaderStageFragment)}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageFragment)}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	g0 := merged[0].Entries
	if len(g0) != 2 || g0[0].Binding != 0 || g0[1].Binding != 1 {
		t.Fatalf("group 0 entries = %+v", g0)
	}
	if g0[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("shared binding visibility = %v", g0[0].Visibility)
	}
	if g0[1].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("fragment-only binding visibility = %v", g0[1].Visibility)
	}

	groups := pipelineLayoutGroups(merged)
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	if len(groups[1].Entries) != 0 {
		t.Error("gap group should have no entries")
	}
}
