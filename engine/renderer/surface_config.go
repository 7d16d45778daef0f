package renderer

import (
	"errors"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// errNoSurfaceFormat is returned when the surface reports no usable color format.
var errNoSurfaceFormat = errors.New("surface reports no texture formats")

func isSRGBFormat(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// chooseSurfaceFormat returns the first sRGB format the surface supports, else its first format.
func chooseSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, errNoSurfaceFormat
	}
	for _, f := range formats {
		if isSRGBFormat(f) {
			return f, nil
		}
	}
	return formats[0], nil
}

// choosePresentMode resolves a PresentMode against what the surface supports. Auto and any
// unsupported request use the surface's first mode; an empty list means FIFO, which every
// WebGPU implementation must offer.
func choosePresentMode(mode PresentMode, available []wgpu.PresentMode) wgpu.PresentMode {
	if len(available) == 0 {
		return wgpu.PresentModeFifo
	}

	var want wgpu.PresentMode
	switch mode {
	case PresentModeVSync:
		want = wgpu.PresentModeFifo
	case PresentModeUncapped:
		want = wgpu.PresentModeImmediate
	default:
		return available[0]
	}
	for _, m := range available {
		if m == want {
			return m
		}
	}
	return available[0]
}

func chooseAlphaMode(available []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	if len(available) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	return available[0]
}

// mergeBindGroupLayouts combines the per-group layouts of the vertex and fragment stages. A
// binding present in both stages keeps one entry with the visibility of both. Entries are
// ordered by binding.
func mergeBindGroupLayouts(
	vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor,
) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(vertexLayouts)+len(fragmentLayouts))

	for g, vDesc := range vertexLayouts {
		merged[g] = vDesc
	}
	for g, fDesc := range fragmentLayouts {
		vDesc, ok := merged[g]
		if !ok {
			merged[g] = fDesc
			continue
		}

		entries := make(map[uint32]wgpu.BindGroupLayoutEntry, len(vDesc.Entries)+len(fDesc.Entries))
		for _, e := range vDesc.Entries {
			entries[e.Binding] = e
		}
		for _, e := range fDesc.Entries {
			if existing, ok := entries[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				entries[e.Binding] = existing
				continue
			}
			entries[e.Binding] = e
		}

		out := make([]wgpu.BindGroupLayoutEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, e)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Binding < out[j].Binding })

		merged[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   vDesc.Label,
			Entries: out,
		}
	}

	return merged
}

// pipelineLayoutGroups flattens merged layouts into a slice indexed by group. Gaps stay as zero
// descriptors with no entries.
func pipelineLayoutGroups(merged map[int]wgpu.BindGroupLayoutDescriptor) []wgpu.BindGroupLayoutDescriptor {
	maxGroup := -1
	for g := range merged {
		if g > maxGroup {
			maxGroup = g
		}
	}
	groups := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g, desc := range merged {
		groups[g] = desc
	}
	return groups
}
