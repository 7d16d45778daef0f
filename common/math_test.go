package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float32
		want      float32
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"at lower edge", 0, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestIsFinite32(t *testing.T) {
	if !IsFinite32(1.5) {
		t.Error("1.5 should be finite")
	}
	if IsFinite32(float32(math.NaN())) {
		t.Error("NaN should not be finite")
	}
	if IsFinite32(float32(math.Inf(1))) || IsFinite32(float32(math.Inf(-1))) {
		t.Error("infinities should not be finite")
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0, 1, -1); got != 0 {
		t.Errorf("below edge0: got %v, want 0", got)
	}
	if got := SmoothStep(0, 1, 2); got != 1 {
		t.Errorf("above edge1: got %v, want 1", got)
	}
	if got := SmoothStep(0, 1, 0.5); got != 0.5 {
		t.Errorf("midpoint: got %v, want 0.5", got)
	}
	// Reversed edges produce a falling ramp, same as WGSL.
	if got := SmoothStep(1, 0, 0.25); got <= 0.5 {
		t.Errorf("reversed edges at 0.25: got %v, want > 0.5", got)
	}
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 8)
	PutFloat32s(buf, 1.0, -0.5)
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != 1.0 {
		t.Errorf("first value = %v, want 1.0", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])); got != -0.5 {
		t.Errorf("second value = %v, want -0.5", got)
	}
}

func TestCoalesceAndAtLeastOne(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want %q", got, "b")
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %d, want 0", got)
	}
	for in, want := range map[int]uint32{-4: 1, 0: 1, 1: 1, 640: 640} {
		if got := AtLeastOne(in); got != want {
			t.Errorf("AtLeastOne(%d) = %d, want %d", in, got, want)
		}
	}
}
