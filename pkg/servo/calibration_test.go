package servo

import (
	"math"
	"testing"
)

func TestCalibration_Normalize(t *testing.T) {
	cal := Calibration{
		RangeMin: 100,
		RangeMax: 900,
	}

	tests := []struct {
		raw      uint16
		expected float64
	}{
		{100, -100.0}, // min -> -100
		{900, 100.0},  // max -> 100
		{500, 0.0},    // mid -> 0
		{300, -50.0},  // quarter -> -50
		{700, 50.0},   // three-quarter -> 50
	}

	for _, tt := range tests {
		got := cal.Normalize(tt.raw)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("Normalize(%d) = %f, want %f", tt.raw, got, tt.expected)
		}
	}
}

func TestCalibration_Denormalize(t *testing.T) {
	cal := Calibration{
		RangeMin: 100,
		RangeMax: 900,
	}

	tests := []struct {
		norm     float64
		expected uint16
	}{
		{-100.0, 100}, // -100 -> min
		{100.0, 900},  // 100 -> max
		{0.0, 500},    // 0 -> mid
		{-50.0, 300},  // -50 -> quarter
		{50.0, 700},   // 50 -> three-quarter
		{-150.0, 100}, // clamped to min
		{150.0, 900},  // clamped to max
	}

	for _, tt := range tests {
		got := cal.Denormalize(tt.norm)
		if got != tt.expected {
			t.Errorf("Denormalize(%f) = %d, want %d", tt.norm, got, tt.expected)
		}
	}
}

func TestCalibration_RoundTrip(t *testing.T) {
	cal := Calibration{
		RangeMin: 87,
		RangeMax: 941,
	}

	for raw := cal.RangeMin; raw <= cal.RangeMax; raw += 10 {
		norm := cal.Normalize(uint16(raw))
		back := cal.Denormalize(norm)
		if math.Abs(float64(int(back)-raw)) > 1 {
			t.Errorf("round-trip failed: %d -> %f -> %d", raw, norm, back)
		}
	}
}

func TestCalibration_Inverted(t *testing.T) {
	cal := Calibration{
		RangeMin: 0,
		RangeMax: 1023,
		Inverted: true,
	}

	if got := cal.Normalize(0); math.Abs(got-100) > 0.001 {
		t.Errorf("inverted Normalize(0) = %f, want 100", got)
	}
	if got := cal.Denormalize(100); got != 0 {
		t.Errorf("inverted Denormalize(100) = %d, want 0", got)
	}
}

func TestCalibrationSet_ByID(t *testing.T) {
	set := CalibrationSet{
		"pan":  Calibration{ID: 1, RangeMin: 100, RangeMax: 200},
		"tilt": Calibration{ID: 6, RangeMin: 300, RangeMax: 400},
	}

	name, cal, ok := set.ByID(1)
	if !ok {
		t.Fatal("ByID(1) returned false")
	}
	if name != "pan" {
		t.Errorf("ByID(1) returned name %s, want pan", name)
	}
	if cal.RangeMin != 100 {
		t.Errorf("ByID(1) returned wrong calibration: %+v", cal)
	}

	if _, _, ok := set.ByID(99); ok {
		t.Error("ByID(99) should return false")
	}
}

func TestCalibrationSet_IDs(t *testing.T) {
	set := CalibrationSet{
		"c": Calibration{ID: 9},
		"a": Calibration{ID: 2},
		"b": Calibration{ID: 5},
	}

	ids := set.IDs()
	want := []byte{2, 5, 9}
	if len(ids) != len(want) {
		t.Fatalf("IDs returned %d entries, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
