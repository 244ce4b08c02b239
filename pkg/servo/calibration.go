package servo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Calibration maps a servo's usable position range onto a normalized
// scale. The DRS position space is 0-1023 but mechanical stops usually
// leave a narrower window per joint.
type Calibration struct {
	ID       byte `json:"id"`
	RangeMin int  `json:"range_min"`
	RangeMax int  `json:"range_max"`
	Inverted bool `json:"inverted,omitempty"`
}

// CalibrationSet holds calibration for every servo, keyed by joint
// name.
type CalibrationSet map[string]Calibration

// LoadCalibration loads a calibration set from a JSON file.
func LoadCalibration(path string) (CalibrationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}
	var set CalibrationSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse calibration JSON: %w", err)
	}
	return set, nil
}

// Normalize converts a raw servo position to a value in [-100, 100].
func (c Calibration) Normalize(raw uint16) float64 {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	if rangeSize == 0 {
		return 0
	}
	norm := (float64(int(raw)-c.RangeMin)/rangeSize)*200 - 100
	if c.Inverted {
		norm = -norm
	}
	return norm
}

// Denormalize converts a normalized value [-100, 100] back to a raw
// position, clamped to the calibrated range.
func (c Calibration) Denormalize(norm float64) uint16 {
	if c.Inverted {
		norm = -norm
	}
	rangeSize := float64(c.RangeMax - c.RangeMin)
	raw := int((norm+100)/200*rangeSize) + c.RangeMin
	if raw < c.RangeMin {
		raw = c.RangeMin
	}
	if raw > c.RangeMax {
		raw = c.RangeMax
	}
	return uint16(raw)
}

// ByID returns the joint name and calibration for a servo ID.
func (s CalibrationSet) ByID(id byte) (string, Calibration, bool) {
	for name, c := range s {
		if c.ID == id {
			return name, c, true
		}
	}
	return "", Calibration{}, false
}

// IDs returns all calibrated servo IDs in ascending order.
func (s CalibrationSet) IDs() []byte {
	ids := make([]byte, 0, len(s))
	for _, c := range s {
		ids = append(ids, c.ID)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
