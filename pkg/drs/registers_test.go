package drs

import "testing"

func TestRegisterMaps(t *testing.T) {
	seen := map[byte]string{}
	for _, r := range AllRAMRegisters() {
		if r.Size != 1 && r.Size != 2 {
			t.Errorf("ram %s: size %d", r.Name, r.Size)
		}
		if prev, dup := seen[r.Addr]; dup {
			t.Errorf("ram %s: address %d already used by %s", r.Name, r.Addr, prev)
		}
		seen[r.Addr] = r.Name
		if got, ok := RAMRegisterAt(r.Addr); !ok || got.Name != r.Name {
			t.Errorf("RAMRegisterAt(%d) = %v, %v", r.Addr, got.Name, ok)
		}
	}

	seen = map[byte]string{}
	for _, r := range AllEEPRegisters() {
		if r.Size != 1 && r.Size != 2 {
			t.Errorf("eep %s: size %d", r.Name, r.Size)
		}
		if prev, dup := seen[r.Addr]; dup {
			t.Errorf("eep %s: address %d already used by %s", r.Name, r.Addr, prev)
		}
		seen[r.Addr] = r.Name
		if got, ok := EEPRegisterAt(r.Addr); !ok || got.Name != r.Name {
			t.Errorf("EEPRegisterAt(%d) = %v, %v", r.Addr, got.Name, ok)
		}
	}

	if _, ok := RAMRegisterAt(0xEE); ok {
		t.Error("RAMRegisterAt(0xEE) found a register in a gap")
	}
}

func TestWordRoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 512, 1023, 0x4140, 0xFFFF} {
		b := Word(v)
		if len(b) != 2 {
			t.Fatalf("Word(%d) has %d bytes", v, len(b))
		}
		if got := ToWord(b); got != v {
			t.Errorf("ToWord(Word(%d)) = %d", v, got)
		}
	}
	if got := ToWord([]byte{0x7F}); got != 0x7F {
		t.Errorf("ToWord single byte = %d, want 127", got)
	}
	if got := ToWord(nil); got != 0 {
		t.Errorf("ToWord(nil) = %d, want 0", got)
	}
}

func TestLEDControlBits(t *testing.T) {
	tests := []struct {
		color LEDColor
		want  byte
	}{
		{LEDOff, 0x00},
		{LEDGreen, 0x01},
		{LEDBlue, 0x02},
		{LEDRed, 0x04},
		{LEDGreen | LEDRed, 0x05},
	}
	for _, tt := range tests {
		if got := tt.color.ControlBits(); got != tt.want {
			t.Errorf("ControlBits(%#02x) = %#02x, want %#02x", byte(tt.color), got, tt.want)
		}
	}
}
