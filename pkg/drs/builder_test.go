package drs

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuilder_GoldenFrames(t *testing.T) {
	tests := []struct {
		name string
		msg  func() ([]byte, error)
		want []byte
	}{
		{
			name: "reboot",
			msg:  New(0xFD).Reboot().Build,
			want: []byte{0xFF, 0xFF, 0x07, 0xFD, 0x09, 0xF2, 0x0C},
		},
		{
			name: "stat",
			msg:  New(0xFD).Stat().Build,
			want: []byte{0xFF, 0xFF, 0x07, 0xFD, 0x07, 0xFC, 0x02},
		},
		{
			name: "rollback skip id and baud",
			msg:  New(0xFD).Rollback(true, true).Build,
			want: []byte{0xFF, 0xFF, 0x09, 0xFD, 0x08, 0xFC, 0x02, 0x01, 0x01},
		},
		{
			name: "ram read led control",
			msg:  New(0xFD).ReadRAM(RAMLEDControl).Build,
			want: []byte{0xFF, 0xFF, 0x09, 0xFD, 0x04, 0xC4, 0x3A, 0x35, 0x01},
		},
		{
			name: "ram write led control",
			msg:  New(0xFD).WriteRAM(RAMLEDControl, 0x01).Build,
			want: []byte{0xFF, 0xFF, 0x0A, 0xFD, 0x03, 0xC0, 0x3E, 0x35, 0x01, 0x01},
		},
		{
			name: "ram write torque control",
			msg:  New(0xFD).WriteRAM(RAMTorqueControl, TorqueOn).Build,
			want: []byte{0xFF, 0xFF, 0x0A, 0xFD, 0x03, 0xA0, 0x5E, 0x34, 0x01, 0x60},
		},
		{
			name: "eep read position kp spanning kd",
			msg:  New(0xFD).ReadEEP(EEPPositionKp).Length(4).Build,
			want: []byte{0xFF, 0xFF, 0x09, 0xFD, 0x02, 0xEC, 0x12, 0x1E, 0x04},
		},
		{
			name: "sjog to position",
			msg: New(0xFD).SJog(60, JogEntry{
				ID: 0xFD, Mode: JogPosition, Color: LEDGreen, Target: 512,
			}).Build,
			want: []byte{0xFF, 0xFF, 0x0C, 0xFD, 0x06, 0x30, 0xCE, 0x3C, 0x00, 0x02, 0x04, 0xFD},
		},
		{
			name: "sjog continuous",
			msg: New(0xFD).SJog(60, JogEntry{
				ID: 0xFD, Mode: JogContinuous, Color: LEDBlue,
				Target: SpeedTarget(320, Clockwise),
			}).Build,
			want: []byte{0xFF, 0xFF, 0x0C, 0xFD, 0x06, 0x7C, 0x82, 0x3C, 0x40, 0x01, 0x0A, 0xFD},
		},
		{
			name: "ijog to position",
			msg: New(0xFD).IJog(JogEntry{
				ID: 0xFD, Mode: JogPosition, Color: LEDGreen, Target: 512, Playtime: 60,
			}).Build,
			want: []byte{0xFF, 0xFF, 0x0C, 0xFD, 0x05, 0x32, 0xCC, 0x00, 0x02, 0x04, 0xFD, 0x3C},
		},
		{
			name: "ijog continuous",
			msg: New(0xFD).IJog(JogEntry{
				ID: 0xFD, Mode: JogContinuous, Color: LEDBlue,
				Target: SpeedTarget(320, Clockwise), Playtime: 60,
			}).Build,
			want: []byte{0xFF, 0xFF, 0x0C, 0xFD, 0x05, 0x7E, 0x80, 0x40, 0x01, 0x0A, 0xFD, 0x3C},
		},
		{
			name: "ack policy",
			msg:  New(0x35).AckPolicy(AckAll).Build,
			want: []byte{0xFF, 0xFF, 0x0A, 0x35, 0x03, 0x3E, 0xC0, 0x01, 0x01, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.msg()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Build() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestBuilder_FrameInvariants(t *testing.T) {
	msgs := [][]byte{
		mustBuild(t, New(0x01).WriteRAM(RAMPositionKp, Word(420)...).Build),
		mustBuild(t, New(0x02).WriteEEP(EEPBaudRate, 0x22).Build),
		mustBuild(t, New(BroadcastID).Reboot().Build),
		mustBuild(t, New(0x10).SJog(30,
			JogEntry{ID: 0x10, Mode: JogPosition, Color: LEDRed, Target: 100},
			JogEntry{ID: 0x11, Mode: JogPosition, Color: LEDRed, Target: 900},
		).Build),
	}

	for _, msg := range msgs {
		if int(msg[2]) != len(msg) {
			t.Errorf("size byte %d does not match frame length %d: % X", msg[2], len(msg), msg)
		}
		c1 := checksum1(msg[2], msg[3], msg[4], msg[7:])
		if msg[5] != c1 || msg[6] != checksum2(c1) {
			t.Errorf("embedded checksums %02X %02X, recomputed %02X %02X: % X",
				msg[5], msg[6], c1, checksum2(c1), msg)
		}
	}
}

func TestBuilder_BroadcastReboot(t *testing.T) {
	msg, err := New(BroadcastID).Reboot().Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(msg) != MinFrameSize {
		t.Errorf("broadcast reboot frame length = %d, want %d", len(msg), MinFrameSize)
	}
	if msg[2] != MinFrameSize {
		t.Errorf("size byte = %d, want %d", msg[2], MinFrameSize)
	}
	if msg[3] != BroadcastID {
		t.Errorf("id byte = %#02x, want %#02x", msg[3], BroadcastID)
	}
}

func TestBuilder_WidthMismatch(t *testing.T) {
	tests := []struct {
		name string
		msg  func() ([]byte, error)
	}{
		{"two bytes into one-byte ram register", New(0x01).WriteRAM(RAMTorqueControl, Word(0x60)...).Build},
		{"one byte into two-byte ram register", New(0x01).WriteRAM(RAMPositionKp, 0x04).Build},
		{"no value", New(0x01).WriteRAM(RAMTorqueControl).Build},
		{"two bytes into one-byte eep register", New(0x01).WriteEEP(EEPID, 0x05, 0x00).Build},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tt.msg()
			if msg != nil {
				t.Errorf("Build() produced bytes alongside error: % X", msg)
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("Build() error = %v, want *BuildError", err)
			}
			if be.Kind != AddressWidthMismatch {
				t.Errorf("error kind = %d, want AddressWidthMismatch", be.Kind)
			}
		})
	}
}

func TestBuilder_ReadOnlyRegister(t *testing.T) {
	msg, err := New(0x01).WriteRAM(RAMVoltage, Word(0x7F)...).Build()
	if msg != nil {
		t.Errorf("Build() produced bytes alongside error: % X", msg)
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Build() error = %v, want *BuildError", err)
	}
	if be.Kind != ReadOnlyRegister {
		t.Errorf("error kind = %d, want ReadOnlyRegister", be.Kind)
	}
}

func TestBuilder_TooManyJogEntries(t *testing.T) {
	cmd := New(BroadcastID).SJog(60)
	for i := 0; i < MaxJogEntries; i++ {
		cmd.Add(JogEntry{ID: byte(i), Mode: JogPosition, Target: 512})
	}
	if _, err := cmd.Build(); err != nil {
		t.Fatalf("Build() with %d entries: %v", MaxJogEntries, err)
	}

	cmd.Add(JogEntry{ID: 0x0A, Mode: JogPosition, Target: 512})
	_, err := cmd.Build()
	var be *BuildError
	if !errors.As(err, &be) || be.Kind != TooManyJogEntries {
		t.Errorf("Build() with %d entries: error = %v, want TooManyJogEntries", MaxJogEntries+1, err)
	}
}

func TestSpeedTarget(t *testing.T) {
	if got := SpeedTarget(320, Clockwise); got != 0x0140 {
		t.Errorf("SpeedTarget(320, Clockwise) = %#04x, want 0x0140", got)
	}
	if got := SpeedTarget(320, Counterclockwise); got != 0x4140 {
		t.Errorf("SpeedTarget(320, Counterclockwise) = %#04x, want 0x4140", got)
	}
	// Out-of-range speeds clamp instead of bleeding into the flag bits.
	if got := SpeedTarget(0xFFFF, Clockwise); got != MaxSpeed {
		t.Errorf("SpeedTarget(0xFFFF, Clockwise) = %#04x, want %#04x", got, MaxSpeed)
	}
}

func mustBuild(t *testing.T, build func() ([]byte, error)) []byte {
	t.Helper()
	msg, err := build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return msg
}
