package drs

import (
	"bytes"
	"testing"
)

// ack builds a valid acknowledgment frame for cmd with the trailing
// error/detail pair appended.
func ack(id, cmd byte, data []byte, e StatusError, det StatusDetail) []byte {
	payload := append(append([]byte(nil), data...), byte(e), byte(det))
	return frame(id, cmd|ackBit, payload)
}

func TestDecoder_ReadAck(t *testing.T) {
	// Captured reply to an EEP_READ of 4 bytes at the position gain
	// block: addr 0x1E, values B8 01 40 1F, no errors.
	wire := []byte{
		0xFF, 0xFF, 0x0F, 0xFD, 0x42, 0x4C, 0xB2,
		0x1E, 0x04, 0xB8, 0x01, 0x40, 0x1F, 0x00, 0x00,
	}

	d := NewDecoder()
	d.Feed(wire)

	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("Pop() returned no packet")
	}
	if pkt.ID != 0xFD {
		t.Errorf("ID = %#02x, want 0xFD", pkt.ID)
	}
	if pkt.Request() != CmdEEPRead {
		t.Errorf("Request() = %#02x, want CmdEEPRead", pkt.Request())
	}

	addr, value, ok := pkt.Value()
	if !ok {
		t.Fatal("Value() not ok for a read ack")
	}
	if addr != EEPPositionKp.Addr {
		t.Errorf("addr = %d, want %d", addr, EEPPositionKp.Addr)
	}
	if want := []byte{0xB8, 0x01, 0x40, 0x1F}; !bytes.Equal(value, want) {
		t.Errorf("value = % X, want % X", value, want)
	}
	if kp := ToWord(value[:2]); kp != 440 {
		t.Errorf("position kp = %d, want 440", kp)
	}

	e, det, ok := pkt.Status()
	if !ok || e != 0 || det != 0 {
		t.Errorf("Status() = %v, %v, %v, want 0, 0, true", e, det, ok)
	}

	if _, ok := d.Pop(); ok {
		t.Error("Pop() returned a second packet from a single frame")
	}
}

func TestDecoder_StatAck(t *testing.T) {
	wire := ack(0x07, CmdStat, nil, ErrTemperature|ErrOverload, DetailMotorOn)

	d := NewDecoder()
	d.Feed(wire)

	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("Pop() returned no packet")
	}
	e, det, ok := pkt.Status()
	if !ok {
		t.Fatal("Status() not ok")
	}
	if e != ErrTemperature|ErrOverload {
		t.Errorf("error flags = %#02x, want temperature|overload", byte(e))
	}
	if !e.HasError() {
		t.Error("HasError() = false with flags set")
	}
	if det != DetailMotorOn {
		t.Errorf("detail flags = %#02x, want motor on", byte(det))
	}
	if _, _, ok := pkt.Value(); ok {
		t.Error("Value() ok for a STAT ack")
	}
}

func TestDecoder_MultipleFramesPerFeed(t *testing.T) {
	frames := [][]byte{
		ack(0x01, CmdStat, nil, 0, DetailInposition),
		ack(0x02, CmdRAMWrite, nil, 0, 0),
		ack(0x03, CmdRAMRead, []byte{0x35, 0x01, 0x01}, 0, DetailMotorOn),
	}

	d := NewDecoder()
	d.Feed(bytes.Join(frames, nil))

	got := d.Drain()
	if len(got) != len(frames) {
		t.Fatalf("Drain() returned %d packets, want %d", len(got), len(frames))
	}
	for i, pkt := range got {
		if pkt.ID != byte(i+1) {
			t.Errorf("packet %d: ID = %#02x, want %#02x", i, pkt.ID, i+1)
		}
	}
	if d.Ready() != 0 {
		t.Errorf("Ready() = %d after Drain", d.Ready())
	}
}

func TestDecoder_FragmentedDelivery(t *testing.T) {
	wire := append(
		ack(0x01, CmdRAMRead, []byte{0x36, 0x02, 0x7D, 0x00}, 0, 0),
		ack(0x02, CmdStat, nil, 0, DetailMoving)...,
	)

	// Byte at a time.
	d := NewDecoder()
	for _, b := range wire {
		d.Feed([]byte{b})
	}
	if n := d.Ready(); n != 2 {
		t.Errorf("byte-wise feed: Ready() = %d, want 2", n)
	}

	// Every two-chunk split.
	for cut := 0; cut <= len(wire); cut++ {
		d := NewDecoder()
		d.Feed(wire[:cut])
		d.Feed(wire[cut:])
		if n := d.Ready(); n != 2 {
			t.Errorf("split at %d: Ready() = %d, want 2", cut, n)
		}
	}
}

func TestDecoder_SkipsLeadingNoise(t *testing.T) {
	valid := ack(0x0A, CmdStat, nil, 0, 0)
	wire := append([]byte{0x12, 0x00, 0xFF, 0x03, 0x99}, valid...)

	d := NewDecoder()
	d.Feed(wire)

	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("no packet decoded past leading noise")
	}
	if pkt.ID != 0x0A {
		t.Errorf("ID = %#02x, want 0x0A", pkt.ID)
	}
}

func TestDecoder_NoiseBetweenFrames(t *testing.T) {
	first := ack(0x01, CmdStat, nil, 0, 0)
	second := ack(0x02, CmdStat, nil, 0, DetailMoving)

	var wire []byte
	wire = append(wire, 0x12, 0x34)
	wire = append(wire, first...)
	wire = append(wire, 0x56)
	wire = append(wire, second...)

	d := NewDecoder()
	d.Feed(wire)

	got := d.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d packets, want 2", len(got))
	}
	if got[0].ID != 0x01 || got[1].ID != 0x02 {
		t.Errorf("packet IDs = %#02x, %#02x, want 0x01, 0x02", got[0].ID, got[1].ID)
	}
}

func TestDecoder_DropsCorruptFrame(t *testing.T) {
	bad := ack(0x05, CmdRAMRead, []byte{0x35, 0x01, 0x01}, 0, 0)
	bad[8] ^= 0x01 // flip a payload bit, checksums no longer match
	good := ack(0x06, CmdStat, nil, 0, 0)

	d := NewDecoder()
	d.Feed(bad)
	if n := d.Ready(); n != 0 {
		t.Fatalf("corrupt frame produced %d packets", n)
	}

	d.Feed(good)
	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("no packet after the corrupt frame")
	}
	if pkt.ID != 0x06 {
		t.Errorf("ID = %#02x, want 0x06", pkt.ID)
	}
}

func TestDecoder_DropsBogusSize(t *testing.T) {
	// Header followed by a size byte below the minimum frame length.
	wire := append([]byte{0xFF, 0xFF, 0x03, 0x01, 0x47}, ack(0x09, CmdStat, nil, 0, 0)...)

	d := NewDecoder()
	d.Feed(wire)

	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("no packet decoded past the bogus size")
	}
	if pkt.ID != 0x09 {
		t.Errorf("ID = %#02x, want 0x09", pkt.ID)
	}
}

func TestDecoder_HeaderSplitAcrossFeeds(t *testing.T) {
	wire := ack(0x02, CmdStat, nil, 0, 0)

	d := NewDecoder()
	d.Feed(wire[:1]) // lone 0xFF, first half of the header
	d.Feed(wire[1:])

	if _, ok := d.Pop(); !ok {
		t.Fatal("frame split inside the header did not decode")
	}
}

func TestDecoder_EmbeddedHeaderResync(t *testing.T) {
	// A truncated frame start immediately followed by a complete frame:
	// the decoder must find the second header inside the first frame's
	// claimed body.
	good := ack(0x04, CmdStat, nil, 0, 0)
	wire := append([]byte{0xFF, 0xFF, 0x0C, 0x01, 0x44}, good...)

	d := NewDecoder()
	d.Feed(wire)

	pkt, ok := d.Pop()
	if !ok {
		t.Fatal("no packet recovered after a truncated frame")
	}
	if pkt.ID != 0x04 {
		t.Errorf("ID = %#02x, want 0x04", pkt.ID)
	}
}

func TestDecoder_Reset(t *testing.T) {
	wire := ack(0x03, CmdStat, nil, 0, 0)

	d := NewDecoder()
	d.Feed(wire[:4])
	d.Reset()
	d.Feed(wire[4:]) // the remainder alone is not a frame
	if n := d.Ready(); n != 0 {
		t.Fatalf("Ready() = %d after Reset mid-frame", n)
	}

	d.Feed(wire)
	if _, ok := d.Pop(); !ok {
		t.Error("decoder did not recover after Reset")
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	// Request frames share the wire format with acknowledgments, so the
	// decoder must reproduce whatever the builder serialized.
	builds := []func() ([]byte, error){
		New(0x01).Stat().Build,
		New(0x02).Reboot().Build,
		New(0x03).Rollback(true, false).Build,
		New(0x04).ReadRAM(RAMAbsolutePosition).Build,
		New(0x05).WriteRAM(RAMTorqueControl, TorqueOn).Build,
		New(0x06).ReadEEP(EEPBaudRate).Build,
		New(0x07).WriteEEP(EEPMaxTemperature, 0xDF).Build,
		New(BroadcastID).SJog(60, JogEntry{ID: 0x08, Mode: JogPosition, Target: 512}).Build,
		New(0x09).IJog(JogEntry{ID: 0x09, Mode: JogContinuous, Target: SpeedTarget(100, Counterclockwise), Playtime: 10}).Build,
	}

	var wire []byte
	var want [][]byte
	for _, build := range builds {
		msg := mustBuild(t, build)
		wire = append(wire, msg...)
		want = append(want, msg)
	}

	d := NewDecoder()
	d.Feed(wire)

	got := d.Drain()
	if len(got) != len(want) {
		t.Fatalf("Drain() returned %d packets, want %d", len(got), len(want))
	}
	for i, pkt := range got {
		if pkt.ID != want[i][3] || pkt.Cmd != want[i][4] {
			t.Errorf("packet %d: id/cmd = %#02x/%#02x, want %#02x/%#02x",
				i, pkt.ID, pkt.Cmd, want[i][3], want[i][4])
		}
		if !bytes.Equal(pkt.Data, want[i][7:]) {
			t.Errorf("packet %d: data = % X, want % X", i, pkt.Data, want[i][7:])
		}
	}
}
