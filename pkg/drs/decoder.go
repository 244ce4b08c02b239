package drs

// AckPacket is one checksum-validated acknowledgment frame. Produced
// only by the Decoder; the caller owns it once popped.
type AckPacket struct {
	ID   byte
	Cmd  byte // command echo with the ack bit set, or raw status byte
	Data []byte
}

// Request returns the command byte this frame acknowledges.
func (p AckPacket) Request() byte {
	return p.Cmd &^ ackBit
}

// Status returns the trailing error/detail pair every well-formed
// acknowledgment carries. ok is false when the payload is too short to
// hold one.
func (p AckPacket) Status() (StatusError, StatusDetail, bool) {
	n := len(p.Data)
	if n < 2 {
		return 0, 0, false
	}
	return StatusError(p.Data[n-2]), StatusDetail(p.Data[n-1]), true
}

// Value unpacks a read acknowledgment (RAM_READ or EEP_READ): the
// register offset it answered for and the register bytes. ok is false
// for other commands or truncated payloads.
func (p AckPacket) Value() (addr byte, value []byte, ok bool) {
	if r := p.Request(); r != CmdRAMRead && r != CmdEEPRead {
		return 0, nil, false
	}
	// payload: addr, count, value bytes, error, detail
	if len(p.Data) < 2 {
		return 0, nil, false
	}
	n := int(p.Data[1])
	if len(p.Data) < 2+n+2 {
		return 0, nil, false
	}
	return p.Data[0], p.Data[2 : 2+n], true
}

type decodeState int

const (
	stateIdle decodeState = iota
	stateAwaitSize
	stateAwaitBody
)

// Decoder reassembles acknowledgment frames from a raw serial byte
// stream. It tolerates fragmented delivery, several frames per chunk,
// and noise: anything that fails the header scan, the size check or
// the checksums is skipped and scanning resumes at the next plausible
// header. Frame loss on a noisy line is routine, so malformed input is
// never surfaced as an error.
//
// A Decoder is not safe for concurrent use; wrap it in a mutex or keep
// it confined to the goroutine that reads the port.
type Decoder struct {
	buf   []byte
	state decodeState
	need  int
	ready []AckPacket
}

// NewDecoder returns a Decoder in its initial scanning state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends bytes read from the line and advances the state
// machine. Completed packets queue up for Pop or Drain; a frame split
// across Feed calls completes once its last byte arrives.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
	d.scan()
}

// Pop removes and returns the oldest completed packet.
func (d *Decoder) Pop() (AckPacket, bool) {
	if len(d.ready) == 0 {
		return AckPacket{}, false
	}
	pkt := d.ready[0]
	d.ready = d.ready[1:]
	return pkt, true
}

// Drain removes and returns all completed packets in wire order.
func (d *Decoder) Drain() []AckPacket {
	out := d.ready
	d.ready = nil
	return out
}

// Ready returns the number of completed packets waiting to be popped.
func (d *Decoder) Ready() int {
	return len(d.ready)
}

// Reset discards all buffered bytes and queued packets, returning the
// decoder to its initial state.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.state = stateIdle
	d.need = 0
	d.ready = nil
}

func (d *Decoder) scan() {
	for {
		switch d.state {
		case stateIdle:
			// Slide to the next two-byte header; bytes before it are
			// noise and are discarded.
			i := 0
			for i+1 < len(d.buf) && !(d.buf[i] == headerByte && d.buf[i+1] == headerByte) {
				i++
			}
			if i+1 >= len(d.buf) {
				// No full header yet. A trailing 0xFF may be the first
				// half of one, so keep it.
				if n := len(d.buf); n > 0 && d.buf[n-1] == headerByte {
					d.drop(n - 1)
				} else {
					d.buf = d.buf[:0]
				}
				return
			}
			d.drop(i)
			d.state = stateAwaitSize

		case stateAwaitSize:
			if len(d.buf) < 3 {
				return
			}
			size := int(d.buf[2])
			if size < MinFrameSize {
				// Bad size: drop this header candidate and rescan one
				// byte further.
				d.drop(1)
				d.state = stateIdle
				continue
			}
			d.need = size
			d.state = stateAwaitBody

		case stateAwaitBody:
			if len(d.buf) < d.need {
				return
			}
			f := d.buf[:d.need]
			if verifyFrame(f) {
				d.ready = append(d.ready, AckPacket{
					ID:   f[3],
					Cmd:  f[4],
					Data: append([]byte(nil), f[7:]...),
				})
				d.drop(d.need)
			} else {
				// Checksum mismatch: rescan one byte past the header
				// match so a header hiding inside the bad frame is
				// still found.
				d.drop(1)
			}
			d.state = stateIdle
		}
	}
}

// drop discards the first n buffered bytes in place.
func (d *Decoder) drop(n int) {
	m := copy(d.buf, d.buf[n:])
	d.buf = d.buf[:m]
}
