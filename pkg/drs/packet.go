package drs

// Command bytes for request frames. A servo acknowledges by echoing
// the command with the ack bit (0x40) set.
const (
	CmdEEPWrite byte = 0x01
	CmdEEPRead  byte = 0x02
	CmdRAMWrite byte = 0x03
	CmdRAMRead  byte = 0x04
	CmdIJog     byte = 0x05
	CmdSJog     byte = 0x06
	CmdStat     byte = 0x07
	CmdRollback byte = 0x08
	CmdReboot   byte = 0x09
)

// Special servo IDs. Individual servos use 0x00-0xFD; 0xFF is reserved
// by the protocol.
const (
	BroadcastID byte = 0xFE
	MaxID       byte = 0xFD
)

const (
	headerByte = 0xFF

	// MinFrameSize is the smallest valid frame: two header bytes,
	// size, id, command and both checksums. The size byte counts the
	// whole frame, header included.
	MinFrameSize = 7

	// Both checksums are masked to 7 significant bits so that neither
	// can collide with the 0xFF header byte.
	checksumMask = 0xFE

	ackBit = 0x40
)

// checksum1 folds size, id, command and payload with XOR and masks the
// result. checksum2 is its masked complement; both are recomputed
// identically for outbound build and inbound validation.
func checksum1(size, id, cmd byte, data []byte) byte {
	c := size ^ id ^ cmd
	for _, b := range data {
		c ^= b
	}
	return c & checksumMask
}

func checksum2(c1 byte) byte {
	return ^c1 & checksumMask
}

// frame assembles one complete wire frame.
func frame(id, cmd byte, data []byte) []byte {
	size := byte(MinFrameSize + len(data))
	c1 := checksum1(size, id, cmd, data)
	buf := make([]byte, 0, int(size))
	buf = append(buf, headerByte, headerByte, size, id, cmd, c1, checksum2(c1))
	return append(buf, data...)
}

// verifyFrame recomputes both checksums over a complete candidate
// frame (headers included, len(f) == f[2]).
func verifyFrame(f []byte) bool {
	c1 := checksum1(f[2], f[3], f[4], f[7:])
	return f[5] == c1 && f[6] == checksum2(c1)
}
