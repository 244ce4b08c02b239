package drs

// Builder starts a command frame addressed to one servo. It is a
// value; every operation method hands off to a command type carrying
// the terminal Build.
type Builder struct {
	id byte
}

// New returns a Builder addressing the given servo ID. Use BroadcastID
// to address every servo on the bus. The ID is not validated here; the
// protocol reserves 0xFF but the encoder will serialize whatever the
// caller asks for.
func New(id byte) Builder {
	return Builder{id: id}
}

// MemCommand is a pending memory read or write (RAM_READ, RAM_WRITE,
// EEP_READ, EEP_WRITE).
type MemCommand struct {
	id       byte
	cmd      byte
	reg      string
	addr     byte
	width    byte
	writable bool
	value    []byte
	read     bool
	count    byte
}

// ReadRAM builds a RAM_READ request for the full width of reg.
func (b Builder) ReadRAM(reg RAMRegister) *MemCommand {
	return &MemCommand{
		id: b.id, cmd: CmdRAMRead, reg: reg.Name, addr: reg.Addr,
		read: true, count: reg.Size,
	}
}

// WriteRAM builds a RAM_WRITE request. The change lasts until the
// servo is restarted. Multi-byte values are little-endian (see Word).
func (b Builder) WriteRAM(reg RAMRegister, value ...byte) *MemCommand {
	return &MemCommand{
		id: b.id, cmd: CmdRAMWrite, reg: reg.Name, addr: reg.Addr,
		width: reg.Size, writable: reg.Writable, value: value,
	}
}

// ReadEEP builds an EEP_READ request for the full width of reg.
func (b Builder) ReadEEP(reg EEPRegister) *MemCommand {
	return &MemCommand{
		id: b.id, cmd: CmdEEPRead, reg: reg.Name, addr: reg.Addr,
		read: true, count: reg.Size,
	}
}

// WriteEEP builds an EEP_WRITE request. The servo must be rebooted for
// the change to take effect.
func (b Builder) WriteEEP(reg EEPRegister, value ...byte) *MemCommand {
	return &MemCommand{
		id: b.id, cmd: CmdEEPWrite, reg: reg.Name, addr: reg.Addr,
		width: reg.Size, writable: reg.Writable, value: value,
	}
}

// AckPolicy builds a RAM_WRITE request setting the servo's reply
// policy.
func (b Builder) AckPolicy(p AckPolicy) *MemCommand {
	return b.WriteRAM(RAMAckPolicy, byte(p))
}

// Length overrides the number of bytes a read request asks for,
// allowing one request to span consecutive registers. It has no effect
// on writes.
func (c *MemCommand) Length(n byte) *MemCommand {
	if c.read {
		c.count = n
	}
	return c
}

// Build serializes the request frame.
func (c *MemCommand) Build() ([]byte, error) {
	if c.read {
		return frame(c.id, c.cmd, []byte{c.addr, c.count}), nil
	}
	if !c.writable {
		return nil, errReadOnly(c.reg)
	}
	if len(c.value) != int(c.width) {
		return nil, errWidthMismatch(c.reg, int(c.width), len(c.value))
	}
	data := make([]byte, 0, 2+len(c.value))
	data = append(data, c.addr, byte(len(c.value)))
	data = append(data, c.value...)
	return frame(c.id, c.cmd, data), nil
}

// JogCommand is a pending S_JOG or I_JOG motion command.
type JogCommand struct {
	id       byte
	cmd      byte
	playtime byte // S_JOG only; shared by every entry
	entries  []JogEntry
}

// SJog builds an S_JOG command: every entry starts immediately and
// plays for the shared playtime.
func (b Builder) SJog(playtime byte, entries ...JogEntry) *JogCommand {
	return &JogCommand{id: b.id, cmd: CmdSJog, playtime: playtime, entries: entries}
}

// IJog builds an I_JOG command: each entry carries its own playtime
// and starts once the servo's previous jog completes.
func (b Builder) IJog(entries ...JogEntry) *JogCommand {
	return &JogCommand{id: b.id, cmd: CmdIJog, entries: entries}
}

// Add appends further per-servo entries to the command.
func (c *JogCommand) Add(entries ...JogEntry) *JogCommand {
	c.entries = append(c.entries, entries...)
	return c
}

// Build serializes the request frame. At most MaxJogEntries entries
// fit in one frame.
func (c *JogCommand) Build() ([]byte, error) {
	if len(c.entries) > MaxJogEntries {
		return nil, errTooManyJogs()
	}
	var data []byte
	if c.cmd == CmdSJog {
		data = append(data, c.playtime)
	}
	for _, e := range c.entries {
		data = append(data, byte(e.Target), byte(e.Target>>8), e.set(), e.ID)
		if c.cmd == CmdIJog {
			data = append(data, e.Playtime)
		}
	}
	return frame(c.id, c.cmd, data), nil
}

// SpecialCommand is a pending STAT, ROLLBACK or REBOOT request.
type SpecialCommand struct {
	id   byte
	cmd  byte
	data []byte
}

// Stat builds a STAT request asking the servo for its error and detail
// registers.
func (b Builder) Stat() *SpecialCommand {
	return &SpecialCommand{id: b.id, cmd: CmdStat}
}

// Reboot builds a REBOOT request. Pending EEPROM writes take effect
// during the reboot.
func (b Builder) Reboot() *SpecialCommand {
	return &SpecialCommand{id: b.id, cmd: CmdReboot}
}

// Rollback builds a ROLLBACK request resetting EEPROM to factory
// defaults, optionally preserving the servo ID and baud rate.
func (b Builder) Rollback(skipID, skipBaud bool) *SpecialCommand {
	bit := func(v bool) byte {
		if v {
			return 1
		}
		return 0
	}
	return &SpecialCommand{id: b.id, cmd: CmdRollback, data: []byte{bit(skipID), bit(skipBaud)}}
}

// Build serializes the request frame.
func (c *SpecialCommand) Build() ([]byte, error) {
	return frame(c.id, c.cmd, c.data), nil
}
