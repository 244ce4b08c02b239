package drs

// Position and speed limits for jog targets.
const (
	MaxPosition uint16 = 1023
	MaxSpeed    uint16 = 1023
	MaxPlaytime byte   = 0xFE

	// MaxJogEntries is the per-frame limit of per-servo jog blocks.
	MaxJogEntries = 10

	// rotationBit flips the spin direction of a continuous jog target.
	rotationBit uint16 = 0x4000
)

// JogMode selects how a jog target value is interpreted.
type JogMode byte

const (
	// JogPosition drives to an absolute goal position (0-1023).
	JogPosition JogMode = 0x00
	// JogContinuous spins at a constant speed (turn/velocity control).
	JogContinuous JogMode = 0x02
)

// LEDColor bits light the servo LED for the duration of a jog. Values
// may be OR-ed to mix colors.
type LEDColor byte

const (
	LEDOff   LEDColor = 0x00
	LEDGreen LEDColor = 0x04
	LEDBlue  LEDColor = 0x08
	LEDRed   LEDColor = 0x10
)

// ControlBits converts a jog LED color to the encoding of the
// LEDControl register (green 0x01, blue 0x02, red 0x04).
func (c LEDColor) ControlBits() byte {
	return byte(c) >> 2
}

// Rotation is the spin direction of a continuous jog.
type Rotation byte

const (
	Clockwise Rotation = iota
	Counterclockwise
)

// SpeedTarget encodes a speed and direction into a continuous-jog
// target value.
func SpeedTarget(speed uint16, r Rotation) uint16 {
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	if r == Counterclockwise {
		speed |= rotationBit
	}
	return speed
}

// JogEntry is one per-servo block inside an S_JOG or I_JOG frame.
// Target holds a goal position for JogPosition mode or an encoded
// speed (see SpeedTarget) for JogContinuous.
//
// Playtime is only serialized for I_JOG; S_JOG frames share a single
// playtime. One playtime unit is 11.2ms.
type JogEntry struct {
	ID       byte
	Mode     JogMode
	Color    LEDColor
	Target   uint16
	Playtime byte
}

// set assembles the SET byte: mode and LED bits.
func (e JogEntry) set() byte {
	return byte(e.Mode) | byte(e.Color)
}
