package servo

import (
	"context"
	"fmt"

	"github.com/gwillem/herkulex/pkg/drs"
)

// Servo is a handle for a single servo on a bus. Handles are cheap;
// create one per ID as needed.
type Servo struct {
	ID  byte
	bus *Bus
}

// request builds a command for this servo and waits for its ack.
func (s *Servo) request(ctx context.Context, build func() ([]byte, error)) (drs.AckPacket, error) {
	msg, err := build()
	if err != nil {
		return drs.AckPacket{}, err
	}
	return s.bus.Request(ctx, msg)
}

// send builds a command for this servo and writes it without waiting.
func (s *Servo) send(build func() ([]byte, error)) error {
	msg, err := build()
	if err != nil {
		return err
	}
	return s.bus.Send(msg)
}

// ReadRAM reads a volatile register and returns its value.
func (s *Servo) ReadRAM(ctx context.Context, reg drs.RAMRegister) (uint16, error) {
	pkt, err := s.request(ctx, drs.New(s.ID).ReadRAM(reg).Build)
	if err != nil {
		return 0, err
	}
	_, value, ok := pkt.Value()
	if !ok || len(value) != int(reg.Size) {
		return 0, fmt.Errorf("servo %d: malformed %s read ack", s.ID, reg.Name)
	}
	return drs.ToWord(value), nil
}

// WriteRAM writes a volatile register. The change is lost on reboot.
func (s *Servo) WriteRAM(ctx context.Context, reg drs.RAMRegister, value uint16) error {
	return s.send(drs.New(s.ID).WriteRAM(reg, word(reg.Size, value)...).Build)
}

// ReadEEP reads a permanent register and returns its value.
func (s *Servo) ReadEEP(ctx context.Context, reg drs.EEPRegister) (uint16, error) {
	pkt, err := s.request(ctx, drs.New(s.ID).ReadEEP(reg).Build)
	if err != nil {
		return 0, err
	}
	_, value, ok := pkt.Value()
	if !ok || len(value) != int(reg.Size) {
		return 0, fmt.Errorf("servo %d: malformed %s read ack", s.ID, reg.Name)
	}
	return drs.ToWord(value), nil
}

// WriteEEP writes a permanent register. Takes effect after Reboot.
func (s *Servo) WriteEEP(ctx context.Context, reg drs.EEPRegister, value uint16) error {
	return s.send(drs.New(s.ID).WriteEEP(reg, word(reg.Size, value)...).Build)
}

// word serializes value at the register's width.
func word(size byte, value uint16) []byte {
	if size == 1 {
		return []byte{byte(value)}
	}
	return drs.Word(value)
}

// EnableTorque powers the motor so jog commands move it.
func (s *Servo) EnableTorque(ctx context.Context) error {
	return s.WriteRAM(ctx, drs.RAMTorqueControl, uint16(drs.TorqueOn))
}

// DisableTorque cuts motor power; the horn can be moved by hand.
func (s *Servo) DisableTorque(ctx context.Context) error {
	return s.WriteRAM(ctx, drs.RAMTorqueControl, uint16(drs.TorqueFree))
}

// Brake engages the brake without driving the motor.
func (s *Servo) Brake(ctx context.Context) error {
	return s.WriteRAM(ctx, drs.RAMTorqueControl, uint16(drs.TorqueBreak))
}

// SetPosition drives to an absolute position (0-1023) over playtime
// units of 11.2ms, lighting the LED in the given color while moving.
func (s *Servo) SetPosition(pos uint16, playtime byte, color drs.LEDColor) error {
	return s.send(drs.New(s.ID).SJog(playtime, drs.JogEntry{
		ID: s.ID, Mode: drs.JogPosition, Color: color, Target: pos,
	}).Build)
}

// SetSpeed spins continuously at the given speed (0-1023) and
// direction. Requires the servo to be in turn mode.
func (s *Servo) SetSpeed(speed uint16, r drs.Rotation, playtime byte, color drs.LEDColor) error {
	return s.send(drs.New(s.ID).SJog(playtime, drs.JogEntry{
		ID: s.ID, Mode: drs.JogContinuous, Color: color,
		Target: drs.SpeedTarget(speed, r),
	}).Build)
}

// Position reads the calibrated absolute position (0-1023).
func (s *Servo) Position(ctx context.Context) (uint16, error) {
	return s.ReadRAM(ctx, drs.RAMCalibratedPosition)
}

// Voltage reads the supply voltage register. Raw ADC units; roughly
// 0.074V per count on the DRS-0101.
func (s *Servo) Voltage(ctx context.Context) (uint16, error) {
	return s.ReadRAM(ctx, drs.RAMVoltage)
}

// Temperature reads the temperature register in raw ADC units.
func (s *Servo) Temperature(ctx context.Context) (uint16, error) {
	return s.ReadRAM(ctx, drs.RAMTemperature)
}

// SetLED lights the servo LED until the next jog overrides it.
func (s *Servo) SetLED(ctx context.Context, color drs.LEDColor) error {
	return s.WriteRAM(ctx, drs.RAMLEDControl, uint16(color.ControlBits()))
}

// Status asks for the error and detail registers.
func (s *Servo) Status(ctx context.Context) (drs.StatusError, drs.StatusDetail, error) {
	pkt, err := s.request(ctx, drs.New(s.ID).Stat().Build)
	if err != nil {
		return 0, 0, err
	}
	e, det, ok := pkt.Status()
	if !ok {
		return 0, 0, fmt.Errorf("servo %d: truncated stat ack", s.ID)
	}
	return e, det, nil
}

// ClearStatus resets latched error and detail flags, which also stops
// the alarm LED and re-enables torque after a protective shutdown.
func (s *Servo) ClearStatus(ctx context.Context) error {
	if err := s.WriteRAM(ctx, drs.RAMStatusError, 0); err != nil {
		return err
	}
	return s.WriteRAM(ctx, drs.RAMStatusDetail, 0)
}

// SetAckPolicy changes which commands the servo acknowledges. The RAM
// copy takes effect immediately; pass permanent to also persist it.
func (s *Servo) SetAckPolicy(ctx context.Context, p drs.AckPolicy, permanent bool) error {
	if err := s.send(drs.New(s.ID).AckPolicy(p).Build); err != nil {
		return err
	}
	if permanent {
		return s.WriteEEP(ctx, drs.EEPAckPolicy, uint16(p))
	}
	return nil
}

// SetID assigns a new bus ID, both in RAM and EEPROM. The handle keeps
// addressing the old ID; create a new one after the change.
func (s *Servo) SetID(ctx context.Context, newID byte) error {
	if newID > drs.MaxID {
		return fmt.Errorf("invalid servo ID %d, max is %d", newID, drs.MaxID)
	}
	if err := s.WriteEEP(ctx, drs.EEPID, uint16(newID)); err != nil {
		return err
	}
	return s.WriteRAM(ctx, drs.RAMID, uint16(newID))
}

// Reboot restarts the servo, applying pending EEPROM writes.
func (s *Servo) Reboot() error {
	return s.send(drs.New(s.ID).Reboot().Build)
}

// Rollback resets EEPROM to factory defaults, optionally keeping the
// ID and baud rate, then requires a Reboot to take effect.
func (s *Servo) Rollback(keepID, keepBaud bool) error {
	return s.send(drs.New(s.ID).Rollback(keepID, keepBaud).Build)
}
