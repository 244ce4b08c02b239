package drs

import (
	"fmt"
	"strings"
)

// StatusError is the error flag byte every acknowledgment carries.
type StatusError byte

const (
	ErrInputVoltage StatusError = 1 << 0
	ErrPOTLimit     StatusError = 1 << 1
	ErrTemperature  StatusError = 1 << 2
	ErrInvalidPkt   StatusError = 1 << 3
	ErrOverload     StatusError = 1 << 4
	ErrDriverFault  StatusError = 1 << 5
	ErrEEPDistorted StatusError = 1 << 6
)

func (e StatusError) Error() string {
	if e == 0 {
		return "no error"
	}

	var msgs []string
	if e&ErrInputVoltage != 0 {
		msgs = append(msgs, "input voltage limit exceeded")
	}
	if e&ErrPOTLimit != 0 {
		msgs = append(msgs, "allowed POT limit exceeded")
	}
	if e&ErrTemperature != 0 {
		msgs = append(msgs, "temperature limit exceeded")
	}
	if e&ErrInvalidPkt != 0 {
		msgs = append(msgs, "invalid packet")
	}
	if e&ErrOverload != 0 {
		msgs = append(msgs, "overload detected")
	}
	if e&ErrDriverFault != 0 {
		msgs = append(msgs, "driver fault detected")
	}
	if e&ErrEEPDistorted != 0 {
		msgs = append(msgs, "EEP register distorted")
	}

	return fmt.Sprintf("servo status error: %s", strings.Join(msgs, ", "))
}

// HasError reports whether any error flag is set.
func (e StatusError) HasError() bool {
	return e != 0
}

// StatusDetail is the detail flag byte every acknowledgment carries.
// For ErrInvalidPkt it narrows down the cause; the remaining bits are
// informational state.
type StatusDetail byte

const (
	DetailMoving         StatusDetail = 1 << 0
	DetailInposition     StatusDetail = 1 << 1
	DetailChecksumError  StatusDetail = 1 << 2
	DetailUnknownCommand StatusDetail = 1 << 3
	DetailExceedREGRange StatusDetail = 1 << 4
	DetailGarbage        StatusDetail = 1 << 5
	DetailMotorOn        StatusDetail = 1 << 6
)

func (d StatusDetail) String() string {
	if d == 0 {
		return "idle"
	}

	var msgs []string
	if d&DetailMoving != 0 {
		msgs = append(msgs, "moving")
	}
	if d&DetailInposition != 0 {
		msgs = append(msgs, "in position")
	}
	if d&DetailChecksumError != 0 {
		msgs = append(msgs, "checksum error")
	}
	if d&DetailUnknownCommand != 0 {
		msgs = append(msgs, "unknown command")
	}
	if d&DetailExceedREGRange != 0 {
		msgs = append(msgs, "REG range exceeded")
	}
	if d&DetailGarbage != 0 {
		msgs = append(msgs, "garbage detected")
	}
	if d&DetailMotorOn != 0 {
		msgs = append(msgs, "motor on")
	}

	return strings.Join(msgs, ", ")
}
