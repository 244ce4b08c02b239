// Package herkulex provides communication with Dongbu Herkulex DRS
// servomotors (DRS-0101 and DRS-0201) over a half-duplex serial bus.
//
// The wire protocol lives in pkg/drs: a pure command encoder and a
// streaming acknowledgment decoder, both independent of any serial
// hardware. pkg/servo layers an actual serial bus and per-servo
// convenience methods on top of the codec.
//
// # Usage
//
// Scan for connected servos and write a config file:
//
//	servo-scan
//
// Then watch the bus live:
//
//	servo-dash
//
// Or drive a servo from the command line:
//
//	servoctl move 253 512
//
// # Packages
//
// The module is organized into the following packages:
//
//   - pkg/drs: wire-format codec (packet builder, register map, ACK decoder)
//   - pkg/servo: serial bus, Servo type, calibration, and configuration
//   - pkg/monitor: polling controller for live servo telemetry
//   - cmd/servoctl: CLI with scan, status, move and configuration commands
//   - cmd/servo-scan: serial port discovery
//   - cmd/servo-dash: live telemetry dashboard
package herkulex
