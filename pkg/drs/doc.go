// Package drs implements the wire protocol of Dongbu Herkulex DRS
// servomotors (DRS-0101 and DRS-0201; other models may partially work
// but are not supported). It follows the protocol manual published by
// Dongbu Robot.
//
// The package has two halves that share only the frame layout:
//
//   - a command builder that produces complete, checksummed request
//     frames ready to be written to the serial line, and
//   - a streaming Decoder that turns raw bytes read from the line back
//     into validated acknowledgment packets.
//
// Neither half performs I/O. To reboot every servo on the bus:
//
//	msg, _ := drs.New(drs.BroadcastID).Reboot().Build()
//
// To enable torque on servo 35:
//
//	msg, err := drs.New(35).WriteRAM(drs.RAMTorqueControl, drs.TorqueOn).Build()
package drs
