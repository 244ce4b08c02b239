// Package servo drives Herkulex DRS servos over a serial bus.
package servo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/gwillem/herkulex/pkg/drs"
)

// ErrNoAck is returned when a servo does not answer a request within
// the bus timeout. A missing ack usually means a wrong ID, a wrong
// baud rate or an AckPolicy of none.
var ErrNoAck = errors.New("no acknowledgment from servo")

const (
	// DefaultBaud is the factory baud rate of DRS-0101/0201 servos.
	DefaultBaud = 115200

	// pollInterval is how long a single blocking port read may stall
	// before the request deadline is rechecked.
	pollInterval = 20 * time.Millisecond
)

// Config holds configuration for opening a bus.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
	Logger  *zerolog.Logger
}

// Bus is a shared serial connection to one or more servos. All bus
// methods are safe for concurrent use; requests are serialized because
// the servos share a single half-duplex line.
type Bus struct {
	port     serial.Port
	portName string
	timeout  time.Duration
	log      zerolog.Logger

	mu  sync.Mutex
	dec *drs.Decoder
}

// Open opens the serial port and returns a ready bus.
func Open(cfg Config) (*Bus, error) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}

	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open port %s: %w", cfg.Port, err)
	}

	b := NewBus(port, cfg)
	b.portName = cfg.Port
	b.log.Debug().Str("port", cfg.Port).Int("baud", cfg.Baud).Msg("bus opened")
	return b, nil
}

// NewBus wraps an already open port. Useful for tests and for
// transports other than a local serial device.
func NewBus(port serial.Port, cfg Config) *Bus {
	if cfg.Timeout == 0 {
		cfg.Timeout = 500 * time.Millisecond
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Bus{
		port:    port,
		timeout: cfg.Timeout,
		log:     log,
		dec:     drs.NewDecoder(),
	}
}

// Close closes the underlying port.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.port.Close()
}

// Servo returns a handle for the servo with the given ID.
func (b *Bus) Servo(id byte) *Servo {
	return &Servo{ID: id, bus: b}
}

// Send writes a command frame without waiting for an acknowledgment.
// Use it for broadcasts and for servos configured with AckNone.
func (b *Bus) Send(msg []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write(msg)
}

// Request writes a command frame and waits for the matching
// acknowledgment. Frames from other servos, stale acks and line noise
// are discarded while waiting. Returns ErrNoAck when the timeout
// elapses first.
func (b *Bus) Request(ctx context.Context, msg []byte) (drs.AckPacket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Stale bytes from an earlier exchange would pair with the wrong
	// request.
	b.dec.Reset()
	if err := b.port.ResetInputBuffer(); err != nil {
		return drs.AckPacket{}, fmt.Errorf("flush input: %w", err)
	}

	if err := b.write(msg); err != nil {
		return drs.AckPacket{}, err
	}

	id, cmd := msg[3], msg[4]
	deadline := time.Now().Add(b.timeout)
	buf := make([]byte, 256)

	if err := b.port.SetReadTimeout(pollInterval); err != nil {
		return drs.AckPacket{}, fmt.Errorf("set read timeout: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return drs.AckPacket{}, err
		}
		if time.Now().After(deadline) {
			b.log.Debug().
				Uint8("id", id).
				Str("cmd", fmt.Sprintf("%#02x", cmd)).
				Msg("request timed out")
			return drs.AckPacket{}, fmt.Errorf("servo %d cmd %#02x: %w", id, cmd, ErrNoAck)
		}

		n, err := b.port.Read(buf)
		if err != nil {
			return drs.AckPacket{}, fmt.Errorf("read port: %w", err)
		}
		if n == 0 {
			continue
		}
		b.dec.Feed(buf[:n])

		for {
			pkt, ok := b.dec.Pop()
			if !ok {
				break
			}
			if pkt.ID == id && pkt.Request() == cmd {
				return pkt, nil
			}
			b.log.Debug().
				Uint8("want_id", id).
				Uint8("got_id", pkt.ID).
				Msg("discarding unrelated ack")
		}
	}
}

func (b *Bus) write(msg []byte) error {
	n, err := b.port.Write(msg)
	if err != nil {
		return fmt.Errorf("write port: %w", err)
	}
	if n != len(msg) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(msg))
	}
	b.log.Trace().Hex("frame", msg).Msg("sent")
	return nil
}

// MoveAll starts one synchronized move on several servos: a broadcast
// S_JOG where every entry shares the playtime, so all servos reach
// their targets together.
func (b *Bus) MoveAll(playtime byte, entries ...drs.JogEntry) error {
	msg, err := drs.New(drs.BroadcastID).SJog(playtime, entries...).Build()
	if err != nil {
		return err
	}
	return b.Send(msg)
}

// Scan probes every ID in [first, last] with a STAT request and
// returns the IDs that answered. Non-responding IDs are skipped
// silently; any other bus error aborts the scan.
func (b *Bus) Scan(ctx context.Context, first, last byte) ([]byte, error) {
	if first > last || last > drs.MaxID {
		return nil, fmt.Errorf("invalid scan range %d-%d", first, last)
	}

	var found []byte
	for id := first; ; id++ {
		msg, err := drs.New(id).Stat().Build()
		if err != nil {
			return nil, err
		}
		pkt, err := b.Request(ctx, msg)
		switch {
		case err == nil:
			b.log.Info().Uint8("id", pkt.ID).Msg("servo found")
			found = append(found, pkt.ID)
		case errors.Is(err, ErrNoAck):
			// Empty slot.
		default:
			return found, err
		}
		if id == last {
			return found, nil
		}
	}
}
