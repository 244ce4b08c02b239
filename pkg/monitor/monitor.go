// Package monitor polls servos at a fixed rate and publishes their
// state over channels, for dashboards and logging.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/herkulex/pkg/drs"
	"github.com/gwillem/herkulex/pkg/servo"
)

// Reading is one servo's sample within a poll cycle.
type Reading struct {
	ID          byte
	Position    uint16
	Voltage     uint16
	Temperature uint16
	Error       drs.StatusError
	Detail      drs.StatusDetail
}

// State represents one complete poll cycle.
type State struct {
	Readings  map[byte]Reading
	Timestamp time.Time
	Err       error
}

// Config holds configuration for the controller.
type Config struct {
	IDs []byte
	Hz  int
}

// Controller manages the polling loop.
type Controller struct {
	bus *servo.Bus
	ids []byte
	hz  int

	mu      sync.Mutex
	running bool
	stateCh chan State
	logCh   chan string
}

// NewController creates a controller polling the given servos.
func NewController(bus *servo.Bus, cfg Config) (*Controller, error) {
	if len(cfg.IDs) == 0 {
		return nil, fmt.Errorf("no servo IDs to monitor")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 10
	}
	return &Controller{
		bus:     bus,
		ids:     append([]byte(nil), cfg.IDs...),
		hz:      cfg.Hz,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}, nil
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the poll frequency.
func (c *Controller) Hz() int {
	return c.hz
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start begins the polling loop and blocks until ctx is canceled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	c.log("Monitoring %d servos at %d Hz", len(c.ids), c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log("Monitoring stopped")
			return ctx.Err()
		case <-ticker.C:
			c.step(ctx)
		}
	}
}

func (c *Controller) step(ctx context.Context) {
	readings := make(map[byte]Reading, len(c.ids))

	for _, id := range c.ids {
		s := c.bus.Servo(id)
		r := Reading{ID: id}
		var err error

		if r.Position, err = s.Position(ctx); err != nil {
			c.log("Servo %d position: %v", id, err)
			c.sendState(State{Err: err, Timestamp: time.Now()})
			return
		}
		if r.Voltage, err = s.Voltage(ctx); err != nil {
			c.log("Servo %d voltage: %v", id, err)
			continue
		}
		if r.Temperature, err = s.Temperature(ctx); err != nil {
			c.log("Servo %d temperature: %v", id, err)
			continue
		}
		if r.Error, r.Detail, err = s.Status(ctx); err != nil {
			c.log("Servo %d status: %v", id, err)
		}
		if r.Error.HasError() {
			c.log("Servo %d: %v", id, r.Error)
		}

		readings[id] = r
	}

	c.sendState(State{
		Readings:  readings,
		Timestamp: time.Now(),
	})
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
