package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/gwillem/herkulex/pkg/servo"
)

type Options struct {
	Port    string `short:"p" long:"port" description:"Serial port (defaults to the port in herkulex.json)"`
	Baud    int    `long:"baud" description:"Baud rate" default:"115200"`
	Verbose bool   `short:"v" long:"verbose" description:"Log bus traffic to stderr"`

	Scan     ScanCommand     `command:"scan" description:"Probe a range of IDs for servos"`
	Status   StatusCommand   `command:"status" description:"Show a servo's state and error flags"`
	Move     MoveCommand     `command:"move" description:"Move a servo to an absolute position"`
	Speed    SpeedCommand    `command:"speed" description:"Spin a servo at a constant speed"`
	Torque   TorqueCommand   `command:"torque" description:"Set torque mode (on, off, brake)"`
	LED      LEDCommand      `command:"led" description:"Set the servo LED color"`
	Read     ReadCommand     `command:"read" description:"Read a register by name"`
	Write    WriteCommand    `command:"write" description:"Write a register by name"`
	SetID    SetIDCommand    `command:"set-id" description:"Assign a new servo ID"`
	Reboot   RebootCommand   `command:"reboot" description:"Reboot a servo"`
	Rollback RollbackCommand `command:"rollback" description:"Reset a servo to factory defaults"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "servoctl - command line control for Herkulex DRS servos"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// openBus connects using the global flags, falling back to
// herkulex.json when no port is given.
func openBus() (*servo.Bus, error) {
	cfg := servo.Config{Port: opts.Port, Baud: opts.Baud}
	if cfg.Port == "" {
		fc, err := servo.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("no --port given and no %s found; run servo-scan first", servo.DefaultConfigFile)
		}
		cfg = fc.BusConfig()
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.TraceLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	cfg.Logger = &logger

	return servo.Open(cfg)
}
