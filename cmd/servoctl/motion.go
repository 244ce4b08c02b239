package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gwillem/herkulex/pkg/drs"
)

// parseColor maps a color name to jog LED bits.
func parseColor(name string) (drs.LEDColor, error) {
	switch name {
	case "off", "":
		return drs.LEDOff, nil
	case "green":
		return drs.LEDGreen, nil
	case "blue":
		return drs.LEDBlue, nil
	case "red":
		return drs.LEDRed, nil
	case "white":
		return drs.LEDGreen | drs.LEDBlue | drs.LEDRed, nil
	}
	return 0, fmt.Errorf("unknown color %q (off, green, blue, red, white)", name)
}

type MoveCommand struct {
	Playtime byte   `long:"playtime" default:"60" description:"Travel time in 11.2ms units"`
	Color    string `long:"color" default:"green" description:"LED color while moving"`
	Args     struct {
		ID       byte   `positional-arg-name:"id"`
		Position uint16 `positional-arg-name:"position" description:"Goal position (0-1023)"`
	} `positional-args:"yes" required:"yes"`
}

func (c *MoveCommand) Execute(args []string) error {
	if c.Args.Position > drs.MaxPosition {
		return fmt.Errorf("position %d out of range (max %d)", c.Args.Position, drs.MaxPosition)
	}
	color, err := parseColor(c.Color)
	if err != nil {
		return err
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)
	if err := s.EnableTorque(ctx); err != nil {
		return fmt.Errorf("enable torque: %w", err)
	}
	if err := s.SetPosition(c.Args.Position, c.Playtime, color); err != nil {
		return err
	}

	fmt.Printf("Servo %d moving to %d\n", c.Args.ID, c.Args.Position)
	return nil
}

type SpeedCommand struct {
	CCW      bool   `long:"ccw" description:"Spin counterclockwise"`
	Playtime byte   `long:"playtime" default:"60" description:"Ramp time in 11.2ms units"`
	Color    string `long:"color" default:"blue" description:"LED color while spinning"`
	Args     struct {
		ID    byte   `positional-arg-name:"id"`
		Speed uint16 `positional-arg-name:"speed" description:"Speed (0-1023, 0 stops)"`
	} `positional-args:"yes" required:"yes"`
}

func (c *SpeedCommand) Execute(args []string) error {
	if c.Args.Speed > drs.MaxSpeed {
		return fmt.Errorf("speed %d out of range (max %d)", c.Args.Speed, drs.MaxSpeed)
	}
	color, err := parseColor(c.Color)
	if err != nil {
		return err
	}
	rotation := drs.Clockwise
	if c.CCW {
		rotation = drs.Counterclockwise
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)
	if err := s.EnableTorque(ctx); err != nil {
		return fmt.Errorf("enable torque: %w", err)
	}
	if err := s.SetSpeed(c.Args.Speed, rotation, c.Playtime, color); err != nil {
		return err
	}

	fmt.Printf("Servo %d spinning at %d\n", c.Args.ID, c.Args.Speed)
	return nil
}

type TorqueCommand struct {
	Args struct {
		ID   byte   `positional-arg-name:"id"`
		Mode string `positional-arg-name:"mode" description:"on, off or brake"`
	} `positional-args:"yes" required:"yes"`
}

func (c *TorqueCommand) Execute(args []string) error {
	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)
	switch c.Args.Mode {
	case "on":
		err = s.EnableTorque(ctx)
	case "off":
		err = s.DisableTorque(ctx)
	case "brake":
		err = s.Brake(ctx)
	default:
		return fmt.Errorf("unknown torque mode %q (on, off, brake)", c.Args.Mode)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Servo %d torque: %s\n", c.Args.ID, c.Args.Mode)
	return nil
}

type LEDCommand struct {
	Args struct {
		ID    byte   `positional-arg-name:"id"`
		Color string `positional-arg-name:"color" description:"off, green, blue, red or white"`
	} `positional-args:"yes" required:"yes"`
}

func (c *LEDCommand) Execute(args []string) error {
	color, err := parseColor(c.Args.Color)
	if err != nil {
		return err
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bus.Servo(c.Args.ID).SetLED(ctx, color); err != nil {
		return err
	}

	fmt.Printf("Servo %d LED: %s\n", c.Args.ID, c.Args.Color)
	return nil
}
