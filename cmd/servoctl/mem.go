package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gwillem/herkulex/pkg/drs"
)

func findRAM(name string) (drs.RAMRegister, bool) {
	for _, r := range drs.AllRAMRegisters() {
		if r.Name == name {
			return r, true
		}
	}
	return drs.RAMRegister{}, false
}

func findEEP(name string) (drs.EEPRegister, bool) {
	for _, r := range drs.AllEEPRegisters() {
		if r.Name == name {
			return r, true
		}
	}
	return drs.EEPRegister{}, false
}

type ReadCommand struct {
	EEP  bool `long:"eep" description:"Read from EEPROM instead of RAM"`
	Args struct {
		ID       byte   `positional-arg-name:"id"`
		Register string `positional-arg-name:"register" description:"Register name, e.g. position_kp"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ReadCommand) Execute(args []string) error {
	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)

	var value uint16
	if c.EEP {
		reg, ok := findEEP(c.Args.Register)
		if !ok {
			return fmt.Errorf("unknown EEPROM register %q", c.Args.Register)
		}
		value, err = s.ReadEEP(ctx, reg)
	} else {
		reg, ok := findRAM(c.Args.Register)
		if !ok {
			return fmt.Errorf("unknown RAM register %q", c.Args.Register)
		}
		value, err = s.ReadRAM(ctx, reg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s = %d (%#04x)\n", c.Args.Register, value, value)
	return nil
}

type WriteCommand struct {
	EEP  bool `long:"eep" description:"Write to EEPROM instead of RAM (takes effect after reboot)"`
	Args struct {
		ID       byte   `positional-arg-name:"id"`
		Register string `positional-arg-name:"register"`
		Value    string `positional-arg-name:"value" description:"Decimal or 0x-prefixed hex"`
	} `positional-args:"yes" required:"yes"`
}

func (c *WriteCommand) Execute(args []string) error {
	v, err := strconv.ParseUint(c.Args.Value, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", c.Args.Value, err)
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)

	if c.EEP {
		reg, ok := findEEP(c.Args.Register)
		if !ok {
			return fmt.Errorf("unknown EEPROM register %q", c.Args.Register)
		}
		if err := s.WriteEEP(ctx, reg, uint16(v)); err != nil {
			return err
		}
		fmt.Printf("%s = %d written; reboot servo %d to apply\n", c.Args.Register, v, c.Args.ID)
		return nil
	}

	reg, ok := findRAM(c.Args.Register)
	if !ok {
		return fmt.Errorf("unknown RAM register %q", c.Args.Register)
	}
	if err := s.WriteRAM(ctx, reg, uint16(v)); err != nil {
		return err
	}
	fmt.Printf("%s = %d\n", c.Args.Register, v)
	return nil
}
