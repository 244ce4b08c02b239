package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/herkulex/pkg/drs"
)

func confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

type SetIDCommand struct {
	Yes  bool `short:"y" long:"yes" description:"Skip confirmation"`
	Args struct {
		ID    byte `positional-arg-name:"id" description:"Current servo ID"`
		NewID byte `positional-arg-name:"new-id" description:"New servo ID"`
	} `positional-args:"yes" required:"yes"`
}

func (c *SetIDCommand) Execute(args []string) error {
	if c.Args.NewID > drs.MaxID {
		return fmt.Errorf("invalid ID %d, max is %d", c.Args.NewID, drs.MaxID)
	}

	if !c.Yes {
		ok, err := confirm(
			fmt.Sprintf("Change servo %d to ID %d?", c.Args.ID, c.Args.NewID),
			"The change is written to EEPROM and survives reboots.",
		)
		if err != nil || !ok {
			return err
		}
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bus.Servo(c.Args.ID).SetID(ctx, c.Args.NewID); err != nil {
		return err
	}

	fmt.Printf("Servo %d is now ID %d\n", c.Args.ID, c.Args.NewID)
	return nil
}

type RebootCommand struct {
	Args struct {
		ID byte `positional-arg-name:"id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *RebootCommand) Execute(args []string) error {
	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	if err := bus.Servo(c.Args.ID).Reboot(); err != nil {
		return err
	}

	fmt.Printf("Servo %d rebooting\n", c.Args.ID)
	return nil
}

type RollbackCommand struct {
	KeepID   bool `long:"keep-id" description:"Preserve the servo ID"`
	KeepBaud bool `long:"keep-baud" description:"Preserve the baud rate"`
	Yes      bool `short:"y" long:"yes" description:"Skip confirmation"`
	Args     struct {
		ID byte `positional-arg-name:"id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *RollbackCommand) Execute(args []string) error {
	if !c.Yes {
		ok, err := confirm(
			fmt.Sprintf("Reset servo %d to factory defaults?", c.Args.ID),
			"All EEPROM settings including calibration are lost.",
		)
		if err != nil || !ok {
			return err
		}
	}

	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	s := bus.Servo(c.Args.ID)
	if err := s.Rollback(c.KeepID, c.KeepBaud); err != nil {
		return err
	}
	if err := s.Reboot(); err != nil {
		return err
	}

	fmt.Printf("Servo %d reset and rebooting\n", c.Args.ID)
	return nil
}
