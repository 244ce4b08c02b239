package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/herkulex/pkg/drs"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

type ScanCommand struct {
	From byte `long:"from" default:"0" description:"First ID to probe"`
	To   byte `long:"to" default:"30" description:"Last ID to probe"`
}

func (c *ScanCommand) Execute(args []string) error {
	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	fmt.Printf("Scanning IDs %d-%d...\n\n", c.From, c.To)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	found, err := bus.Scan(ctx, c.From, c.To)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(found) == 0 {
		fmt.Println("No servos found.")
		fmt.Println("Check wiring, power and baud rate.")
		return nil
	}

	rows := make([][]string, 0, len(found))
	for _, id := range found {
		s := bus.Servo(id)
		row := []string{fmt.Sprintf("%d", id), "-", "-", "-"}
		if pos, err := s.Position(ctx); err == nil {
			row[1] = fmt.Sprintf("%d", pos)
		}
		if v, err := s.Voltage(ctx); err == nil {
			row[2] = fmt.Sprintf("%d", v)
		}
		if temp, err := s.Temperature(ctx); err == nil {
			row[3] = fmt.Sprintf("%d", temp)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "Position", "Voltage", "Temp").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	fmt.Println(t.Render())
	fmt.Println(successStyle.Render(fmt.Sprintf("%d servo(s) found", len(found))))
	return nil
}

type StatusCommand struct {
	Args struct {
		ID byte `positional-arg-name:"id" description:"Servo ID"`
	} `positional-args:"yes" required:"yes"`
}

func (c *StatusCommand) Execute(args []string) error {
	bus, err := openBus()
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := bus.Servo(c.Args.ID)

	statusErr, detail, err := s.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Servo %d", c.Args.ID)))

	rows := [][]string{
		{"State", detail.String()},
	}
	if statusErr.HasError() {
		rows = append(rows, []string{"Errors", errorStyle.Render(statusErr.Error())})
	} else {
		rows = append(rows, []string{"Errors", successStyle.Render("none")})
	}
	if pos, err := s.Position(ctx); err == nil {
		rows = append(rows, []string{"Position", fmt.Sprintf("%d", pos)})
	}
	if v, err := s.Voltage(ctx); err == nil {
		rows = append(rows, []string{"Voltage", fmt.Sprintf("%d", v)})
	}
	if temp, err := s.Temperature(ctx); err == nil {
		rows = append(rows, []string{"Temperature", fmt.Sprintf("%d", temp)})
	}
	if torque, err := s.ReadRAM(ctx, drs.RAMTorqueControl); err == nil {
		rows = append(rows, []string{"Torque", torqueName(byte(torque))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	fmt.Println(t.Render())

	if statusErr.HasError() {
		fmt.Println(dimStyle.Render("Clear latched errors with: servoctl write <id> status_error 0"))
	}
	return nil
}

func torqueName(v byte) string {
	switch v {
	case drs.TorqueOn:
		return "on"
	case drs.TorqueBreak:
		return "brake"
	case drs.TorqueFree:
		return "off"
	}
	return fmt.Sprintf("%#02x", v)
}
