package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"go.bug.st/serial"

	"github.com/gwillem/herkulex/pkg/servo"
)

// servo-scan walks every serial port, probes for Herkulex servos and
// writes the result to herkulex.json for servoctl and servo-dash.

const (
	scanFirst = 0
	scanLast  = 30
)

func main() {
	fmt.Println("Herkulex Port Scanner")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	buses := findBuses()

	if len(buses) == 0 {
		fmt.Println("No servos found on any port.")
		fmt.Println("Make sure the servos are connected and powered on.")
		os.Exit(1)
	}

	chosen := buses[0]
	if len(buses) > 1 {
		chosen = chooseBus(buses)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Port:   %s\n", chosen.port)
	fmt.Printf("Servos: %s\n", idList(chosen.ids))
	fmt.Println()

	cfg := servo.FileConfig{
		Port:     chosen.port,
		Baud:     servo.DefaultBaud,
		ServoIDs: chosen.ids,
	}
	if err := cfg.Save(); err != nil {
		fmt.Printf("Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration saved to %s\n", servo.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Inspect servos with:")
	fmt.Println("  servoctl status <id>")
}

type busInfo struct {
	port string
	ids  []byte
}

func findBuses() []busInfo {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}

	var buses []busInfo

	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		bus, err := servo.Open(servo.Config{
			Port:    port,
			Timeout: 50 * time.Millisecond,
		})
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		ids, err := bus.Scan(ctx, scanFirst, scanLast)
		cancel()
		bus.Close()

		if err != nil || len(ids) == 0 {
			continue
		}

		fmt.Printf("  Found %d servo(s) on %s: %s\n", len(ids), port, idList(ids))
		buses = append(buses, busInfo{port: port, ids: ids})
	}

	return buses
}

func chooseBus(buses []busInfo) busInfo {
	options := make([]huh.Option[int], 0, len(buses))
	for i, b := range buses {
		label := fmt.Sprintf("%s (%d servos: %s)", b.port, len(b.ids), idList(b.ids))
		options = append(options, huh.NewOption(label, i))
	}

	var choice int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Multiple servo buses found. Which one to use?").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return buses[choice]
}

func idList(ids []byte) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
