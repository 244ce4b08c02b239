package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/herkulex/pkg/drs"
	"github.com/gwillem/herkulex/pkg/monitor"
	"github.com/gwillem/herkulex/pkg/servo"
)

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Distinct trace colors, reused round-robin past eight servos.
var traceColors = []string{"196", "208", "226", "46", "51", "201", "21", "135"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	ctrl     *monitor.Controller
	ids      []byte
	chart    *streamlinechart.Model
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	last     monitor.State
	quitting bool
}

func (m *model) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg monitor.State
type logMsg string

func waitForState(ctrl *monitor.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *monitor.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *model) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *model) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func traceName(id byte) string {
	return fmt.Sprintf("servo %d", id)
}

func initialModel(ctrl *monitor.Controller, ids []byte) model {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(0, float64(drs.MaxPosition)),
	)

	for i, id := range ids {
		color := traceColors[i%len(traceColors)]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(traceName(id), runes.ThinLineStyle, style)
	}

	return model{
		ctrl:  ctrl,
		ids:   ids,
		chart: &chart,
	}
}

func (m model) Init() tea.Cmd {
	// Start listening for state and log updates
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := monitor.State(msg)
		if state.Readings != nil {
			for _, id := range m.ids {
				if r, ok := state.Readings[id]; ok {
					m.chart.PushDataSet(traceName(id), float64(r.Position))
				}
			}
			m.chart.DrawAll()
			m.last = state
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Dashboard stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Herkulex Dashboard"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(m.renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m model) renderLegend() string {
	var items []string
	for i, id := range m.ids {
		color := traceColors[i%len(traceColors)]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + traceName(id)
		if r, ok := m.last.Readings[id]; ok {
			item += statusStyle.Render(fmt.Sprintf(" %d", r.Position))
		}
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func main() {
	var (
		port = flag.String("port", "", "Serial port (optional if herkulex.json exists)")
		hz   = flag.Int("hz", 10, "Poll frequency")
	)
	flag.Parse()

	cfg := servo.Config{Port: *port}
	var ids []byte

	fileCfg, err := servo.LoadConfig()
	if err == nil {
		if cfg.Port == "" {
			cfg = fileCfg.BusConfig()
		}
		ids = fileCfg.ServoIDs
		fmt.Printf("Loaded configuration from %s\n", servo.DefaultConfigFile)
	}
	if cfg.Port == "" {
		fmt.Fprintf(os.Stderr, "No port specified and cannot load %s\n", servo.DefaultConfigFile)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run servo-scan to detect and configure the bus,")
		fmt.Fprintln(os.Stderr, "or specify the port manually with --port")
		os.Exit(1)
	}

	bus, err := servo.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open bus: %v", err)
	}
	defer bus.Close()

	if len(ids) == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		ids, err = bus.Scan(ctx, 0, 30)
		cancel()
		if err != nil || len(ids) == 0 {
			log.Fatalf("No servos found on %s", cfg.Port)
		}
	}

	ctrl, err := monitor.NewController(bus, monitor.Config{IDs: ids, Hz: *hz})
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	// Start controller in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Controller error: %v", err)
		}
	}()

	// Run TUI
	p := tea.NewProgram(initialModel(ctrl, ids), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
