// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for driving the magnet",
	Long: `Drive the electromagnet from an interactive terminal UI.

Type a current in amps, then:
  enter   ramp to the entered current
  ctrl+p  pulse: ramp, hold one second, stop and read the field
  ctrl+x  stop the drive and read the field
  esc     quit

Field readings accumulate in the history panel; handshake anomalies and
failures appear in the event log. The UI issues one exchange at a time:
the protocol is strictly sequential, so further input is ignored while a
sequence is on the wire.

Supports both serial and WebSocket connections.`,
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

//////////////////////////////////////////////////////////////
// Styles
//////////////////////////////////////////////////////////////

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	maxReadingHistory = 8
	maxEventLog       = 6
	pulseHold         = time.Second
)

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

// Event log entry
type controlLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Messages
type sequenceDoneMsg struct {
	op      string
	amps    float64
	reading *holmarc.Reading
	err     error
}

type controlModel struct {
	sess     *session
	input    textinput.Model
	spin     spinner.Model
	busy     bool
	busyOp   string
	readings []holmarc.Reading
	log      []controlLogEntry
	width    int
	height   int
	quitting bool
}

func initialControlModel(sess *session) controlModel {
	ti := textinput.New()
	ti.Placeholder = "0.0"
	ti.CharLimit = 10
	ti.Width = 12
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return controlModel{
		sess:  sess,
		input: ti,
		spin:  sp,
	}
}

func (m controlModel) Init() tea.Cmd {
	return textinput.Blink
}

//////////////////////////////////////////////////////////////
// Commands
//////////////////////////////////////////////////////////////

func (m controlModel) doSet(amps float64) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		err := sess.controller.SetCurrent(amps)
		return sequenceDoneMsg{op: "set", amps: amps, err: err}
	}
}

func (m controlModel) doStop() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		reading, err := sess.controller.StopAndQueryField()
		if err != nil {
			return sequenceDoneMsg{op: "stop", err: err}
		}
		return sequenceDoneMsg{op: "stop", reading: &reading}
	}
}

func (m controlModel) doPulse(amps float64) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		reading, err := sess.controller.Pulse(amps, pulseHold)
		if err != nil {
			return sequenceDoneMsg{op: "pulse", amps: amps, err: err}
		}
		return sequenceDoneMsg{op: "pulse", amps: amps, reading: &reading}
	}
}

//////////////////////////////////////////////////////////////
// Update
//////////////////////////////////////////////////////////////

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.busy {
				return m, nil
			}
			amps, ok := m.parseAmps()
			if !ok {
				return m, nil
			}
			m.busy = true
			m.busyOp = fmt.Sprintf("setting %.3f A", amps)
			return m, tea.Batch(m.spin.Tick, m.doSet(amps))

		case "ctrl+p":
			if m.busy {
				return m, nil
			}
			amps, ok := m.parseAmps()
			if !ok {
				return m, nil
			}
			m.busy = true
			m.busyOp = fmt.Sprintf("pulsing %.3f A", amps)
			return m, tea.Batch(m.spin.Tick, m.doPulse(amps))

		case "ctrl+x":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.busyOp = "stopping and querying"
			return m, tea.Batch(m.spin.Tick, m.doStop())
		}

		if m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sequenceDoneMsg:
		m.busy = false
		m.busyOp = ""
		if msg.err != nil {
			m.logf(true, "%s failed: %v", msg.op, msg.err)
			return m, nil
		}
		switch msg.op {
		case "set":
			m.logf(false, "set %.3f A: start sequence complete", msg.amps)
		case "stop":
			m.addReading(*msg.reading)
			m.logf(false, "stopped: field %.1f mT", msg.reading.FieldMilliTesla)
		case "pulse":
			m.addReading(*msg.reading)
			m.logf(false, "pulsed %.3f A: field %.1f mT", msg.amps, msg.reading.FieldMilliTesla)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *controlModel) parseAmps() (float64, bool) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.logf(true, "enter a current in amps first")
		return 0, false
	}
	amps, err := strconv.ParseFloat(text, 64)
	if err != nil {
		m.logf(true, "invalid current %q", text)
		return 0, false
	}
	if _, err := holmarc.EncodeCurrent(amps); err != nil {
		m.logf(true, "%v", err)
		return 0, false
	}
	return amps, true
}

func (m *controlModel) addReading(r holmarc.Reading) {
	for _, v := range holmarc.ValidateReading(r) {
		m.logf(true, "%s", v.Message)
	}
	m.readings = append(m.readings, r)
	if len(m.readings) > maxReadingHistory {
		m.readings = m.readings[len(m.readings)-maxReadingHistory:]
	}
}

func (m *controlModel) logf(isError bool, format string, args ...interface{}) {
	m.log = append(m.log, controlLogEntry{
		timestamp: time.Now(),
		message:   fmt.Sprintf(format, args...),
		isError:   isError,
	})
	if len(m.log) > maxEventLog {
		m.log = m.log[len(m.log)-maxEventLog:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m controlModel) View() string {
	if m.quitting {
		return "Closing connection...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Magnetostat Control"))
	b.WriteString("  " + dimStyle.Render(m.sess.info))
	b.WriteString("\n\n")

	// Input and status line
	status := "idle"
	if m.busy {
		status = m.spin.View() + " " + m.busyOp
	}
	b.WriteString(fmt.Sprintf("Current (A): %s   %s\n\n", m.input.View(), dimStyle.Render(status)))

	// Readings panel
	var readings strings.Builder
	readings.WriteString(headingStyle.Render("Field Readings") + "\n")
	if len(m.readings) == 0 {
		readings.WriteString(dimStyle.Render("(none yet - ctrl+x to stop and query)"))
	} else {
		for i := len(m.readings) - 1; i >= 0; i-- {
			readings.WriteString(holmarc.FormatReading(m.readings[i]))
			if i > 0 {
				readings.WriteString("\n")
			}
		}
	}
	b.WriteString(panelStyle.Render(readings.String()))
	b.WriteString("\n")

	// Event log panel
	var events strings.Builder
	events.WriteString(headingStyle.Render("Events") + "\n")
	if len(m.log) == 0 {
		events.WriteString(dimStyle.Render("(no events)"))
	} else {
		for i, e := range m.log {
			line := fmt.Sprintf("[%s] %s", e.timestamp.Format("15:04:05"), e.message)
			if e.isError {
				line = errorStyle.Render(line)
			}
			events.WriteString(line)
			if i < len(m.log)-1 {
				events.WriteString("\n")
			}
		}
	}
	b.WriteString(panelStyle.Render(events.String()))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("enter set · ctrl+p pulse · ctrl+x stop/query · esc quit"))
	b.WriteString("\n")

	return b.String()
}

//////////////////////////////////////////////////////////////
// Entry point
//////////////////////////////////////////////////////////////

func runControl(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	m := initialControlModel(sess)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
