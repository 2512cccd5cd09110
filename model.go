package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"qgrover/circuit"
	"qgrover/sim"
	"qgrover/synth"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusInputParam
)

// sampleMsg carries the result of a background sampling run.
type sampleMsg struct {
	hist sim.Histogram
	err  error
}

// Model is the viewer state. The circuit is immutable; every rebuild
// replaces it along with its grid and QASM listing.
type Model struct {
	builder    synth.Builder
	args       []int
	circuit    *circuit.Circuit
	layout     *synth.Layout // nil for circuits opened from QASM
	grid       grid
	cursorStep int
	width      int
	height     int
	qasmView   textarea.Model
	focus      focus
	statusMsg  string // transient status message (e.g. save confirmation)
	errMsg     string

	// Picker state
	menuItem   int
	paramInput string

	runner   sim.Runner
	shots    int
	hist     sim.Histogram
	savePath string
	logger   *zap.Logger
}

func initialModel(runner sim.Runner, shots int, logger *zap.Logger) Model {
	ta := textarea.New()
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0

	return Model{
		qasmView: ta,
		focus:    focusCircuit,
		runner:   runner,
		shots:    shots,
		logger:   logger,
	}
}

// load builds a circuit from a builder and shows it.
func (m *Model) load(b synth.Builder, args []int) error {
	c, layout, err := b.BuildLayout(args...)
	if err != nil {
		return err
	}
	m.show(built{builder: b, args: args, circuit: c, layout: &layout})
	return nil
}

func (m *Model) show(bc built) {
	m.builder, m.args = bc.builder, bc.args
	m.savePath = bc.builder.Name + ".qasm"
	m.setCircuit(bc.circuit, bc.layout)
	m.logger.Debug("viewer loaded circuit",
		zap.String("builder", bc.builder.Name),
		zap.Ints("args", bc.args),
		zap.Int("qubits", bc.circuit.NumQubits()),
		zap.Int("gates", bc.circuit.Len()))
}

func (m *Model) setCircuit(c *circuit.Circuit, layout *synth.Layout) {
	m.circuit = c
	m.layout = layout
	m.grid = layoutGrid(c, layout)
	m.cursorStep = 0
	m.hist = nil
	m.qasmView.SetValue(c.ToQASM())
	for m.qasmView.Line() > 0 {
		m.qasmView.CursorUp()
	}
}

func (m Model) title() string {
	if m.builder.Name == "" {
		return m.savePath
	}
	return fmt.Sprintf("%s(%s)", m.builder.Name, formatArgs(m.args))
}

// sampleCmd samples the circuit with the input qubits in uniform superposition.
func (m Model) sampleCmd() tea.Cmd {
	c, layout, runner, shots := m.circuit, m.layout, m.runner, m.shots
	return func() tea.Msg {
		prepared, err := prepareInput(c, layout, nil, true)
		if err != nil {
			return sampleMsg{err: err}
		}
		h, err := runner.Run(context.Background(), prepared, shots)
		return sampleMsg{hist: h, err: err}
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmView.SetWidth(max(msg.Width/3-6, 20))
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		m.qasmView.SetHeight(max(circH-8, 4))

	case sampleMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Sample error: %v", msg.err)
			break
		}
		m.hist = msg.hist
		m.statusMsg = fmt.Sprintf("Sampled %d shots", msg.hist.Total())

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			m.errMsg = ""
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				cmds = append(cmds, m.qasmView.Focus())
			case "ctrl+s":
				if err := os.WriteFile(m.savePath, []byte(m.circuit.ToQASM()), 0o644); err != nil {
					m.errMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved " + m.savePath
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.grid.steps-1 {
					m.cursorStep++
				}
			case "home":
				m.cursorStep = 0
			case "end":
				m.cursorStep = max(m.grid.steps-1, 0)
			case "a":
				m.focus = focusMenu
			case "e":
				if m.builder.Name != "" {
					m.menuItem = menuIndex(m.builder.Name)
					m.paramInput = formatArgs(m.args)
					m.focus = focusInputParam
				}
			case "r":
				m.statusMsg = "Sampling…"
				cmds = append(cmds, m.sampleCmd())
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(circuitMenu)-1 {
					m.menuItem++
				}
			case "enter":
				m.paramInput = ""
				m.focus = focusInputParam
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.paramInput = ""
				m.focus = focusCircuit
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				args, err := parseArgs(m.paramInput)
				if err == nil {
					err = m.load(circuitMenu[m.menuItem].builder, args)
				}
				if err != nil {
					m.errMsg = err.Error()
				}
				m.paramInput = ""
				m.focus = focusCircuit
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == ',' || ch == ' ' || ch == 'b' || ch == '-' {
						m.paramInput += key
					}
				}
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmView.Blur()
			case "up", "down":
				// The listing is read-only; only cursor movement reaches it.
				var cmd tea.Cmd
				m.qasmView, cmd = m.qasmView.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func menuIndex(name string) int {
	for i, item := range circuitMenu {
		if item.builder.Name == name {
			return i
		}
	}
	return 0
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}
