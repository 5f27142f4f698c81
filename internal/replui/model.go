// Package replui implements the interactive REPL front end: a Bubble Tea
// program that feeds completed lines to a *vm.VM and renders its output
// alongside a scrolling transcript, the way the spec's bare "> " loop does
// but with line editing and scrollback.
package replui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loxvm/internal/source"
	"loxvm/internal/vm"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the REPL's Bubble Tea state: line input plus a transcript of
// everything typed and printed so far.
type Model struct {
	vm     *vm.VM
	fs     *source.FileSet
	input  textinput.Model
	lines  []string
	buf    *bytes.Buffer
	width  int
	height int
	color  bool
}

// New wires v's stdout/stderr into an internal buffer this model drains
// after every evaluated line, and returns a ready-to-run Bubble Tea model.
// color mirrors the CLI's --color flag; when false, the prompt and error
// styling degrade to plain text instead of ANSI escapes.
func New(v *vm.VM, color bool) Model {
	ti := textinput.New()
	ti.Placeholder = ""
	if color {
		ti.Prompt = promptStyle.Render("> ")
	} else {
		ti.Prompt = "> "
	}
	ti.Focus()

	buf := &bytes.Buffer{}
	v.Stdout = buf
	v.Stderr = buf

	return Model{
		vm:    v,
		fs:    source.NewFileSet(),
		input: ti,
		buf:   buf,
		color: color,
	}
}

// render applies style to text when color output is enabled, else returns
// text unchanged.
func (m Model) render(style lipgloss.Style, text string) string {
	if !m.color {
		return text
	}
	return style.Render(text)
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.evaluate()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate runs the current input line through the VM and appends both the
// echoed source and any captured stdout/stderr to the transcript.
func (m Model) evaluate() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.lines = append(m.lines, m.render(echoStyle, "> "+line))

	id := m.fs.AddVirtual("<repl>", []byte(line))
	result := m.vm.Interpret(m.fs, id)

	if out := m.buf.String(); out != "" {
		for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if result == vm.ResultOK {
				m.lines = append(m.lines, l)
			} else {
				m.lines = append(m.lines, m.render(errorStyle, l))
			}
		}
		m.buf.Reset()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	return b.String()
}
