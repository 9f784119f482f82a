// Package tui implements the -tui terminal form. Single mode has one index
// field, range mode a Start/End pair; the panel below shows the most recent
// result.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibrange/internal/cli"
	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/service"
)

// maxShownLines caps how many range values the form renders.
const maxShownLines = 20

// Mode selects what Enter computes.
type Mode int

const (
	ModeSingle Mode = iota
	ModeRange
)

func (m Mode) String() string {
	if m == ModeRange {
		return "Range"
	}
	return "Single"
}

// Config holds the form's settings.
type Config struct {
	// Timeout bounds each computation, 0 for none.
	Timeout time.Duration
	// HexOutput renders values in hexadecimal.
	HexOutput bool
}

// resultMsg carries a finished computation back to Update. Only the first
// maxShownLines values are formatted; hidden counts the rest.
type resultMsg struct {
	generation uint64
	lines      []string
	hidden     int
	elapsed    time.Duration
	err        error
}

// contextDoneMsg is sent when the parent context is canceled.
type contextDoneMsg struct{}

// Model is the bubbletea model of the form.
type Model struct {
	keymap KeyMap
	svc    service.Service
	cfg    Config

	ctx    context.Context
	cancel context.CancelFunc

	mode       Mode
	fields     [2]string
	focus      int
	running    bool
	generation uint64

	status    string
	statusErr bool
	lines     []string
	hidden    int

	quitting bool
	exitCode int
}

// NewModel creates a form bound to svc. The form stops when ctx is done.
func NewModel(ctx context.Context, svc service.Service, cfg Config) Model {
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		keymap:   DefaultKeyMap(),
		svc:      svc,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init starts watching the parent context.
func (m Model) Init() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}

// Update handles key presses and finished computations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.running = false
		if msg.err != nil {
			m.setError(describeError(msg.err))
			m.lines, m.hidden = nil, 0
			return m, nil
		}
		m.lines, m.hidden = msg.lines, msg.hidden
		m.status = "Done in " + cli.FormatExecutionDuration(msg.elapsed)
		m.statusErr = false
		return m, nil

	case contextDoneMsg:
		if !m.quitting {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Mode):
		if m.mode == ModeSingle {
			m.mode = ModeRange
		} else {
			m.mode = ModeSingle
		}
		m.focus = 0
		m.status, m.statusErr = "", false
		return m, nil

	case key.Matches(msg, m.keymap.NextField), key.Matches(msg, m.keymap.PrevField):
		if m.mode == ModeRange {
			m.focus = 1 - m.focus
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if f := m.fields[m.focus]; f != "" {
			m.fields[m.focus] = f[:len(f)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				m.fields[m.focus] += string(r)
			}
		}
	}
	return m, nil
}

// submit validates the fields and starts a computation.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	start, err := strconv.ParseUint(m.fields[0], 10, 64)
	if err != nil {
		m.setError(cli.InvalidNumberMessage)
		return m, nil
	}
	end := start
	if m.mode == ModeRange {
		if end, err = strconv.ParseUint(m.fields[1], 10, 64); err != nil {
			m.setError(cli.InvalidNumberMessage)
			return m, nil
		}
		if end < start {
			m.setError(cli.InvalidRangeMessage)
			m.lines, m.hidden = nil, 0
			return m, nil
		}
	}

	m.generation++
	m.running = true
	m.status, m.statusErr = "Computing...", false
	return m, m.computeCmd(start, end)
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

// computeCmd runs the request off the UI goroutine.
func (m Model) computeCmd(start, end uint64) tea.Cmd {
	ctx, svc, cfg, mode, gen := m.ctx, m.svc, m.cfg, m.mode, m.generation
	return func() tea.Msg {
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}
		began := time.Now()

		if mode == ModeSingle {
			v, err := svc.Single(ctx, start)
			if err != nil {
				return resultMsg{generation: gen, err: err}
			}
			line := fmt.Sprintf("F(%d) = %s", start, cli.FormatValue(v, cfg.HexOutput))
			return resultMsg{generation: gen, lines: []string{line}, elapsed: time.Since(began)}
		}

		values, err := svc.Range(ctx, start, end)
		if err != nil {
			return resultMsg{generation: gen, err: err}
		}
		lines := formatRange(start, values, cfg.HexOutput)
		return resultMsg{generation: gen, lines: lines, hidden: len(values) - len(lines), elapsed: time.Since(began)}
	}
}

// formatRange renders at most maxShownLines values starting at index start.
func formatRange(start uint64, values []*big.Int, hex bool) []string {
	shown := values[:min(len(values), maxShownLines)]
	lines := make([]string, len(shown))
	for i, v := range shown {
		lines[i] = fmt.Sprintf("F(%d) = %s", start+uint64(i), cli.FormatValue(v, hex))
	}
	return lines
}

func describeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Calculation timed out"
	case errors.Is(err, context.Canceled):
		return "Calculation canceled"
	default:
		return "Error: " + err.Error()
	}
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fib"))
	b.WriteString("  ")
	for _, mode := range []Mode{ModeSingle, ModeRange} {
		style := modeIdleStyle
		if mode == m.mode {
			style = modeActiveStyle
		}
		b.WriteString(style.Render("[" + mode.String() + "]"))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if m.mode == ModeSingle {
		b.WriteString(m.renderField("N", 0))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
			m.renderField("Start", 0), "  ", m.renderField("End", 1)))
	}
	b.WriteString("\n")

	if m.status != "" {
		style := statusOKStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	if len(m.lines) > 0 {
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(strings.Join(m.lines, "\n")))
		b.WriteString("\n")
		if m.hidden > 0 {
			fmt.Fprintf(&b, "... and %d more\n", m.hidden)
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return frameStyle.Render(b.String())
}

func (m Model) renderField(label string, idx int) string {
	style := fieldStyle
	value := m.fields[idx]
	if idx == m.focus {
		style = fieldFocusedStyle
		value += "|"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render(label+":"), style.Render(value))
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 4)
	for _, kb := range m.keymap.ShortHelp() {
		h := kb.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// Run shows the form until the user quits or ctx is done and returns the
// process exit code.
func Run(ctx context.Context, svc service.Service, cfg Config) int {
	initStyles()

	model := NewModel(ctx, svc, cfg)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
