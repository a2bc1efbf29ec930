// Package tui is a full-screen terminal front end for the calculator.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/format"
	"go.uber.org/zap"
)

// Focus identifies the row receiving key input.
type Focus int

const (
	FocusAmount Focus = iota
	FocusRate
	FocusFrequency
	FocusCustomPeriods
	FocusYears
	focusCount
)

const (
	rateBarWidth = 25
	// pgup/pgdown move the rate one percentage point.
	rateCoarseSteps = 100
)

// Model is the bubbletea model wrapping a calculator session.
type Model struct {
	session calculator.Session
	focus   Focus
	logger  *zap.Logger

	amountInput textinput.Model
	yearsInput  textinput.Model
	customInput textinput.Model

	width int
}

// New returns a model editing session.
func New(session calculator.Session, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		session:     session,
		logger:      logger,
		amountInput: newInput(session.Amount.State.RawText, session.Amount.Placeholder),
		yearsInput:  newInput(session.Years.State.RawText, session.Years.Placeholder),
		customInput: newInput(session.CustomPeriods.State.RawText, session.CustomPeriods.Placeholder),
	}
	m.amountInput.Focus()
	return m
}

func newInput(value, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.CharLimit = 32
	in.Width = 24
	in.SetValue(value)
	in.CursorEnd()
	return in
}

// Session returns the current calculator session.
func (m Model) Session() calculator.Session {
	return m.session
}

// Focus returns the focused row.
func (m Model) Focus() Focus {
	return m.focus
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "ctrl+t":
			m = m.toggleMode()
			return m, nil
		}

		switch m.focus {
		case FocusRate:
			return m.updateRate(msg), nil
		case FocusFrequency:
			return m.updateFrequency(msg), nil
		default:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	m.focus = Focus((int(m.focus) + delta + int(focusCount)) % int(focusCount))
	m.amountInput.Blur()
	m.yearsInput.Blur()
	m.customInput.Blur()
	switch m.focus {
	case FocusAmount:
		m.amountInput.Focus()
	case FocusYears:
		m.yearsInput.Focus()
	case FocusCustomPeriods:
		m.customInput.Focus()
	}
	return m
}

func (m Model) toggleMode() Model {
	next := calculator.PresentValue
	if m.session.Mode == calculator.PresentValue {
		next = calculator.FutureValue
	}
	m.session = m.session.SetMode(next)
	m.amountInput.Placeholder = m.session.Amount.Placeholder
	m.logger.Debug("mode changed",
		zap.String("op", "tui.toggleMode"),
		zap.String("mode", next.String()),
	)
	return m
}

func (m Model) updateRate(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "left", "h", "-":
		m.session = m.session.NudgeRate(-1)
	case "right", "l", "+":
		m.session = m.session.NudgeRate(1)
	case "pgdown":
		m.session = m.session.NudgeRate(-rateCoarseSteps)
	case "pgup":
		m.session = m.session.NudgeRate(rateCoarseSteps)
	case "home":
		m.session = m.session.SetRatePercent(constants.RateSliderMin)
	case "end":
		m.session = m.session.SetRatePercent(constants.RateSliderMax)
	}
	return m
}

func (m Model) updateFrequency(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "left", "h":
		m.session = m.session.SetFrequency(compounding.Previous(m.session.Frequency))
	case "right", "l", " ":
		m.session = m.session.SetFrequency(compounding.Next(m.session.Frequency))
	}
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusAmount:
		m.amountInput, cmd = m.amountInput.Update(msg)
		m.session = m.session.EditAmount(m.amountInput.Value())
	case FocusYears:
		m.yearsInput, cmd = m.yearsInput.Update(msg)
		m.session = m.session.EditYears(m.yearsInput.Value())
	case FocusCustomPeriods:
		m.customInput, cmd = m.customInput.Update(msg)
		m.session = m.session.EditCustomPeriods(m.customInput.Value())
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Time Value of Money"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render("[" + m.session.Mode.String() + "]"))
	b.WriteString("\n\n")

	m.row(&b, FocusAmount, m.session.Amount.Prompt, m.amountInput.View())
	m.fieldError(&b, m.session.Amount.Error())

	m.row(&b, FocusRate, "Annual Interest Rate:", m.rateView())

	m.row(&b, FocusFrequency, "Compounding Frequency:", m.frequencyView())

	m.row(&b, FocusCustomPeriods, m.session.CustomPeriods.Prompt, m.customInput.View())
	m.fieldError(&b, m.session.CustomPeriods.Error())

	m.row(&b, FocusYears, m.session.Years.Prompt, m.yearsInput.View())
	m.fieldError(&b, m.session.Years.Error())

	b.WriteString(resultStyle.Render(m.resultView()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab move • ←/→ adjust • pgup/pgdn ±1% • ctrl+t future/present • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(b *strings.Builder, focus Focus, label, value string) {
	style := labelStyle
	if m.focus == focus {
		style = focusedLabelStyle
	}
	b.WriteString(style.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func (m Model) fieldError(b *strings.Builder, msg string) {
	if msg == "" {
		return
	}
	b.WriteString(errorStyle.Render(msg))
	b.WriteString("\n")
}

func (m Model) rateView() string {
	percent := m.session.RatePercent()
	span := constants.RateSliderMax - constants.RateSliderMin
	filled := int(math.Round((percent - constants.RateSliderMin) / span * rateBarWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > rateBarWidth {
		filled = rateBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", rateBarWidth-filled)
	return valueStyle.Render(fmt.Sprintf("%-9s %s", format.Percent(m.session.Rate), bar))
}

func (m Model) frequencyView() string {
	f := m.session.Frequency
	name := f.DisplayName()
	if f.IsCustom() {
		name = fmt.Sprintf("Custom (%s per year)", format.Number(f.PeriodsPerYear()))
	}
	return valueStyle.Render("‹ " + name + " ›")
}

func (m Model) resultView() string {
	r := m.session.Result()
	if r.Err != nil {
		return r.Description + "\n" + errorStyle.Render(r.Err.Error())
	}
	return r.Description + "\n" + amountStyle.Render("$"+r.Formatted)
}

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, session calculator.Session, logger *zap.Logger) error {
	p := tea.NewProgram(New(session, logger), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
