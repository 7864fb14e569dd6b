package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/markovsim/internal/app"
	"github.com/san-kum/markovsim/internal/markov"
	"github.com/san-kum/markovsim/internal/matrixio"
	"github.com/san-kum/markovsim/internal/viz"
)

const defaultFrameDelay = 300 * time.Millisecond

type mode int

const (
	modeEdit mode = iota
	modeResults
)

type model struct {
	ctrl *app.Controller

	mode    mode
	// values holds the active matrix; cells holds text only for cells the
	// user has edited since it was loaded.
	values  markov.Matrix
	cells   [markov.NumStates][markov.NumStates]string
	row     int
	col     int
	editing bool
	editBuf string

	initial markov.State
	days    int

	calc    *app.Calculation
	frame   int
	playing bool
	delay   time.Duration

	status string
	err    string

	width  int
	height int
}

type Option func(*model)

// WithFrameDelay sets the playback interval between simulated days.
func WithFrameDelay(d time.Duration) Option {
	return func(m *model) { m.delay = d }
}

func NewModel(ctrl *app.Controller, initial markov.State, days int, opts ...Option) model {
	m := model{
		ctrl:    ctrl,
		initial: initial,
		days:    days,
		delay:   defaultFrameDelay,
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.days = m.clampDays(m.days)
	m.loadCells(ctrl.Matrix())
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctrl *app.Controller, initial markov.State, days int, opts ...Option) error {
	p := tea.NewProgram(NewModel(ctrl, initial, days, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.playing || m.calc == nil {
			return m, nil
		}
		if m.frame < len(m.calc.History) {
			m.frame++
		}
		if m.frame >= len(m.calc.History) {
			m.playing = false
			m.status = fmt.Sprintf("P^%d computed", m.calc.Days)
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < markov.NumStates-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < markov.NumStates-1 {
			m.col++
		}
	case "enter":
		m.editing = true
		m.editBuf = m.cellInput(m.row, m.col)
	case "tab", "s":
		m.initial = markov.State((int(m.initial) + 1) % markov.NumStates)
		m.clearResults()
	case "+", "=":
		m.days = m.clampDays(m.days + 1)
	case "-", "_":
		m.days = m.clampDays(m.days - 1)
	case "c":
		return m.calculate()
	case "r":
		m.ctrl.Reset()
		m.loadCells(m.ctrl.Matrix())
		m.clearResults()
		m.status = "matrix reset to default"
	case " ", "p":
		if m.calc != nil && m.frame < len(m.calc.History) {
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		}
	case "esc":
		m.clearResults()
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// an emptied cell reads as zero
		m.cells[m.row][m.col] = m.editBuf
		if m.editBuf == "" {
			m.cells[m.row][m.col] = "0"
		}
		m.editing = false
		m.editBuf = ""
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == ',' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

// calculate reads the edited table, activates it and starts playback.
func (m model) calculate() (model, tea.Cmd) {
	m.err = ""
	rows := m.values.Rows()
	for i := range rows {
		for j := range rows[i] {
			if m.cells[i][j] == "" {
				continue
			}
			v, err := matrixio.ParseCell(m.cells[i][j])
			if err != nil {
				m.err = fmt.Sprintf("invalid value in cell %d,%d: %q", i+1, j+1, m.cells[i][j])
				return m, nil
			}
			rows[i][j] = v
		}
	}
	if err := m.ctrl.Apply(rows); err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.loadCells(m.ctrl.Matrix())

	calc, err := m.ctrl.Calculate(app.Request{Days: m.days, Initial: m.initial.String()})
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.calc = calc
	m.mode = modeResults
	m.frame = 0
	m.playing = true
	m.status = "simulating..."
	return m, m.tick()
}

func (m *model) loadCells(p markov.Matrix) {
	m.values = p
	m.cells = [markov.NumStates][markov.NumStates]string{}
}

// cellText is what the table shows for a cell.
func (m model) cellText(i, j int) string {
	if m.cells[i][j] != "" {
		return m.cells[i][j]
	}
	return fmt.Sprintf("%.2f", m.values[i][j])
}

// cellInput seeds the edit buffer with the exact value so that confirming an
// untouched cell does not round it.
func (m model) cellInput(i, j int) string {
	if m.cells[i][j] != "" {
		return m.cells[i][j]
	}
	return strconv.FormatFloat(m.values[i][j], 'f', -1, 64)
}

func (m *model) clearResults() {
	m.mode = modeEdit
	m.calc = nil
	m.frame = 0
	m.playing = false
	m.err = ""
}

func (m model) clampDays(n int) int {
	if n < 1 {
		return 1
	}
	if limit := m.ctrl.MaxDays(); n > limit {
		return limit
	}
	return n
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(viz.HeaderStyle.Render("☀️ ☁️ 🌧️  weather markov chain"))
	b.WriteString("\n\n")

	b.WriteString(viz.BoxWithTitle("transition matrix P", m.renderEditor()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s    %s %s\n",
		viz.MetricLabel.Render("initial:"), viz.StateLabel(m.initial),
		viz.MetricLabel.Render("days:"), viz.MetricValue.Render(fmt.Sprint(m.days)),
	))

	if m.err != "" {
		b.WriteString("\n" + viz.ErrorText.Render(m.err) + "\n")
	}

	if m.mode == modeResults && m.calc != nil {
		b.WriteString("\n" + viz.Separator(m.width/2) + "\n\n")
		b.WriteString(m.renderResults())
	}

	if m.status != "" {
		b.WriteString("\n" + viz.OKText.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render("arrows move · enter edit · tab initial · +/- days · c calculate · space pause · r reset · q quit"))
	return b.String()
}

func (m model) renderEditor() string {
	cell := lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	label := lipgloss.NewStyle().Width(10)

	var b strings.Builder
	b.WriteString(label.Render(""))
	for _, s := range markov.States() {
		b.WriteString(cell.Inherit(viz.LookOf(s).Style()).Render(s.String()))
	}
	for i, from := range markov.States() {
		b.WriteString("\n")
		b.WriteString(label.Inherit(viz.LookOf(from).Style()).Render(from.String()))
		for j := range markov.States() {
			text := m.cellText(i, j)
			if i == m.row && j == m.col {
				if m.editing {
					text = m.editBuf + "▏"
				}
				b.WriteString(cell.Inherit(viz.Selected).Render(text))
				continue
			}
			b.WriteString(cell.Render(text))
		}
	}
	return b.String()
}

func (m model) renderResults() string {
	c := m.calc
	var b strings.Builder

	b.WriteString(viz.BoxWithTitle(fmt.Sprintf("P^%d", c.Days), viz.RenderMatrix(c.Power, 4, -1, -1)))
	b.WriteString("\n")
	b.WriteString(viz.BoxWithTitle(fmt.Sprintf("day %d from %s", c.Days, c.Initial), viz.RenderDistribution(c.Marginal)))
	b.WriteString("\n")
	b.WriteString(viz.RenderMostLikely(c.Days, c.MostLikely.State, c.MostLikely.Probability))
	b.WriteString("\n")
	if series, err := viz.MarginalSeries(m.ctrl.Engine(), c.Initial, c.Days); err == nil {
		for _, s := range markov.States() {
			b.WriteString(fmt.Sprintf("%s %-9s %s\n", viz.LookOf(s).Icon, s.String(), viz.Sparkline(series[s])))
		}
	}
	b.WriteString("\n")

	if m.frame > 0 && m.frame <= len(c.History) {
		today := c.History[m.frame-1]
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			viz.MetricLabel.Render("day"),
			viz.MetricValue.Render(fmt.Sprintf("%d/%d", m.frame, len(c.History))),
			viz.StateLabel(today),
		))
	}
	b.WriteString(viz.RenderHistory(c.History, m.frame))
	b.WriteString("\n")

	if !m.playing && m.frame >= len(c.History) {
		b.WriteString("\n")
		b.WriteString(viz.BoxWithTitle("simulated history", viz.RenderStats(c.Stats)))
		if c.Stationary != nil {
			b.WriteString("\n")
			b.WriteString(viz.BoxWithTitle("long run", viz.RenderDistribution(c.Stationary)))
		}
	}
	return b.String()
}
