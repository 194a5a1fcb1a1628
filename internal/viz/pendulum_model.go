package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rlenv/internal/control"
	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/pendulum"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300
	nudge           = 0.5
	tuneRate        = 0.1
	tuneStep        = 0.1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// tunable is one parameter of the dynamics or the controller that the
// up and down keys rescale while the episode runs.
type tunable struct {
	owner dynamo.Configurable
	name  string
}

// PendulumModel drives a pendulum.Env from the terminal. With a nil
// controller the left and right keys push torque through a control.Manual.
// Tab cycles through the dynamics and controller parameters.
type PendulumModel struct {
	env        *pendulum.Env
	controller dynamo.Controller
	manual     *control.Manual
	frames     *FrameRenderer
	params     []tunable
	selected   int
	running    bool
	episodes   int
	ret        float64
	returns    []float64
	rewards    []float64
	note       string
	err        error
}

func NewPendulumModel(env *pendulum.Env, ctrl dynamo.Controller) PendulumModel {
	m := PendulumModel{
		env:        env,
		controller: ctrl,
		frames:     NewFrameRenderer(nil, canvasWidth, canvasHeight),
		running:    true,
		rewards:    make([]float64, 0, historyCapacity),
	}
	if ctrl == nil {
		hi := env.ActionSpace().High[0]
		m.manual = control.NewManual(hi)
		m.controller = m.manual
	}
	m.params = append(tunables(env.System()), tunables(m.controller)...)
	env.AttachRenderer(m.frames)
	return m
}

func tunables(v any) []tunable {
	c, ok := v.(dynamo.Configurable)
	if !ok {
		return nil
	}
	names := make([]string, 0)
	for name := range c.GetParams() {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]tunable, len(names))
	for i, name := range names {
		out[i] = tunable{owner: c, name: name}
	}
	return out
}

// adjust scales the selected parameter by factor. A zero value moves by
// a fixed step in the direction of the factor instead.
func (m *PendulumModel) adjust(factor float64) {
	if len(m.params) == 0 {
		return
	}
	p := m.params[m.selected]
	v := p.owner.GetParams()[p.name]
	next := v * factor
	if v == 0 {
		next = tuneStep
		if factor < 1 {
			next = -tuneStep
		}
	}
	if err := p.owner.SetParam(p.name, next); err != nil {
		m.note = err.Error()
		return
	}
	m.note = ""
}

func (m PendulumModel) Init() tea.Cmd { return tick() }

func (m PendulumModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "left", "h":
			if m.manual != nil {
				m.manual.Nudge(-nudge)
			}
		case "right", "l":
			if m.manual != nil {
				m.manual.Nudge(nudge)
			}
		case "tab":
			if len(m.params) > 0 {
				m.selected = (m.selected + 1) % len(m.params)
			}
		case "up", "k":
			m.adjust(1 + tuneRate)
		case "down", "j":
			m.adjust(1 - tuneRate)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *PendulumModel) step() {
	snap := m.env.Snapshot()
	u := m.controller.Compute(m.env.State(), float64(snap.Steps)*m.env.Config().Dt)
	tr, err := m.env.StepControl(u)
	if err != nil {
		m.err = err
		return
	}
	m.ret += tr.Reward
	m.rewards = append(m.rewards, tr.Reward)
	if len(m.rewards) > historyCapacity {
		m.rewards = m.rewards[1:]
	}
	if tr.Done {
		m.returns = append(m.returns, m.ret)
		m.episodes++
		m.restart()
	}
}

func (m *PendulumModel) restart() {
	m.env.Reset()
	m.ret = 0
	m.rewards = m.rewards[:0]
	if r, ok := m.controller.(dynamo.Resetter); ok {
		r.Reset()
	}
}

// Episodes is the number of episodes that reached a terminal step.
func (m PendulumModel) Episodes() int { return m.episodes }

func (m PendulumModel) View() string {
	frame, err := m.env.Render(pendulum.ModeANSI)
	if err != nil {
		return "render: " + err.Error() + "\n"
	}
	snap := m.env.Snapshot()

	var s strings.Builder
	s.WriteString(headerStyle.Render("PENDULUM") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusDone.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.rewards) > 1 {
		chart := asciigraph.Plot(m.rewards, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("reward"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(stat("Return", fmt.Sprintf("%.2f", m.ret)))
	s.WriteString(stat("Episodes", fmt.Sprintf("%d", m.episodes)))
	if n := len(m.returns); n > 0 {
		s.WriteString(stat("Last", fmt.Sprintf("%.2f", m.returns[n-1])))
	}
	threshold := m.env.Config().SuccessThreshold
	s.WriteString(stat("Upright", ProgressBar(float64(snap.SuccessSteps)/float64(threshold), 12)))

	if len(m.params) > 0 {
		s.WriteString("\nPARAMETERS\n")
		for i, p := range m.params {
			line := fmt.Sprintf("%-8s %.3f", p.name, p.owner.GetParams()[p.name])
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + valueStyle.Render(line) + "\n")
			}
		}
	}
	if m.note != "" {
		s.WriteString(StatusDone.Render(m.note) + "\n")
	}
	if m.manual != nil {
		s.WriteString(helpStyle.Render("←→:Torque TAB/↑↓:Tune SP:Pause R:Reset Q:Quit"))
	} else {
		s.WriteString(helpStyle.Render("TAB/↑↓:Tune SP:Pause R:Reset Q:Quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(frame), statsStyle.Render(s.String()))
}
