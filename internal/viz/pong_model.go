package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rlenv/internal/pong"
)

// Terminals report key presses but not releases, so a press holds the
// paddle direction for this many ticks.
const holdTicks = 6

// PongModel lets the player steer the right paddle with the arrow keys
// against the policy-driven left paddle.
type PongModel struct {
	game    *pong.Game
	canvas  *Canvas
	input   pong.Input
	hold    int
	running bool
	ticks   int
}

func NewPongModel(g *pong.Game) PongModel {
	return PongModel{
		game:    g,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
	}
}

func (m PongModel) Init() tea.Cmd { return tick() }

func (m PongModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.input, m.hold = pong.Up, holdTicks
		case "down", "j":
			m.input, m.hold = pong.Down, holdTicks
		}
	case TickMsg:
		if m.running {
			m.game.Tick(m.input)
			m.ticks++
			if m.hold > 0 {
				m.hold--
			}
			if m.hold == 0 {
				m.input = pong.Idle
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m PongModel) Ticks() int { return m.ticks }

func (m PongModel) View() string {
	w := m.game.World()
	m.canvas.Clear()
	DrawPong(m.canvas, w, m.game.Config())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PONG") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	s.WriteString(stat("Policy", fmt.Sprintf("%d", w.OpponentScore)))
	s.WriteString(stat("You", fmt.Sprintf("%d", w.PlayerScore)))
	s.WriteString(stat("Tick", fmt.Sprintf("%d", m.ticks)))
	key := m.game.StateKey()
	s.WriteString(stat("State", key.String()))
	s.WriteString(helpStyle.Render("↑↓:Move SP:Pause Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
}
