package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/thecube"
	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/gesture"
	"github.com/SeamusWaldron/thecube/internal/logging"
	"github.com/SeamusWaldron/thecube/internal/storage"
)

var playScramble string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the cube in the terminal",
	Long: `Play the cube in an interactive terminal view.

Drag with the mouse to turn layers or the whole cube, or type notation:
lower case turns clockwise (r u f), upper case counter-clockwise (R U F).`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playScramble, "scramble", "", "Scramble sequence for the first game (default: random)")
}

// Terminal cells are mapped onto a pixel viewport of this cell size.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

const frameInterval = 16 * time.Millisecond

// Messages
type tickMsg time.Time

type playModel struct {
	game     *thecube.Game
	scramble string

	result   *thecube.Result
	err      error
	quitting bool
}

func newPlayModel(g *thecube.Game, scramble string) *playModel {
	m := &playModel{game: g, scramble: scramble}
	g.OnComplete(func(r thecube.Result) {
		m.result = &r
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s := m.game.Scheduler(); s.Pending() {
			s.Frame()
		}
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.game.Resize(float64(msg.Width*cellPixelsX), float64(msg.Height*cellPixelsY))
		return m, nil

	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg); ok {
			m.game.HandlePointer(ev)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *playModel) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	m.err = nil
	g := m.game
	switch g.State() {
	case thecube.StatePlaying:
		switch key {
		case "esc":
			m.err = g.Pause()
		default:
			if seq, ok := keyNotation(key); ok {
				m.err = g.Turn(seq)
			}
		}

	case thecube.StateComplete, thecube.StateStats:
		switch key {
		case "q":
			m.quitting = true
			return m, tea.Quit
		default:
			m.err = g.Menu()
		}

	default:
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter":
			m.result = nil
			if m.scramble != "" {
				m.err = g.StartWith(m.scramble)
				m.scramble = ""
			} else {
				m.err = g.Start()
			}
		case "n":
			m.result = nil
			m.err = g.StartWith("")
		case "s":
			m.err = g.ShowStats()
		case "x":
			g.Reset()
		case "0", "1", "2":
			g.SetFlipConfig(int(key[0] - '0'))
		case "t":
			m.err = g.SetTheme(nextTheme(g.Preferences().Theme))
		}
	}
	return m, nil
}

// keyNotation maps a face key to notation: lower case clockwise, upper case
// counter-clockwise.
func keyNotation(key string) (string, bool) {
	if len(key) != 1 || !strings.ContainsAny(strings.ToUpper(key), "UDLRFB") {
		return "", false
	}
	face := strings.ToUpper(key)
	if key == face {
		return face + "'", true
	}
	return face, true
}

func nextTheme(current string) string {
	names := cube.ThemeNames()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// pointerEvent converts a terminal mouse event to a viewport pointer event at
// the center of the cell.
func pointerEvent(msg tea.MouseMsg) (gesture.Event, bool) {
	ev := gesture.Event{
		Source: gesture.Mouse,
		Position: mgl64.Vec2{
			float64(msg.X*cellPixelsX + cellPixelsX/2),
			float64(msg.Y*cellPixelsY + cellPixelsY/2),
		},
	}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = gesture.Press
	case tea.MouseActionMotion:
		ev.Kind = gesture.Motion
	case tea.MouseActionRelease:
		ev.Kind = gesture.Release
	default:
		return ev, false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = gesture.Primary
	case tea.MouseButtonMiddle:
		ev.Button = gesture.Middle
	case tea.MouseButtonRight:
		ev.Button = gesture.Secondary
	}
	return ev, true
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	g := m.game
	var b strings.Builder

	b.WriteString(titleStyle.Render("thecube"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("best %s", formatBest(g.Best().Milliseconds()))))
	b.WriteString("\n\n")

	b.WriteString(renderNet(g.Cube().Facelets(), g.Theme()))
	b.WriteString("\n\n")

	var help string
	switch g.State() {
	case thecube.StatePlaying:
		b.WriteString(phaseStyle.Render(g.Timer().Text()))
		b.WriteString(statusStyle.Render(fmt.Sprintf("  %d moves", g.Moves())))
		b.WriteString("\n")
		b.WriteString(moveStyle.Render(g.Scramble()))
		b.WriteString("\n")
		help = "drag or u d l r f b (shift: prime) • esc: pause"

	case thecube.StateComplete:
		if r := m.result; r != nil {
			line := fmt.Sprintf("SOLVED in %s (%d moves)", r.Text, r.Moves)
			if r.NewBest {
				line += " • new best!"
			}
			b.WriteString(phaseStyle.Render(line))
			b.WriteString("\n")
		}
		help = "any key: menu • q: quit"

	case thecube.StateStats:
		b.WriteString(renderStats(g.Scores()))
		b.WriteString("\n")
		help = "any key: menu • q: quit"

	default:
		p := g.Preferences()
		b.WriteString(statusStyle.Render(fmt.Sprintf("theme %s • flip %d • scramble %d", p.Theme, p.FlipConfig, p.ScrambleLength)))
		b.WriteString("\n")
		help = "space: play/resume • n: new • s: stats • x: reset • 0-2: flip • t: theme • q: quit"
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// gameOptions builds the options shared by every command that runs a game.
func gameOptions(store storage.BestTimeStore) []thecube.Option {
	return []thecube.Option{
		thecube.WithPreferences(prefs),
		thecube.WithBestTimeStore(store),
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to a file beside the
	// database.
	logPath, err := playLogPath()
	if err != nil {
		store.Close()
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	log := logging.New("thecube", logger.GetLevel(), f)

	g, err := thecube.New(append(gameOptions(store), thecube.WithLogger(log))...)
	if err != nil {
		store.Close()
		return err
	}
	defer g.Close()

	p := tea.NewProgram(newPlayModel(g, playScramble), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	fmt.Printf("Log saved to: %s\n", logPath)
	return nil
}

func playLogPath() (string, error) {
	dir := filepath.Dir(prefs.DBPath)
	if prefs.DBPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return "", err
		}
		dir = filepath.Dir(p)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "play.log"), nil
}
