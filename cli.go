package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// REPL styling follows evosim's titleStyle/infoStyle/eventStyle pattern
// but narrowed to the three registers this REPL needs: a phase banner,
// plain info lines, and error lines. Colors degrade to plain text when
// stdout isn't a terminal (checked via go-isatty in NewReplModel), rather
// than hardcoding truecolor.
var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ReplModel is the Bubble Tea model for the interactive session shell: a
// scrollback plus single-line input, driven by the same Model/Update/View
// loop and textinput/viewport widgets evosim's TUI uses.
type ReplModel struct {
	session *GameSession
	catalog *Catalog
	logger  *Logger

	input    textinput.Model
	view     viewport.Model
	lines    []string
	colorize bool

	quitting bool
}

// NewReplModel builds the REPL over an already-constructed session.
func NewReplModel(session *GameSession, catalog *Catalog, logger *Logger) ReplModel {
	ti := textinput.New()
	ti.Placeholder = "command (help for a list)"
	ti.Focus()
	ti.CharLimit = 200

	vp := viewport.New(80, 20)

	m := ReplModel{
		session:  session,
		catalog:  catalog,
		logger:   logger,
		input:    ti,
		view:     vp,
		colorize: isatty.IsTerminal(os.Stdout.Fd()),
	}
	m.appendLine(m.banner())
	return m
}

func (m ReplModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ReplModel) banner() string {
	text := fmt.Sprintf("week %d · %s · %s", m.session.turn.Week(), m.session.turn.Phase(), formatWeekCountdown(m.session.turn.Week()))
	if m.colorize {
		return bannerStyle.Render(text)
	}
	return text
}

func (m *ReplModel) appendLine(s string) {
	m.lines = append(m.lines, s)
	m.view.SetContent(strings.Join(m.lines, "\n"))
	m.view.GotoBottom()
}

func (m *ReplModel) appendErr(s string) {
	if m.colorize {
		s = errStyle.Render(s)
	}
	m.appendLine(s)
}

func (m ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = msg.Height - 3
		m.input.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.session.Abandon()
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.appendLine("> " + line)
			quit := m.dispatch(line)
			if quit {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ReplModel) View() string {
	if m.quitting {
		return ""
	}
	return m.view.View() + "\n" + m.input.View()
}

// dispatch runs one REPL command line against the command table. Returns
// true if the session should exit.
func (m *ReplModel) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		m.session.Abandon()
		return true
	case "help":
		m.appendLine(helpText)
	case "status":
		m.appendLine(m.renderStatus())
	case "grid":
		m.appendLine(m.renderGrid())
	case "weather":
		m.appendLine(m.renderWeather())
	case "plants":
		m.appendLine(m.renderPlants())
	case "species":
		if len(args) == 1 {
			m.appendLine(m.renderSpecies(args[0]))
		} else {
			m.appendLine(m.renderSpeciesList())
		}
	case "amendments":
		m.appendLine(m.renderAmendments())
	case "log":
		n := 10
		if len(args) == 1 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		m.appendLine(m.renderLog(n))
	case "score":
		m.appendLine(fmt.Sprintf("score: %.2f", m.session.score.Total(m.session.world)))
	case "inspect":
		m.requireRC(args, func(r, c int) { m.appendLine(m.renderInspect(r, c)) })
	case "soil":
		m.requireRC(args, func(r, c int) { m.appendLine(m.renderSoil(r, c)) })
	case "advance":
		if err := m.session.AdvanceToInteractive(); err != nil {
			m.appendErr(err.Error())
		} else {
			m.appendLine(m.banner())
		}
	case "week":
		if m.session.turn.Phase() == PhaseAct {
			res := m.session.endActions()
			if !res.OK {
				m.appendErr(res.Message)
				return false
			}
			if result := m.session.consumeLastDuskResult(); result != nil {
				m.appendLine(m.renderDusk(*result))
			}
		}
		if err := m.session.AdvanceToInteractive(); err != nil {
			m.appendErr(err.Error())
		} else {
			m.appendLine(m.banner())
		}
	case "plant":
		if len(args) != 3 {
			m.appendErr("usage: plant SPECIES R C")
			return false
		}
		r, errR := strconv.Atoi(args[1])
		c, errC := strconv.Atoi(args[2])
		if errR != nil || errC != nil {
			m.appendErr("row/col must be integers")
			return false
		}
		m.runAction(func() ActionResult { return m.session.plantAction(args[0], r, c) })
	case "amend":
		if len(args) != 3 {
			m.appendErr("usage: amend AMENDMENT R C")
			return false
		}
		r, errR := strconv.Atoi(args[1])
		c, errC := strconv.Atoi(args[2])
		if errR != nil || errC != nil {
			m.appendErr("row/col must be integers")
			return false
		}
		m.runAction(func() ActionResult { return m.session.amendAction(args[0], r, c) })
	case "diagnose":
		m.requireRC(args, func(r, c int) {
			m.runAction(func() ActionResult { return m.session.diagnoseAction(r, c) })
		})
	case "intervene":
		if len(args) < 3 {
			m.appendErr("usage: intervene ACTION R C [CONDITION]")
			return false
		}
		r, errR := strconv.Atoi(args[1])
		c, errC := strconv.Atoi(args[2])
		if errR != nil || errC != nil {
			m.appendErr("row/col must be integers")
			return false
		}
		cond := ""
		if len(args) >= 4 {
			cond = args[3]
		}
		m.runAction(func() ActionResult { return m.session.interveneAction(args[0], r, c, cond) })
	case "scout":
		if len(args) != 1 {
			m.appendErr("usage: scout TARGET")
			return false
		}
		m.runAction(func() ActionResult { return m.session.scoutAction(args[0]) })
	case "harvest":
		m.requireRC(args, func(r, c int) {
			m.runAction(func() ActionResult { return m.session.harvestAction(r, c) })
		})
	case "wait":
		m.runAction(func() ActionResult { return m.session.endActions() })
	case "save":
		path := "gardensim-save.json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := m.save(path); err != nil {
			m.appendErr(err.Error())
		} else {
			m.appendLine("saved to " + path)
		}
	default:
		m.appendErr("unknown command: " + cmd)
	}
	return false
}

func (m *ReplModel) requireRC(args []string, fn func(r, c int)) {
	if len(args) != 2 {
		m.appendErr("usage: ... R C")
		return
	}
	r, errR := strconv.Atoi(args[0])
	c, errC := strconv.Atoi(args[1])
	if errR != nil || errC != nil {
		m.appendErr("row/col must be integers")
		return
	}
	fn(r, c)
}

func (m *ReplModel) runAction(fn func() ActionResult) {
	res := fn()
	if !res.OK {
		m.appendErr(res.Message)
		return
	}
	if res.Value != nil {
		m.appendLine(fmt.Sprintf("%v", res.Value))
	} else {
		m.appendLine("ok")
	}
	if result := m.session.consumeLastDuskResult(); result != nil {
		m.appendLine(m.renderDusk(*result))
	}
}

const helpText = `commands:
  status | grid | weather | plants | species [ID] | amendments | log [N] | score
  inspect R C | soil R C
  advance | week
  plant SPECIES R C | amend AMENDMENT R C | diagnose R C | intervene ACTION R C [COND] | scout TARGET | harvest R C
  wait | save [PATH] | quit`
