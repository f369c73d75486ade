// Package tui provides a terminal explorer for muco
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/muco/pkg/converter"
	"github.com/james-see/muco/pkg/notation"
	"github.com/james-see/muco/pkg/theory"
)

// Manuscript colour scheme: ink on paper with brass highlights
var (
	inkBlue   = lipgloss.Color("#5B8DEF")
	brass     = lipgloss.Color("#E0B040")
	paper     = lipgloss.Color("#E8E4D8")
	staffGray = lipgloss.Color("#2A2A33")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(inkBlue).
			Background(staffGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(paper).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(inkBlue).
			Bold(true).
			PaddingLeft(2)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(brass).
				PaddingLeft(4)

	statusStyle = lipgloss.NewStyle().
			Foreground(brass).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(inkBlue).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(inkBlue).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateInput
	StateFilePicker
	StateRendering
	StateResult
)

// Action is what a menu entry computes
type Action int

const (
	ActionChord Action = iota
	ActionScale
	ActionKeySignature
	ActionEnharmonics
	ActionInterval
	ActionTranspose
	ActionCircle
	ActionRenderMIDI
	ActionRenderWAV
	ActionExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Placeholder string
	Action      Action
}

var menuItems = []MenuItem{
	{Title: "Chord", Description: "Spell a chord from a root and a type", Placeholder: "Bb4 minor7", Action: ActionChord},
	{Title: "Scale", Description: "Spell a major or natural minor scale", Placeholder: "F# major", Action: ActionScale},
	{Title: "Key signature", Description: "Count the sharps or flats of a key", Placeholder: "Eb major", Action: ActionKeySignature},
	{Title: "Enharmonics", Description: "Respell a pitch class", Placeholder: "Db", Action: ActionEnharmonics},
	{Title: "Interval", Description: "Name the interval between two pitches", Placeholder: "C4 G4", Action: ActionInterval},
	{Title: "Transpose", Description: "Move a note by an interval", Placeholder: "C4 P5 up", Action: ActionTranspose},
	{Title: "Circle of fifths", Description: "Show major keys and their relative minors", Action: ActionCircle},
	{Title: "Notation → MIDI", Description: "Render a notation file (.mcn) to a MIDI file", Action: ActionRenderMIDI},
	{Title: "Notation → WAV", Description: "Render a notation file (.mcn) to WAV audio", Action: ActionRenderWAV},
	{Title: "Exit", Description: "Exit the application", Action: ActionExit},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	input        textinput.Model
	filePicker   filepicker.Model
	spinner      spinner.Model
	theory       *theory.Theory
	opts         converter.Options
	item         MenuItem
	query        string
	result       string
	selectedFile string
	outputFile   string
	err          error
	width        int
	height       int
}

// renderDoneMsg signals render completion
type renderDoneMsg struct {
	outputFile string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New(th *theory.Theory, opts converter.Options) Model {
	if th == nil {
		th = theory.Default()
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".mcn", ".txt"}
	fp.CurrentDirectory, _ = os.Getwd()

	ti := textinput.New()
	ti.Prompt = "♪ "
	ti.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(inkBlue)

	return Model{
		state:      StateMenu,
		input:      ti,
		filePicker: fp,
		spinner:    s,
		theory:     th,
		opts:       opts,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive all messages
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateRendering
			return m, tea.Batch(m.spinner.Tick, m.performRender())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateInput:
			return m.updateInput(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case renderDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		m.item = menuItems[m.menuIndex]
		switch m.item.Action {
		case ActionExit:
			return m, tea.Quit
		case ActionCircle:
			m.query = ""
			m.result, m.err = evaluate(m.theory, ActionCircle, "")
			m.state = StateResult
			return m, nil
		case ActionRenderMIDI, ActionRenderWAV:
			m.state = StateFilePicker
			return m, m.filePicker.Init()
		}
		m.input.Reset()
		m.input.Placeholder = m.item.Placeholder
		m.state = StateInput
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.state = StateMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.query = strings.TrimSpace(m.input.Value())
		m.result, m.err = evaluate(m.theory, m.item.Action, m.query)
		m.input.Blur()
		m.state = StateResult
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.result = ""
		m.query = ""
		m.selectedFile = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performRender() tea.Cmd {
	format := converter.FormatMIDI
	if m.item.Action == ActionRenderWAV {
		format = converter.FormatWAV
	}
	path, opts := m.selectedFile, m.opts
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return renderDoneMsg{err: err}
		}
		seq, err := notation.ParseSequence(string(data))
		if err != nil {
			return renderDoneMsg{err: err}
		}
		outputFile := converter.OutputPath(path, format)
		if err := converter.New(opts).RenderFile(seq, outputFile); err != nil {
			return renderDoneMsg{err: err}
		}
		return renderDoneMsg{outputFile: outputFile}
	}
}

// evaluate runs one theory query typed into the input field.
func evaluate(th *theory.Theory, action Action, input string) (string, error) {
	args := strings.Fields(input)
	arg := func(i int, fallback string) string {
		if i < len(args) {
			return args[i]
		}
		return fallback
	}

	switch action {
	case ActionChord:
		if len(args) != 2 {
			return "", errors.New("enter a root and a chord type, e.g. Bb4 minor7")
		}
		notes, err := th.ChordOf(args[0], args[1])
		if err != nil {
			return "", err
		}
		return strings.Join(theory.Names(notes), " "), nil

	case ActionScale:
		if len(args) == 0 {
			return "", errors.New("enter a root and a mode, e.g. F# major")
		}
		notes, err := th.ScaleOf(args[0], arg(1, "major"))
		if err != nil {
			return "", err
		}
		return strings.Join(theory.Names(notes), " "), nil

	case ActionKeySignature:
		if len(args) == 0 {
			return "", errors.New("enter a tonic and a mode, e.g. Eb major")
		}
		ks, err := th.KeySignatureOf(args[0], arg(1, "major"))
		if err != nil {
			return "", err
		}
		notes := theory.Names(th.Keys.SignatureNotes(ks))
		if len(notes) == 0 {
			return fmt.Sprintf("%s %s: no sharps or flats", ks.Tonic, ks.Mode), nil
		}
		return fmt.Sprintf("%s %s: %s (%s)", ks.Tonic, ks.Mode, ks, strings.Join(notes, " ")), nil

	case ActionEnharmonics:
		if len(args) != 1 {
			return "", errors.New("enter one pitch class, e.g. Db")
		}
		pc, err := theory.ParsePitchClass(args[0])
		if err != nil {
			return "", err
		}
		er := th.Enharmonics
		all := theory.Names(er.AllEnharmonics(pc))
		return fmt.Sprintf("%s → %s (all spellings: %s)", pc, er.EnharmonicOf(pc), strings.Join(all, " ")), nil

	case ActionInterval:
		if len(args) != 2 {
			return "", errors.New("enter two pitches, e.g. C4 G4")
		}
		n, err := th.IntervalBetween(args[0], args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s (%d semitones)", n, n.Semitones()), nil

	case ActionTranspose:
		if len(args) < 2 {
			return "", errors.New("enter a note, an interval and a direction, e.g. C4 P5 up")
		}
		dir, err := theory.ParseDirection(arg(2, "up"))
		if err != nil {
			return "", err
		}
		return th.Transpose(args[0], args[1], dir)

	case ActionCircle:
		return circleText(th), nil
	}
	return "", fmt.Errorf("action %d takes no input", action)
}

func circleText(th *theory.Theory) string {
	var s strings.Builder
	majors := th.Circle.Majors()
	minors := th.Circle.RelativeMinors()
	for i := range majors {
		fmt.Fprintf(&s, "%2d  %-6s %s\n", i, majors[i], minors[i])
	}
	return strings.TrimRight(s.String(), "\n")
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateInput:
		s.WriteString(m.viewInput())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateRendering:
		s.WriteString(m.viewRendering())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" MUSIC THEORY "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(descriptionStyle.Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewInput() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(m.item.Title))))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: compute • esc: back to menu"))

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT NOTATION FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewRendering() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" RENDERING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Rendering %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %s", m.item.Title)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	switch {
	case m.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s failed: %s", m.item.Title, m.err.Error())))
	case m.outputFile != "":
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Render complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Input:  %s\n", filepath.Base(m.selectedFile)))
		s.WriteString(fmt.Sprintf("Output: %s", filepath.Base(m.outputFile)))
	default:
		s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(m.item.Title))))
		s.WriteString("\n\n")
		if m.query != "" {
			s.WriteString(statusStyle.Render(m.query))
			s.WriteString("\n")
		}
		s.WriteString(successStyle.Render(m.result))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   __  __ _   _  ____ ___
  |  \/  | | | |/ ___/ _ \
  | |\/| | | | | |  | | | |
  | |  | | |_| | |__| |_| |
  |_|  |_|\___/ \____\___/
`
	return lipgloss.NewStyle().Foreground(inkBlue).Render(logo)
}

// Run starts the TUI application
func Run(th *theory.Theory, opts converter.Options) error {
	p := tea.NewProgram(New(th, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
