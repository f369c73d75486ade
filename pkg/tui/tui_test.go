package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/james-see/muco/pkg/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel() Model {
	return New(nil, converter.Options{SampleRate: 8000, TicksPerQuarter: 96})
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func menuIndexOf(action Action) int {
	for i, item := range menuItems {
		if item.Action == action {
			return i
		}
	}
	return -1
}

func TestMenuNavigation(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.menuIndex)

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "j")
	assert.Equal(t, 2, m.menuIndex)

	for range menuItems {
		m, _ = press(t, m, "down")
	}
	assert.Equal(t, len(menuItems)-1, m.menuIndex)

	m, _ = press(t, m, "k")
	assert.Equal(t, len(menuItems)-2, m.menuIndex)
}

func TestExitQuits(t *testing.T) {
	m := newModel()
	m.menuIndex = menuIndexOf(ActionExit)
	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChordQuery(t *testing.T) {
	m := newModel()
	m.menuIndex = menuIndexOf(ActionChord)
	m, _ = press(t, m, "enter")
	require.Equal(t, StateInput, m.state)
	assert.Equal(t, "Bb4 minor7", m.input.Placeholder)

	m.input.SetValue("Bb4 minor7")
	m, _ = press(t, m, "enter")
	require.Equal(t, StateResult, m.state)
	require.NoError(t, m.err)
	assert.Equal(t, "Bb Db F Ab", m.result)
	assert.Contains(t, m.View(), "Bb Db F Ab")

	m, _ = press(t, m, "enter")
	assert.Equal(t, StateMenu, m.state)
	assert.Empty(t, m.result)
}

func TestInputEscapeReturnsToMenu(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, "enter")
	require.Equal(t, StateInput, m.state)

	// q is text while typing
	m, _ = press(t, m, "q")
	assert.Equal(t, StateInput, m.state)
	assert.Equal(t, "q", m.input.Value())

	m, _ = press(t, m, "esc")
	assert.Equal(t, StateMenu, m.state)
}

func TestCircleShowsResultDirectly(t *testing.T) {
	m := newModel()
	m.menuIndex = menuIndexOf(ActionCircle)
	m, _ = press(t, m, "enter")
	require.Equal(t, StateResult, m.state)
	lines := strings.Split(m.result, "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[0], "C")
	assert.Contains(t, lines[6], "F#/Gb")
	assert.Contains(t, lines[6], "D#/Eb")
}

func TestEvaluate(t *testing.T) {
	m := newModel()
	tests := []struct {
		action Action
		input  string
		want   string
	}{
		{ActionScale, "D", "D E F# G A B C# D"},
		{ActionScale, "A minor", "A B C D E F G A"},
		{ActionKeySignature, "Eb major", "Eb major: 3b (Bb Eb Ab)"},
		{ActionKeySignature, "C", "C major: no sharps or flats"},
		{ActionEnharmonics, "D", "D → D (all spellings: Cx D E𝄫)"},
		{ActionInterval, "C4 G4", "perfect fifth (7 semitones)"},
		{ActionTranspose, "C4 M3 down", "Ab3"},
		{ActionTranspose, "Eb P5", "Bb"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evaluate(m.theory, tt.action, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	m := newModel()
	inputs := map[Action]string{
		ActionChord:        "C4",
		ActionScale:        "",
		ActionKeySignature: "C# major",
		ActionEnharmonics:  "H",
		ActionInterval:     "C1 C9",
		ActionTranspose:    "C4 P5 sideways",
	}
	for action, input := range inputs {
		_, err := evaluate(m.theory, action, input)
		assert.Error(t, err, input)
	}
}

func TestPerformRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tune.mcn")
	require.NoError(t, os.WriteFile(input, []byte("C4:quarter G4:half"), 0644))

	m := newModel()
	m.item = menuItems[menuIndexOf(ActionRenderWAV)]
	m.selectedFile = input

	msg := m.performRender()()
	done, ok := msg.(renderDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, filepath.Join(dir, "tune.wav"), done.outputFile)
	assert.FileExists(t, done.outputFile)

	next, _ := m.Update(done)
	m = next.(Model)
	assert.Equal(t, StateResult, m.state)
	assert.Contains(t, m.View(), "tune.wav")
}

func TestPerformRenderReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.mcn")
	require.NoError(t, os.WriteFile(input, []byte("H4:quarter"), 0644))

	m := newModel()
	m.item = menuItems[menuIndexOf(ActionRenderMIDI)]
	m.selectedFile = input

	done := m.performRender()().(renderDoneMsg)
	assert.Error(t, done.err)

	next, _ := m.Update(renderDoneMsg{err: errors.New("boom")})
	assert.Contains(t, next.View(), "boom")
}
