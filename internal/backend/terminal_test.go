package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen)
	require.NoError(t, term.Init())
	t.Cleanup(term.Shutdown)
	return term, screen
}

func TestTerminalSize(t *testing.T) {
	term, screen := newSimTerminal(t)
	screen.SetSize(120, 40)

	w, h := term.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

func TestTerminalPollResize(t *testing.T) {
	term, _ := newSimTerminal(t)

	var got []int
	term.OnResize(func(w, _ int) { got = append(got, w) })
	require.NoError(t, term.PostResize(100, 30))

	var ev Event
	for i := 0; i < 3; i++ {
		ev = term.PollEvent()
		if ev.Type == EventResize && ev.Width == 100 {
			break
		}
	}
	assert.Equal(t, EventResize, ev.Type)
	assert.Equal(t, 100, ev.Width)
	assert.Equal(t, 30, ev.Height)
	assert.Contains(t, got, 100)
}

func TestConvertKeyEvent(t *testing.T) {
	term := &Terminal{}
	ev := term.convertEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt|tcell.ModShift))

	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, 'x', ev.Rune)
	assert.Equal(t, ModAlt|ModShift, ev.Mod)
	assert.NotEmpty(t, ev.Key)
}

func TestConvertMouseEvent(t *testing.T) {
	term := &Terminal{}
	ev := term.convertEvent(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModCtrl))

	assert.Equal(t, EventMouse, ev.Type)
	assert.Equal(t, 3, ev.MouseX)
	assert.Equal(t, 4, ev.MouseY)
	assert.Equal(t, int(tcell.Button1), ev.Buttons)
	assert.Equal(t, ModCtrl, ev.Mod)
}

func TestDrawText(t *testing.T) {
	term, screen := newSimTerminal(t)
	term.DrawText(2, 1, "hi")
	term.Show()

	cells, w, _ := screen.GetContents()
	require.NotEmpty(t, cells)
	assert.Equal(t, "h", string(cells[1*w+2].Runes))
	assert.Equal(t, "i", string(cells[1*w+3].Runes))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "keydown", EventKey.String())
	assert.Equal(t, "click", EventMouse.String())
	assert.Equal(t, "resize", EventResize.String())
	assert.Equal(t, "none", EventNone.String())
}
