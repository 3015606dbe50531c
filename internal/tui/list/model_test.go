package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func render(item int, selected bool) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func press(m *Model[int], k tea.KeyMsg) {
	_, _ = m.Update(k)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation(t *testing.T) {
	m := New(numbers(50), 10, 80, render)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want int
	}{
		{"down", tea.KeyMsg{Type: tea.KeyDown}, 1},
		{"j", runes("j"), 2},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, 1},
		{"k", runes("k"), 0},
		{"up at top stays", tea.KeyMsg{Type: tea.KeyUp}, 0},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, 10},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, 49},
		{"down at bottom stays", tea.KeyMsg{Type: tea.KeyDown}, 49},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, 39},
		{"G", runes("G"), 49},
		{"g", runes("g"), 0},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, 0},
	}

	for _, tt := range tests {
		press(m, tt.key)
		assert.Equal(t, tt.want, m.Selected(), tt.name)
	}
}

func TestVisibleRangeFollowsSelection(t *testing.T) {
	m := New(numbers(100), 10, 80, render)

	from, to := m.VisibleRange()
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, to)

	m.SetSelected(50)
	from, to = m.VisibleRange()
	assert.LessOrEqual(t, from, 50)
	assert.Greater(t, to, 50)
	assert.Equal(t, 10, to-from)

	m.SetSelected(99)
	from, to = m.VisibleRange()
	assert.Equal(t, 90, from)
	assert.Equal(t, 100, to)
}

func TestViewRendersOnlyNearbyRows(t *testing.T) {
	m := New(numbers(1000), 5, 80, render)
	m.SetSelected(500)

	lines := strings.Split(m.View(), "\n")
	assert.LessOrEqual(t, len(lines), 5+2*defaultBufferSize)
	assert.Contains(t, lines, "> 500")
}

func TestEmptyList(t *testing.T) {
	m := New([]int(nil), 5, 80, render)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Selected())
	assert.Empty(t, m.View())

	_, ok := m.SelectedItem()
	assert.False(t, ok)
}

func TestSetItemsClampsSelection(t *testing.T) {
	m := New(numbers(10), 5, 80, render)
	m.SetSelected(9)

	m.SetItems(numbers(3))

	item, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, 2, item)
}

func TestWindowResize(t *testing.T) {
	m := New(numbers(100), 5, 80, render)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})

	from, to := m.VisibleRange()
	assert.Equal(t, 20, to-from)
	assert.Equal(t, 0, from)
}
