package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered around the viewport.
const defaultBufferSize = 2

// RenderFunc renders one item; selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a selectable list of T.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	keys       KeyMap

	selected    int
	visibleFrom int
	visibleTo   int

	height     int
	width      int
	bufferSize int
}

// New creates a list of items shown in a height x width viewport.
func New[T any](items []T, height, width int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		keys:       DefaultKeyMap(),
		height:     max(height, 1),
		width:      width,
		bufferSize: defaultBufferSize,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the selection on navigation keys and tracks the window size.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height, 1)
		m.width = msg.Width
		m.updateVisibleRange()
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.SetSelected(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.SetSelected(m.selected + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.SetSelected(m.selected - m.height)
	case key.Matches(msg, m.keys.PageDown):
		m.SetSelected(m.selected + m.height)
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(len(m.items) - 1)
	}
}

// updateVisibleRange keeps the selected row inside the viewport, centered
// when possible.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := max(m.selected-m.height/2, 0)
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible rows plus the buffer.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	from := max(m.visibleFrom-m.bufferSize, 0)
	to := min(m.visibleTo+m.bufferSize, len(m.items))

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and clamps the selection.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// ItemCount returns the number of items.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected selects index, clamped to the item range.
func (m *Model[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
	} else {
		m.selected = min(max(index, 0), len(m.items)-1)
	}
	m.updateVisibleRange()
}

// SelectedItem returns the selected item, or false when the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// VisibleRange returns the [from, to) indexes inside the viewport.
func (m *Model[T]) VisibleRange() (int, int) {
	return m.visibleFrom, m.visibleTo
}

// Keys returns the navigation bindings, for help rendering.
func (m *Model[T]) Keys() KeyMap {
	return m.keys
}
