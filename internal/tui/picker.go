package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/idelinux/internal/discovery"
	listview "github.com/rshade/idelinux/internal/tui/list"
)

// Picker layout.
const (
	defaultWidth  = 120
	defaultHeight = 24
	// chromeHeight is the rows used by title, header, filter and help.
	chromeHeight = 6
	minListRows  = 3

	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// ViewState is the picker screen.
type ViewState int

// Picker states.
const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateChosen
	ViewStateQuitting
)

// pickerKeys are the picker bindings on top of list navigation.
type pickerKeys struct {
	Choose key.Binding
	Detail key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultPickerKeys() pickerKeys {
	return pickerKeys{
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Detail: key.NewBinding(key.WithKeys("d", "tab"), key.WithHelp("d", "details")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// PickerModel lets the user choose one installation.
type PickerModel struct {
	state   ViewState
	all     []discovery.Installation
	shown   []discovery.Installation
	current string

	list      *listview.Model[discovery.Installation]
	filter    textinput.Model
	filtering bool
	keys      pickerKeys

	width  int
	height int

	chosen discovery.Installation
}

// NewPicker returns a picker over ranked installations (best last). The
// row matching current is preselected, otherwise the best one.
func NewPicker(ranked []discovery.Installation, current string) *PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by name, family or path..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	m := &PickerModel{
		state:   ViewStateList,
		all:     ranked,
		shown:   ranked,
		current: current,
		filter:  ti,
		keys:    defaultPickerKeys(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.rebuildList()
	m.list.SetSelected(m.preferredIndex())
	return m
}

func (m *PickerModel) preferredIndex() int {
	for i, inst := range m.shown {
		if discovery.SamePath(inst.Path, m.current) {
			return i
		}
	}
	return len(m.shown) - 1
}

func (m *PickerModel) renderRow(inst discovery.Installation, selected bool) string {
	marker := "  "
	if discovery.SamePath(inst.Path, m.current) {
		marker = "* "
	}
	row := marker + formatRow(inst)
	if selected {
		return selectedStyle.Render(row)
	}
	if inst.IsPrerelease {
		return preStyle.Render(row)
	}
	return row
}

func (m *PickerModel) rebuildList() {
	rows := max(m.height-chromeHeight, minListRows)
	m.list = listview.New(m.shown, rows, m.width, m.renderRow)
}

// Init implements tea.Model.
func (m *PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		selected := m.list.Selected()
		m.rebuildList()
		m.list.SetSelected(selected)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		return m.updateFilter(keyMsg)
	}

	switch m.state {
	case ViewStateDetail:
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.state = ViewStateQuitting
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Back), key.Matches(keyMsg, m.keys.Detail):
			m.state = ViewStateList
		case key.Matches(keyMsg, m.keys.Choose):
			return m.choose()
		}
		return m, nil
	case ViewStateList:
		return m.updateList(keyMsg)
	default:
		return m, nil
	}
}

func (m *PickerModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Choose):
		return m.choose()
	case key.Matches(msg, m.keys.Detail):
		if len(m.shown) > 0 {
			m.state = ViewStateDetail
		}
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *PickerModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *PickerModel) choose() (tea.Model, tea.Cmd) {
	inst, ok := m.list.SelectedItem()
	if !ok {
		return m, nil
	}
	m.chosen = inst
	m.state = ViewStateChosen
	return m, tea.Quit
}

// applyFilter keeps installations whose name, family or path contains the
// filter text, case-insensitively.
func (m *PickerModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.shown = m.all
	} else {
		m.shown = nil
		for _, inst := range m.all {
			if strings.Contains(strings.ToLower(inst.Name), query) ||
				strings.Contains(string(inst.Family), query) ||
				strings.Contains(strings.ToLower(inst.Path), query) {
				m.shown = append(m.shown, inst)
			}
		}
	}
	m.list.SetItems(m.shown)
}

// Chosen returns the selected installation once the user confirmed one.
func (m *PickerModel) Chosen() (discovery.Installation, bool) {
	return m.chosen, m.state == ViewStateChosen
}

// State returns the current screen.
func (m *PickerModel) State() ViewState {
	return m.state
}

// View implements tea.Model.
func (m *PickerModel) View() string {
	switch m.state {
	case ViewStateChosen, ViewStateQuitting:
		return ""
	case ViewStateDetail:
		inst, _ := m.list.SelectedItem()
		return lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("Installation details"),
			"",
			RenderDetail(inst),
			"",
			m.helpLine(m.keys.Choose, m.keys.Back, m.keys.Quit),
		)
	default:
		return m.listView()
	}
}

func (m *PickerModel) listView() string {
	title := headerStyle.Render(fmt.Sprintf("Select an editor (%d of %d)", len(m.shown), len(m.all)))
	header := mutedStyle.Render("  " + tableHeader())

	body := m.list.View()
	if len(m.shown) == 0 {
		body = mutedStyle.Render("  no matching installations")
	}

	sections := []string{title, header, body}
	if m.filtering || m.filter.Value() != "" {
		sections = append(sections, "Filter: "+m.filter.View())
	}

	nav := m.list.Keys()
	sections = append(sections, m.helpLine(nav.Up, nav.Down, m.keys.Choose, m.keys.Detail, m.keys.Filter, m.keys.Quit))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *PickerModel) helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}

// ErrNoInstallations is returned by RunPicker when there is nothing to pick.
var ErrNoInstallations = errors.New("no editor installations to choose from")

// RunPicker runs the picker until the user chooses or quits. ok is false
// when the user quit without choosing.
func RunPicker(
	ctx context.Context,
	ranked []discovery.Installation,
	current string,
	opts ...tea.ProgramOption,
) (discovery.Installation, bool, error) {
	if len(ranked) == 0 {
		return discovery.Installation{}, false, ErrNoInstallations
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewPicker(ranked, current), opts...).Run()
	if err != nil {
		return discovery.Installation{}, false, fmt.Errorf("running picker: %w", err)
	}

	picker, ok := final.(*PickerModel)
	if !ok {
		return discovery.Installation{}, false, nil
	}
	inst, chosen := picker.Chosen()
	return inst, chosen, nil
}
