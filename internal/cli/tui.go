package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listKindStyle     = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// EditorModel - Interactive dataset editor
// =============================================================================

type editorMode int

const (
	modeBrowse editorMode = iota
	modeInput
	modeConfirmQuit
)

type inputAction int

const (
	actionAddCategory inputAction = iota
	actionAddChild
	actionRename
)

// RenderFunc renders a dataset and returns a short status line.
type RenderFunc func(d dataset.Dataset) (string, error)

// renderDoneMsg carries the result of a render started with the r key.
type renderDoneMsg struct {
	status string
	err    error
}

type editorRow struct {
	id    int
	depth int
	kind  dataset.NodeKind
	name  string
}

// EditorModel is the bubbletea model of the dataset editor. All edits go
// through the document's commands; the row list is rebuilt from the
// document after every change.
type EditorModel struct {
	Doc    *dataset.Document
	Render RenderFunc

	rows   []editorRow
	Cursor int
	Height int
	Offset int

	mode   editorMode
	action inputAction
	input  []rune

	status    string
	statusErr bool
	rendering bool
	quitting  bool
}

// NewEditorModel creates an editor over doc. render may be nil, which
// disables the r key.
func NewEditorModel(doc *dataset.Document, render RenderFunc) EditorModel {
	m := EditorModel{Doc: doc, Render: render, Height: 20}
	m.refresh(-1)
	return m
}

// Quitting reports whether the editor has finished.
func (m EditorModel) Quitting() bool { return m.quitting }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmQuit:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	case renderDoneMsg:
		m.rendering = false
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.status)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.Doc.Dirty() {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.rows)-1 {
			m.Cursor++
		}
	case "A":
		m.startInput(actionAddCategory, "")
	case "a":
		if _, ok := m.selected(); ok {
			m.startInput(actionAddChild, "")
		} else {
			m.startInput(actionAddCategory, "")
		}
	case "e", "enter":
		if row, ok := m.selected(); ok {
			m.startInput(actionRename, row.name)
		}
	case "d", "x":
		if row, ok := m.selected(); ok {
			m.apply(m.Doc.Remove(row.id), -1)
			if m.status == "" {
				m.setStatus(fmt.Sprintf("Removed %s %q", row.kind, row.name))
			}
		}
	case "K", "shift+up":
		m.move(-1)
	case "J", "shift+down":
		m.move(1)
	case "s", "ctrl+s":
		m.save()
	case "r":
		if m.Render == nil || m.rendering {
			return m, nil
		}
		m.rendering = true
		m.setStatus("Rendering…")
		render, d := m.Render, m.Doc.Dataset()
		return m, func() tea.Msg {
			status, err := render(d)
			return renderDoneMsg{status: status, err: err}
		}
	}
	m.scroll()
	return m, nil
}

func (m EditorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = modeBrowse
		m.input = nil
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m EditorModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if !m.save() {
			m.mode = modeBrowse
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "n", "N":
		m.quitting = true
		return m, tea.Quit
	case "c", "C", "esc", "ctrl+c":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m *EditorModel) startInput(action inputAction, initial string) {
	m.mode = modeInput
	m.action = action
	m.input = []rune(initial)
	m.status = ""
}

func (m *EditorModel) commitInput() {
	name := strings.TrimSpace(string(m.input))
	m.mode = modeBrowse
	m.input = nil

	var (
		id  int
		err error
	)
	switch m.action {
	case actionAddCategory:
		id, err = m.Doc.AddCategory(name)
	case actionAddChild:
		id, err = m.addChild(name)
	case actionRename:
		row, _ := m.selected()
		id, err = row.id, m.Doc.Rename(row.id, name)
	}
	m.apply(err, id)
}

// addChild adds below the selected node: a subcategory under a category,
// an item under a subcategory, and a sibling item next to an item.
func (m *EditorModel) addChild(name string) (int, error) {
	row, _ := m.selected()
	switch row.kind {
	case dataset.KindCategory:
		return m.Doc.AddSubcategory(row.id, name)
	case dataset.KindSubcategory:
		return m.Doc.AddItem(row.id, name)
	case dataset.KindItem:
		n, _ := m.Doc.Node(row.id)
		return m.Doc.AddItem(n.Parent, name)
	}
	return 0, dterrors.New(dterrors.ErrCodeInvalidNode, "nothing selected")
}

func (m *EditorModel) move(delta int) {
	row, ok := m.selected()
	if !ok {
		return
	}
	m.apply(m.Doc.Move(row.id, delta), row.id)
}

func (m *EditorModel) save() bool {
	if err := m.Doc.Save(); err != nil {
		m.setError(err)
		return false
	}
	m.setStatus("Saved " + m.Doc.Path)
	return true
}

// apply reports err or refreshes the rows, selecting id when it is >= 0.
func (m *EditorModel) apply(err error, id int) {
	if err != nil {
		m.setError(err)
		return
	}
	m.status = ""
	m.refresh(id)
}

func (m *EditorModel) refresh(selectID int) {
	m.rows = m.rows[:0]
	m.Doc.Walk(func(n dataset.Node, depth int) {
		m.rows = append(m.rows, editorRow{id: n.ID, depth: depth, kind: n.Kind, name: n.Name})
	})
	if selectID >= 0 {
		for i, r := range m.rows {
			if r.id == selectID {
				m.Cursor = i
			}
		}
	}
	m.Cursor = max(0, min(m.Cursor, len(m.rows)-1))
	m.scroll()
}

func (m *EditorModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EditorModel) selected() (editorRow, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return editorRow{}, false
	}
	return m.rows[m.Cursor], true
}

func (m *EditorModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *EditorModel) setError(err error) {
	m.status, m.statusErr = dterrors.UserMessage(err), true
}

func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	title := "datatree"
	if m.Doc.Path != "" {
		title += " · " + m.Doc.Path
	}
	if m.Doc.Dirty() {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  A category  a add  e rename  d delete  J/K move  s save  r render  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty, press A to add a category)"))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", r.depth) + r.name
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(" " + listKindStyle.Render(r.kind.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeInput:
		b.WriteString(StyleHighlight.Render(m.prompt()) + " " + string(m.input) + "█")
	case modeConfirmQuit:
		b.WriteString(StyleWarning.Render("Unsaved changes. Save before quitting? (y)es (n)o (c)ancel"))
	default:
		if m.status != "" {
			if m.statusErr {
				b.WriteString(StyleError.Render(m.status))
			} else {
				b.WriteString(StyleSuccess.Render(m.status))
			}
		} else {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.rows)), len(m.rows))))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m EditorModel) prompt() string {
	switch m.action {
	case actionAddCategory:
		return "New category:"
	case actionRename:
		return "Rename to:"
	}
	row, _ := m.selected()
	switch row.kind {
	case dataset.KindCategory:
		return "New subcategory:"
	default:
		return "New item:"
	}
}
