package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"EnvStore/internal/config"
	"EnvStore/internal/envfile"
	"EnvStore/internal/envops"
	"EnvStore/internal/logger"
	"EnvStore/internal/strutil"
	"EnvStore/internal/update"
	"EnvStore/internal/version"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mode identifies what the editor is currently doing
type mode int

const (
	modeList mode = iota
	modeEdit
	modeAdd
	modeConfirmDelete
	modeConfirmQuit
)

// updateStatusMsg carries the result of the background release check
type updateStatusMsg struct {
	available bool
	version   string
}

// Model is the root Bubble Tea model: a sorted entry list over one store,
// with inline edit/add inputs and confirm prompts below the list.
type Model struct {
	ctx  context.Context
	conf config.AppConfig

	store *envfile.EnvStore
	keys  []string

	cursor int
	offset int

	width  int
	height int

	mode       mode
	keyInput   textinput.Model
	valueInput textinput.Model

	dirty      bool
	confirmYes bool

	status    string
	statusErr bool

	updateAvailable bool
	latestVersion   string
}

// NewModel creates the editor model for a loaded store.
func NewModel(ctx context.Context, conf config.AppConfig, store *envfile.EnvStore) Model {
	keyInput := textinput.New()
	keyInput.Placeholder = "KEY"
	keyInput.Prompt = ""

	valueInput := textinput.New()
	valueInput.Placeholder = "value"
	valueInput.Prompt = ""

	return Model{
		ctx:        ctx,
		conf:       conf,
		store:      store,
		keys:       store.Keys(),
		keyInput:   keyInput,
		valueInput: valueInput,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, logger.RecoverTUI(m.ctx, checkUpdateCmd(m.ctx, m.conf)))
}

// checkUpdateCmd runs the release check off the Update loop and reports back
func checkUpdateCmd(ctx context.Context, conf config.AppConfig) tea.Cmd {
	return func() tea.Msg {
		available := update.GetUpdateStatus(ctx, conf)
		return updateStatusMsg{available: available, version: update.LatestVersion}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.keyInput.Width = msg.Width - 10
		m.valueInput.Width = msg.Width - 10
		m.ensureVisible()
		return m, nil

	case updateStatusMsg:
		m.updateAvailable = msg.available
		m.latestVersion = msg.version
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete, modeConfirmQuit:
			return m.updateConfirm(msg)
		}
	}

	return m, nil
}

// updateList handles keys while the entry list has focus
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Quit):
		if m.dirty {
			m.mode = modeConfirmQuit
			m.confirmYes = false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.listHeight())

	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.listHeight())

	case key.Matches(msg, Keys.Add):
		m.mode = modeAdd
		m.setStatus("", false)
		m.keyInput.SetValue("")
		m.valueInput.SetValue("")
		m.valueInput.Blur()
		return m, m.keyInput.Focus()

	case key.Matches(msg, Keys.Edit):
		if len(m.keys) == 0 {
			return m, nil
		}
		value, _ := m.store.Get(m.keys[m.cursor])
		m.mode = modeEdit
		m.setStatus("", false)
		m.valueInput.SetValue(value)
		m.valueInput.CursorEnd()
		return m, m.valueInput.Focus()

	case key.Matches(msg, Keys.Delete):
		if len(m.keys) == 0 {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.confirmYes = false

	case key.Matches(msg, Keys.Save):
		m.save()
	}

	return m, nil
}

// updateEdit handles keys while the value input has focus
func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Esc):
		m.mode = modeList
		m.valueInput.Blur()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		name := m.keys[m.cursor]
		m.store.Update(name, m.valueInput.Value())
		m.dirty = true
		m.mode = modeList
		m.valueInput.Blur()
		m.setStatus(fmt.Sprintf("Set %s", name), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

// updateAdd handles keys while the new-entry inputs have focus
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Esc):
		m.mode = modeList
		m.keyInput.Blur()
		m.valueInput.Blur()
		return m, nil

	case key.Matches(msg, Keys.Tab), key.Matches(msg, Keys.ShiftTab):
		if m.keyInput.Focused() {
			m.keyInput.Blur()
			return m, m.valueInput.Focus()
		}
		m.valueInput.Blur()
		return m, m.keyInput.Focus()

	case key.Matches(msg, Keys.Enter):
		if m.keyInput.Focused() {
			m.keyInput.Blur()
			return m, m.valueInput.Focus()
		}

		name := strings.TrimSpace(m.keyInput.Value())
		if name == "" {
			m.setStatus("Variable name must not be empty", true)
			m.valueInput.Blur()
			return m, m.keyInput.Focus()
		}
		if strings.Contains(name, "=") {
			m.setStatus("Variable names cannot contain '='", true)
			m.valueInput.Blur()
			return m, m.keyInput.Focus()
		}

		m.store.Update(name, m.valueInput.Value())
		m.refreshKeys()
		m.cursor = sort.SearchStrings(m.keys, name)
		m.ensureVisible()
		m.dirty = true
		m.mode = modeList
		m.keyInput.Blur()
		m.valueInput.Blur()
		m.setStatus(fmt.Sprintf("Added %s", name), false)
		return m, nil
	}

	var cmd tea.Cmd
	if m.keyInput.Focused() {
		m.keyInput, cmd = m.keyInput.Update(msg)
	} else {
		m.valueInput, cmd = m.valueInput.Update(msg)
	}
	return m, cmd
}

// updateConfirm handles the Yes/No prompts (delete entry, quit unsaved)
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Esc):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, Keys.Left), key.Matches(msg, Keys.Right),
		key.Matches(msg, Keys.Up), key.Matches(msg, Keys.Down),
		key.Matches(msg, Keys.Tab), key.Matches(msg, Keys.ShiftTab):
		m.confirmYes = !m.confirmYes
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.confirm(m.confirmYes)
	}

	// Button hotkeys
	switch msg.String() {
	case "y", "Y":
		return m.confirm(true)
	case "n", "N":
		return m.confirm(false)
	}

	return m, nil
}

// confirm resolves the active Yes/No prompt
func (m Model) confirm(yes bool) (tea.Model, tea.Cmd) {
	active := m.mode
	m.mode = modeList

	if !yes {
		return m, nil
	}

	switch active {
	case modeConfirmDelete:
		name := m.keys[m.cursor]
		m.store.Delete(name)
		m.refreshKeys()
		if m.cursor >= len(m.keys) && m.cursor > 0 {
			m.cursor = len(m.keys) - 1
		}
		m.ensureVisible()
		m.dirty = true
		m.setStatus(fmt.Sprintf("Deleted %s", name), false)

	case modeConfirmQuit:
		return m, tea.Quit
	}

	return m, nil
}

// save writes the store back to disk, honoring backup_on_write.
func (m *Model) save() {
	if !m.dirty {
		m.setStatus("No changes to write", false)
		return
	}

	note := ""
	if m.conf.Behavior.BackupOnWrite {
		if _, err := envops.Backup(m.ctx, m.conf, m.store.Path); err != nil {
			note = " (backup failed)"
		}
	}

	if err := m.store.Write(); err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	m.dirty = false
	status := fmt.Sprintf("Wrote %d entries to %s%s", m.store.Len(), m.store.Path, note)
	if envops.GitTracked(m.store.Path) {
		status += " — tracked by git"
	}
	m.setStatus(status, false)
}

// refreshKeys re-reads the sorted key list from the store
func (m *Model) refreshKeys() {
	m.keys = m.store.Keys()
}

// moveCursor moves the selection by delta, clamped to the list
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.keys) {
		m.cursor = len(m.keys) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls the window so the cursor stays on screen
func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight returns how many entry rows fit between the chrome lines
func (m Model) listHeight() int {
	// title + separator above, input/confirm area + status + helpline below
	h := m.height - 7
	if h < 1 {
		h = 1
	}
	return h
}

// setStatus sets the status line text
func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	s := GetStyles()
	var b strings.Builder

	b.WriteString(m.viewTitle(s))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(strutil.Repeat(s.SepChar, m.width)))
	b.WriteString("\n")
	b.WriteString(m.viewList(s))
	b.WriteString("\n")
	b.WriteString(m.viewModeArea(s))
	b.WriteString("\n")
	b.WriteString(m.viewStatus(s))
	b.WriteString("\n")
	b.WriteString(m.viewHelp(s))

	return b.String()
}

// viewTitle renders the title bar: app name, file, dirty marker, update hint
func (m Model) viewTitle(s Styles) string {
	path := strutil.Limit(m.store.Path, m.width/2)

	left := s.Title.Render(version.ApplicationName) + " " + s.FilePath.Render(path)
	if m.dirty {
		left += " " + s.Dirty.Render("*")
	}
	left += s.Muted.Render(fmt.Sprintf("  %d entries", len(m.keys)))

	right := s.Muted.Render(version.Version)
	if m.updateAvailable {
		right = s.UpdateHint.Render(fmt.Sprintf("update available: %s", m.latestVersion))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		right = ""
		gap = 0
	}
	return " " + left + strutil.Repeat(" ", gap) + right
}

// viewList renders the visible slice of the sorted entry list
func (m Model) viewList(s Styles) string {
	h := m.listHeight()

	if len(m.keys) == 0 {
		lines := make([]string, h)
		lines[0] = s.Muted.Render("  (no entries — press a to add one)")
		return strings.Join(lines, "\n")
	}

	end := m.offset + h
	if end > len(m.keys) {
		end = len(m.keys)
	}

	rows := make([]string, 0, h)
	for i := m.offset; i < end; i++ {
		name := m.keys[i]
		value, _ := m.store.Get(name)

		if i == m.cursor {
			row := strutil.Limit(fmt.Sprintf("%s=%s", name, value), m.width-4)
			rows = append(rows, "  "+s.Selected.Render(strutil.Pad(row, m.width-4)))
			continue
		}

		row := s.ItemKey.Render(name) + "=" + s.ItemValue.Render(strutil.Limit(value, m.width-4-lipgloss.Width(name)-1))
		rows = append(rows, "  "+row)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}

	return strings.Join(rows, "\n")
}

// viewModeArea renders the edit/add inputs or the active confirm prompt.
// Always exactly three lines so the layout never jumps between modes.
func (m Model) viewModeArea(s Styles) string {
	switch m.mode {
	case modeEdit:
		return fmt.Sprintf(" %s %s\n %s\n",
			s.PromptLabel.Render("Edit"),
			s.ItemKey.Render(m.keys[m.cursor]),
			m.valueInput.View())

	case modeAdd:
		return fmt.Sprintf(" %s\n %s %s\n %s %s",
			s.PromptLabel.Render("New entry"),
			s.PromptLabel.Render("Name: "), m.keyInput.View(),
			s.PromptLabel.Render("Value:"), m.valueInput.View())

	case modeConfirmDelete:
		question := fmt.Sprintf("Delete %s?", m.keys[m.cursor])
		return m.viewConfirm(s, question)

	case modeConfirmQuit:
		return m.viewConfirm(s, "Discard unsaved changes?")
	}

	return "\n\n"
}

// viewConfirm renders a Yes/No prompt with the active button highlighted
func (m Model) viewConfirm(s Styles, question string) string {
	yes := s.ButtonInactive.Render("[ Yes ]")
	no := s.ButtonActive.Render("[ No ]")
	if m.confirmYes {
		yes = s.ButtonActive.Render("[ Yes ]")
		no = s.ButtonInactive.Render("[ No ]")
	}
	return fmt.Sprintf(" %s\n   %s   %s\n", s.Question.Render(question), yes, no)
}

// viewStatus renders the one-line status area
func (m Model) viewStatus(s Styles) string {
	if m.status == "" {
		return ""
	}
	style := s.StatusOK
	if m.statusErr {
		style = s.StatusError
	}
	return " " + style.Render(strutil.Limit(m.status, m.width-2))
}

// viewHelp renders the short help line from the key map, dropping trailing
// entries that would not fit.
func (m Model) viewHelp(s Styles) string {
	sep := s.HelpDesc.Render(" · ")

	var line string
	for i, b := range Keys.ShortHelp() {
		part := s.HelpKey.Render(b.Help().Key) + " " + s.HelpDesc.Render(b.Help().Desc)
		if i > 0 {
			part = sep + part
		}
		if lipgloss.Width(line+part) > m.width-2 {
			break
		}
		line += part
	}
	return " " + line
}
