package browser

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-6, 1)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case KeysLoadedMsg:
		m.setKeys(msg.Keys)
		return m, nil

	case KeyRemovedMsg:
		m.status = fmt.Sprintf("Removed '%s'", msg.Key)
		return m, loadKeysCmd(m.store)

	case CopiedMsg:
		m.status = fmt.Sprintf("Copied '%s' to the pasteboard", msg.Key)
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Message
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		m.viewMode = ViewList
		return m, nil
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m, nil
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "enter", " ":
		if key, ok := m.SelectedKey(); ok {
			m.openDetail(key)
		}
		return m, nil

	case "c":
		if key, ok := m.SelectedKey(); ok {
			return m, copyKeyCmd(m.store, m.pasteboard, key)
		}
		return m, nil

	case "d":
		if key, ok := m.SelectedKey(); ok {
			m.confirmKey = key
			m.viewMode = ViewConfirm
		}
		return m, nil

	case "r":
		return m, loadKeysCmd(m.store)

	case "?":
		m.viewMode = ViewHelp
		return m, nil

	case "esc", "x":
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.viewMode = ViewList
		m.selected = ""
		return m, nil

	case "c":
		return m, copyKeyCmd(m.store, m.pasteboard, m.selected)

	case "d":
		m.confirmKey = m.selected
		m.viewMode = ViewConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		key := m.confirmKey
		m.confirmKey = ""
		m.selected = ""
		m.viewMode = ViewList
		return m, removeKeyCmd(m.store, key)

	case "n", "N", "esc":
		m.confirmKey = ""
		if m.selected != "" {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
		return m, nil
	}

	return m, nil
}
