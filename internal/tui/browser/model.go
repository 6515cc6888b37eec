// Package browser is an interactive terminal view over a pond store.
package browser

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pond/internal/clients"
	"github.com/alexisbeaulieu97/pond/internal/pond"
)

// Model is the browser's bubbletea model
type Model struct {
	store      pond.Store
	pasteboard clients.Pasteboard

	keys         []string
	cursor       int
	scrollOffset int

	viewMode ViewMode
	selected string
	detail   viewport.Model

	confirmKey string
	status     string
	errorMsg   string

	width  int
	height int
}

// NewModel creates a browser over store. Copy actions go to pasteboard.
func NewModel(store pond.Store, pasteboard clients.Pasteboard) Model {
	return Model{
		store:      store,
		pasteboard: pasteboard,
		keys:       store.Keys(),
		viewMode:   ViewList,
		detail:     viewport.New(80, 18),
		width:      80,
		height:     24,
	}
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(store pond.Store, pasteboard clients.Pasteboard) error {
	_, err := tea.NewProgram(NewModel(store, pasteboard), tea.WithAltScreen()).Run()
	return err
}

// Init reloads keys so the first frame reflects the store.
func (m Model) Init() tea.Cmd {
	return loadKeysCmd(m.store)
}

// SelectedKey returns the key under the cursor
func (m *Model) SelectedKey() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.keys) {
		return "", false
	}
	return m.keys[m.cursor], true
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.keys) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.keys) - 1
	}
	m.clampScroll()
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.keys) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.keys) {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) visibleRows() int {
	rows := m.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampScroll() {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
}

func (m *Model) setKeys(keys []string) {
	selected, hadSelection := m.SelectedKey()
	m.keys = keys
	m.cursor = 0
	if hadSelection {
		for i, k := range keys {
			if k == selected {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(m.keys) && len(m.keys) > 0 {
		m.cursor = len(m.keys) - 1
	}
	m.clampScroll()
}

// openDetail shows the value stored under key in the detail viewport.
func (m *Model) openDetail(key string) {
	m.selected = key
	m.viewMode = ViewDetail
	m.detail.SetContent(formatValue(m.store.Lookup(key)))
	m.detail.GotoTop()
}

func formatValue(v pond.Value, ok bool) string {
	if !ok {
		return "(not set)"
	}
	switch v.Kind() {
	case pond.KindList, pond.KindMap:
		data, err := json.MarshalIndent(v.Interface(), "", "  ")
		if err != nil {
			return v.String()
		}
		return string(data)
	case pond.KindBytes:
		data, _ := pond.As[[]byte](v)
		return fmt.Sprintf("<%d bytes>", len(data))
	}
	return v.String()
}
