package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderConfirmView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderHeader(subtitle string) string {
	title := titleStyle.Render(fmt.Sprintf("pond · %s store", m.store.ID()))
	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, kindStyle.PaddingLeft(2).Render(subtitle)))
}

func (m Model) renderListView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader(fmt.Sprintf("%d keys", len(m.keys))))
	content.WriteString("\n")

	if m.errorMsg != "" {
		content.WriteString(errorBannerStyle.Render("✗ " + m.errorMsg))
		content.WriteString("\n")
	}

	if len(m.keys) == 0 {
		content.WriteString(itemStyle.Render("No keys stored yet."))
	} else {
		rows := m.visibleRows()
		end := min(m.scrollOffset+rows, len(m.keys))
		var items []string
		if m.scrollOffset > 0 {
			items = append(items, kindStyle.Render("▲ More above"))
		}
		for i := m.scrollOffset; i < end; i++ {
			items = append(items, m.renderItem(i))
		}
		if end < len(m.keys) {
			items = append(items, kindStyle.Render("▼ More below"))
		}
		content.WriteString(lipgloss.JoinVertical(lipgloss.Left, items...))
	}
	content.WriteString("\n")

	if m.status != "" {
		content.WriteString(statusStyle.Render("✓ " + m.status))
		content.WriteString("\n")
	}

	content.WriteString(footerStyle.Render("↑/↓ move · enter open · c copy · d delete · r reload · ? help · q quit"))
	return content.String()
}

func (m Model) renderItem(index int) string {
	key := m.keys[index]
	kind := "?"
	if v, ok := m.store.Lookup(key); ok {
		kind = v.Kind().String()
	}
	line := fmt.Sprintf("%s  %s", key, kindStyle.Render(kind))
	if index == m.cursor {
		return selectedItemStyle.Render(line)
	}
	return itemStyle.Render(line)
}

func (m Model) renderDetailView() string {
	var content strings.Builder
	content.WriteString(m.renderHeader(m.selected))
	content.WriteString("\n")
	if m.errorMsg != "" {
		content.WriteString(errorBannerStyle.Render("✗ " + m.errorMsg))
		content.WriteString("\n")
	}
	content.WriteString(m.detail.View())
	content.WriteString("\n")
	if m.status != "" {
		content.WriteString(statusStyle.Render("✓ " + m.status))
		content.WriteString("\n")
	}
	content.WriteString(footerStyle.Render("↑/↓ scroll · c copy · d delete · esc back · q quit"))
	return content.String()
}

func (m Model) renderHelpView() string {
	help := []string{
		"↑/k, ↓/j   move the cursor",
		"enter      show the selected value",
		"c          copy the value to the pasteboard",
		"d          delete the key (asks first)",
		"r          reload keys from the store",
		"esc        back / dismiss errors",
		"q          quit",
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader("keyboard shortcuts"),
		itemStyle.Render(strings.Join(help, "\n")),
		footerStyle.Render("press any key to return"),
	)
}

func (m Model) renderConfirmView() string {
	prompt := fmt.Sprintf("Delete '%s' from the %s store?\n\n[y] delete   [n] keep", m.confirmKey, m.store.ID())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader("confirm"),
		confirmStyle.Render(prompt),
	)
}
