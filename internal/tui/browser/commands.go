package browser

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pond/internal/clients"
	"github.com/alexisbeaulieu97/pond/internal/pond"
)

func loadKeysCmd(store pond.Store) tea.Cmd {
	return func() tea.Msg {
		return KeysLoadedMsg{Keys: store.Keys()}
	}
}

func removeKeyCmd(store pond.Store, key string) tea.Cmd {
	return func() tea.Msg {
		store.Remove(key)
		return KeyRemovedMsg{Key: key}
	}
}

func copyKeyCmd(store pond.Store, pasteboard clients.Pasteboard, key string) tea.Cmd {
	return func() tea.Msg {
		value, ok := store.Lookup(key)
		if !ok {
			return ErrorMsg{Message: fmt.Sprintf("'%s' is no longer set", key)}
		}
		text, ok := pond.As[string](value)
		if !ok {
			return ErrorMsg{Message: fmt.Sprintf("'%s' holds a %s value and cannot be copied", key, value.Kind())}
		}
		pasteboard.Copy(text)
		return CopiedMsg{Key: key}
	}
}
