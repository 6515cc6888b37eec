package browser

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
	ViewConfirm
)

// KeysLoadedMsg carries a fresh snapshot of the store's keys
type KeysLoadedMsg struct {
	Keys []string
}

// KeyRemovedMsg indicates a key was removed from the store
type KeyRemovedMsg struct {
	Key string
}

// CopiedMsg indicates a value was placed on the pasteboard
type CopiedMsg struct {
	Key string
}

// ErrorMsg indicates an action could not be completed
type ErrorMsg struct {
	Message string
}
