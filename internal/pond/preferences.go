package pond

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/pond/internal/logger"
)

// PreferencesOptions configures a Preferences store.
type PreferencesOptions struct {
	// Path of the YAML file. Defaults to ~/.pond/preferences.yaml.
	Path   string
	Logger *logger.Logger
}

// Preferences persists user settings as a human-editable YAML document.
type Preferences struct {
	*documentStore
}

// OpenPreferences loads the preferences file, or starts empty if it does not
// exist yet.
func OpenPreferences(opts PreferencesOptions) (*Preferences, error) {
	path := opts.Path
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".pond", "preferences.yaml")
	}

	store, err := openDocumentStore("preferences", path, 0o755, 0o644, yamlCodec{}, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Preferences{documentStore: store}, nil
}

type yamlCodec struct{}

func (yamlCodec) encode(values map[string]Value) ([]byte, error) {
	return yaml.Marshal(newDocument(values))
}

func (yamlCodec) decode(data []byte) (map[string]Value, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.values()
}
