package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/alexisbeaulieu97/pond/internal/clients"
	"github.com/alexisbeaulieu97/pond/internal/config"
	"github.com/alexisbeaulieu97/pond/internal/dependency"
	"github.com/alexisbeaulieu97/pond/internal/failure"
	"github.com/alexisbeaulieu97/pond/internal/logger"
	"github.com/alexisbeaulieu97/pond/internal/pond"
)

// AppContext bundles long-lived services created before a command runs.
type AppContext struct {
	Config *config.Config
	Logger *logger.Logger
	Values *dependency.Values
	Policy pond.Policy

	closers []io.Closer
}

// init loads configuration and installs capabilities that the ambient
// registry has not already overridden.
func (a *AppContext) init(flags *rootFlags) error {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return newCommandError("start", "loading configuration", err, "Fix the config file or POND_* environment variables.")
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
		if err := config.Validate(cfg); err != nil {
			return newCommandError("start", "selecting backend", err, "Pass one of: memory, noop, preferences, secure, blob.")
		}
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.Human, Writer: os.Stderr})
	if err != nil {
		return newCommandError("start", "creating logger", err, "Set log.level to one of trace, debug, info, warn, error.")
	}
	failure.SetLogger(log)

	a.Config = cfg
	a.Logger = log
	a.Values = dependency.Shared().Clone()
	a.Policy = pond.DefaultPolicy()
	a.Policy.Logger = log
	if cfg.StrictWrites != nil {
		a.Policy.Strict = *cfg.StrictWrites
	}

	if !dependency.IsSet(a.Values, clients.PondKey) {
		store, err := a.openStore()
		if err != nil {
			return newCommandError("start", fmt.Sprintf("opening %s store", cfg.Backend), err, "Check the store paths and permissions in your configuration.")
		}
		dependency.Set(a.Values, clients.PondKey, store)
	}

	if !dependency.IsSet(a.Values, clients.PasteboardKey) {
		dependency.Set(a.Values, clients.PasteboardKey, clients.LivePasteboard(log))
	}

	log.WithFields(map[string]any{"backend": a.store().ID()}).Debug("store ready")
	return nil
}

func (a *AppContext) openStore() (pond.Store, error) {
	cfg := a.Config
	switch cfg.Backend {
	case config.BackendMemory:
		return clients.LivePond(), nil
	case config.BackendNoop:
		return clients.NoopPond(), nil
	case config.BackendPreferences:
		return pond.OpenPreferences(pond.PreferencesOptions{Path: cfg.Preferences.Path, Logger: a.Logger})
	case config.BackendSecure:
		return pond.OpenSecure(pond.SecureOptions{
			Path:       cfg.Secure.Path,
			KeyPath:    cfg.Secure.KeyPath,
			Passphrase: cfg.Secure.Passphrase,
			Logger:     a.Logger,
		})
	case config.BackendBlob:
		_, level := zstd.EncoderLevelFromString(cfg.Blob.Compression)
		store, err := pond.OpenBlob(pond.BlobOptions{Dir: cfg.Blob.Dir, Level: level, Logger: a.Logger})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// store resolves the Pond capability on every call.
func (a *AppContext) store() pond.Store {
	return dependency.InjectFrom(a.Values, clients.PondKey).Value()
}

func (a *AppContext) pasteboard() clients.Pasteboard {
	return dependency.InjectFrom(a.Values, clients.PasteboardKey).Value()
}

// Close releases resources held by opened stores.
func (a *AppContext) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
