package pond

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/pond/internal/logger"
	pondErrors "github.com/alexisbeaulieu97/pond/pkg/errors"
)

const blobExt = ".blob"

// BlobOptions configures a Blob store.
type BlobOptions struct {
	// Dir holds one file per key. Defaults to ~/.pond/blobs.
	Dir    string
	Level  zstd.EncoderLevel
	Logger *logger.Logger
}

// Blob stores each entry in its own zstd-compressed file, so values of any
// size can be kept without loading the whole store.
type Blob struct {
	dir string
	log *logger.Logger

	mu      sync.RWMutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// blobRecord is YAML so keys and text that are not valid UTF-8 survive as
// !!binary scalars.
type blobRecord struct {
	Key   string `yaml:"key"`
	Value entry  `yaml:"value"`
}

// OpenBlob prepares the blob directory.
func OpenBlob(opts BlobOptions) (*Blob, error) {
	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".pond", "blobs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pondErrors.NewStoreError("blob", "create directory", err)
	}

	level := opts.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, pondErrors.NewStoreError("blob", "init encoder", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, pondErrors.NewStoreError("blob", "init decoder", err)
	}

	return &Blob{
		dir:     dir,
		log:     opts.Logger.Component("blob").WithFields(map[string]any{"dir": dir}),
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func (b *Blob) ID() string { return "blob" }

// Dir returns the directory holding the blob files.
func (b *Blob) Dir() string { return b.dir }

func (b *Blob) Lookup(key string) (Value, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	record, ok := b.read(b.pathFor(key))
	if !ok || record.Key != key {
		return None, false
	}

	v, err := decodeEntry(record.Value)
	if err != nil {
		b.log.Error(err, "failed to decode blob "+key)
		return None, false
	}
	return v, true
}

func (b *Blob) Put(key string, value Value) {
	if value.IsNone() {
		b.Remove(key)
		return
	}

	data, err := yaml.Marshal(blobRecord{Key: key, Value: encodeEntry(value.normalized())})
	if err != nil {
		b.log.Error(err, "failed to encode blob "+key)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := writeFileAtomic(b.pathFor(key), b.encoder.EncodeAll(data, nil), 0o644); err != nil {
		b.log.Error(err, "failed to write blob "+key)
	}
}

func (b *Blob) Remove(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.pathFor(key)); err != nil && !os.IsNotExist(err) {
		b.log.Error(err, "failed to remove blob "+key)
	}
}

func (b *Blob) Contains(key string) bool {
	_, ok := b.Lookup(key)
	return ok
}

// RemoveAll deletes the blob files and leaves anything else in the
// directory alone.
func (b *Blob) RemoveAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, path := range b.files() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			b.log.Error(err, "failed to remove blob file")
		}
	}
}

func (b *Blob) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var keys []string
	for _, path := range b.files() {
		if record, ok := b.read(path); ok {
			keys = append(keys, record.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Close releases the compression state.
func (b *Blob) Close() error {
	b.decoder.Close()
	return b.encoder.Close()
}

func (b *Blob) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(b.dir, hex.EncodeToString(sum[:])+blobExt)
}

func (b *Blob) files() []string {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		b.log.Error(err, "failed to list blob directory")
		return nil
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), blobExt) {
			continue
		}
		paths = append(paths, filepath.Join(b.dir, e.Name()))
	}
	return paths
}

func (b *Blob) read(path string) (blobRecord, bool) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.log.Error(err, "failed to read blob file")
		}
		return blobRecord{}, false
	}

	data, err := b.decoder.DecodeAll(compressed, nil)
	if err != nil {
		b.log.Error(fmt.Errorf("%s: %w", filepath.Base(path), err), "failed to decompress blob")
		return blobRecord{}, false
	}

	var record blobRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		b.log.Error(fmt.Errorf("%s: %w", filepath.Base(path), err), "failed to parse blob")
		return blobRecord{}, false
	}
	return record, true
}
