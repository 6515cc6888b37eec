package pond

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/alexisbeaulieu97/pond/internal/logger"
	pondErrors "github.com/alexisbeaulieu97/pond/pkg/errors"
)

var (
	sealedMagic = []byte("PND1")

	// ErrSealed is returned when the secure file cannot be opened with the
	// configured key.
	ErrSealed = errors.New("secure store cannot be decrypted with the configured key")
)

const (
	saltSize = 16
	keySize  = chacha20poly1305.KeySize
)

// SecureOptions configures a Secure store. When Passphrase is empty the key
// is read from KeyPath, which is created with 0600 permissions on first use.
type SecureOptions struct {
	Path       string
	KeyPath    string
	Passphrase string
	Logger     *logger.Logger
}

// Secure persists credentials in a file sealed with XChaCha20-Poly1305.
type Secure struct {
	*documentStore
}

// OpenSecure opens or creates the sealed store.
func OpenSecure(opts SecureOptions) (*Secure, error) {
	home := os.Getenv("HOME")
	if opts.Path == "" {
		opts.Path = filepath.Join(home, ".pond", "secure.pond")
	}
	if opts.KeyPath == "" {
		opts.KeyPath = filepath.Join(filepath.Dir(opts.Path), "secure.key")
	}

	salt, err := readSalt(opts.Path)
	if err != nil {
		return nil, pondErrors.NewStoreError("secure", "read header", err)
	}

	key, err := secureKey(opts, salt)
	if err != nil {
		return nil, pondErrors.NewStoreError("secure", "derive key", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, pondErrors.NewStoreError("secure", "init cipher", err)
	}

	store, err := openDocumentStore("secure", opts.Path, 0o700, 0o600, &sealedCodec{aead: aead, salt: salt}, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Secure{documentStore: store}, nil
}

// readSalt returns the salt recorded in an existing file, or a fresh one.
func readSalt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		return salt, nil
	}

	if len(data) < len(sealedMagic)+saltSize || !bytes.Equal(data[:len(sealedMagic)], sealedMagic) {
		return nil, fmt.Errorf("%s is not a secure store file", path)
	}
	return bytes.Clone(data[len(sealedMagic) : len(sealedMagic)+saltSize]), nil
}

func secureKey(opts SecureOptions, salt []byte) ([]byte, error) {
	if opts.Passphrase != "" {
		return argon2.IDKey([]byte(opts.Passphrase), salt, 2, 19*1024, 1, keySize), nil
	}

	key, err := os.ReadFile(opts.KeyPath)
	if err == nil {
		if len(key) != keySize {
			return nil, fmt.Errorf("key file %s must hold %d bytes", opts.KeyPath, keySize)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(opts.KeyPath), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(opts.KeyPath, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// sealedCodec lays files out as magic | salt | nonce | ciphertext.
type sealedCodec struct {
	aead cipher.AEAD
	salt []byte
}

func (c *sealedCodec) encode(values map[string]Value) ([]byte, error) {
	plain, err := yamlCodec{}.encode(values)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(sealedMagic)+len(c.salt)+len(nonce))
	header = append(header, sealedMagic...)
	header = append(header, c.salt...)
	header = append(header, nonce...)

	return c.aead.Seal(header, nonce, plain, sealedMagic), nil
}

func (c *sealedCodec) decode(data []byte) (map[string]Value, error) {
	offset := len(sealedMagic) + saltSize
	nonceSize := c.aead.NonceSize()
	if len(data) < offset+nonceSize {
		return nil, ErrSealed
	}

	nonce := data[offset : offset+nonceSize]
	plain, err := c.aead.Open(nil, nonce, data[offset+nonceSize:], sealedMagic)
	if err != nil {
		return nil, ErrSealed
	}

	return yamlCodec{}.decode(plain)
}
