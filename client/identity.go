package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryIdentity holds the client token for the lifetime of the process.
type MemoryIdentity struct {
	mu    sync.Mutex
	token string
}

// NewMemoryIdentity creates an in-memory identity provider.
func NewMemoryIdentity() *MemoryIdentity {
	return &MemoryIdentity{}
}

// GetOrCreate returns the process-local token, minting it on first call.
func (m *MemoryIdentity) GetOrCreate() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		m.token = uuid.NewString()
	}
	return m.token, nil
}

// FileIdentity persists the client token in a file, so the same machine
// keeps the same presence record across runs.
type FileIdentity struct {
	mu   sync.Mutex
	path string
}

// NewFileIdentity creates a file-backed identity provider. The file and its
// parent directory are created on first use.
func NewFileIdentity(path string) *FileIdentity {
	return &FileIdentity{path: path}
}

// GetOrCreate reads the stored token, minting and writing one when the file
// is missing or empty.
func (f *FileIdentity) GetOrCreate() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read identity file: %w", err)
	}

	token := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return "", fmt.Errorf("create identity dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write identity file: %w", err)
	}
	return token, nil
}
