package favorites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrSlotEmpty reports that nothing has been written to the slot yet.
var ErrSlotEmpty = errors.New("favorites slot is empty")

// Slot persists raw favorites payloads under a name.
type Slot interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, payload []byte) error
	Backend() string
}

// MemorySlot keeps payloads in process memory.
type MemorySlot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: map[string][]byte{}}
}

func (m *MemorySlot) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[name]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), payload...), nil
}

func (m *MemorySlot) Write(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = append([]byte(nil), payload...)
	return nil
}

func (m *MemorySlot) Backend() string { return "memory" }

// FileSlot stores each slot as a JSON file inside Dir.
type FileSlot struct {
	Dir string
}

func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{Dir: dir}
}

var fileNameReplacer = strings.NewReplacer(":", "__", "/", "_", "\\", "_")

func (f *FileSlot) path(name string) string {
	return filepath.Join(f.Dir, fileNameReplacer.Replace(name)+".json")
}

func (f *FileSlot) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites file: %w", err)
	}
	return payload, nil
}

// Write replaces the slot file through a rename so readers never see a torn payload.
func (f *FileSlot) Write(ctx context.Context, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.Dir, ".favorites-*")
	if err != nil {
		return fmt.Errorf("create favorites temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write favorites temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close favorites temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		return fmt.Errorf("replace favorites file: %w", err)
	}
	return nil
}

func (f *FileSlot) Backend() string { return "file" }
