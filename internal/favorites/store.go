package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

// DefaultSlotName is the slot used when no client is given.
const DefaultSlotName = "shobi-favorites"

type recorder interface {
	IncToggle(added bool)
	IncPersistFailure(backend string)
}

// Option customizes a Store.
type Option func(*Store)

// WithMetrics records toggles and persistence failures.
func WithMetrics(m recorder) Option {
	return func(s *Store) { s.metrics = m }
}

// Store is an ordered set of item codes mirrored into one slot.
type Store struct {
	slot    Slot
	name    string
	logg    *logger.Logger
	metrics recorder

	mu    sync.RWMutex
	codes []string
	index map[string]int
}

// Open loads the set from the slot. Missing or unreadable payloads yield an
// empty set; Open never fails.
func Open(ctx context.Context, slot Slot, name string, logg *logger.Logger, opts ...Option) *Store {
	if name == "" {
		name = DefaultSlotName
	}
	s := &Store{slot: slot, name: name, logg: logg, codes: []string{}, index: map[string]int{}}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if codes, index, ok := s.read(ctx); ok {
		s.codes, s.index = codes, index
	}
}

// read decodes the persisted set. An absent or corrupt payload is an empty
// set; ok is false only when the slot itself could not be read.
func (s *Store) read(ctx context.Context) (codes []string, index map[string]int, ok bool) {
	codes, index = []string{}, map[string]int{}
	payload, err := s.slot.Read(ctx, s.name)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			return codes, index, true
		}
		s.warn(ctx, "favorites slot unreadable", err, "")
		return codes, index, false
	}

	var stored []string
	if err := json.Unmarshal(payload, &stored); err != nil {
		s.warn(ctx, "favorites payload corrupt; starting empty", err, "")
		return codes, index, true
	}
	for _, code := range stored {
		if _, seen := index[code]; code == "" || seen {
			continue
		}
		index[code] = len(codes)
		codes = append(codes, code)
	}
	return codes, index, true
}

// Name returns the slot name backing the store.
func (s *Store) Name() string { return s.name }

// Toggle re-reads the slot, adds the code when absent and removes it
// otherwise, then writes the whole set back. Other writers of the same slot
// are picked up by the re-read. When the slot cannot be read the in-memory set
// is used. Write failures are logged and otherwise ignored. It reports whether
// code is a member afterwards.
func (s *Store) Toggle(ctx context.Context, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	added := false
	if _, ok := s.index[code]; ok {
		s.remove(code)
	} else {
		s.index[code] = len(s.codes)
		s.codes = append(s.codes, code)
		added = true
	}
	if s.metrics != nil {
		s.metrics.IncToggle(added)
	}

	payload, err := json.Marshal(s.codes)
	if err == nil {
		err = s.slot.Write(ctx, s.name, payload)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncPersistFailure(s.slot.Backend())
		}
		s.warn(ctx, "favorites write failed", err, code)
	}
	return added
}

func (s *Store) remove(code string) {
	idx := s.index[code]
	s.codes = append(s.codes[:idx], s.codes[idx+1:]...)
	delete(s.index, code)
	for i := idx; i < len(s.codes); i++ {
		s.index[s.codes[i]] = i
	}
}

func (s *Store) Contains(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[code]
	return ok
}

// Codes returns the members in insertion order.
func (s *Store) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.codes)
}

func (s *Store) warn(ctx context.Context, msg string, err error, code string) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"slot":    s.name,
		"backend": s.slot.Backend(),
		"error":   err.Error(),
	})
	if code != "" {
		ctx = s.logg.WithItemCode(ctx, code)
	}
	s.logg.Warn(ctx, msg)
}
