package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

// Loader produces catalog snapshots.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Holder keeps the current snapshot. Readers never observe a partially
// built catalog: a successful load swaps the whole snapshot.
type Holder struct {
	loader Loader
	logg   *logger.Logger

	current atomic.Pointer[Catalog]
	loaded  atomic.Bool

	reloadMu sync.Mutex

	errMu   sync.RWMutex
	initErr error
}

// NewHolder returns a holder with an empty snapshot.
func NewHolder(loader Loader, logg *logger.Logger) *Holder {
	h := &Holder{loader: loader, logg: logg}
	h.current.Store(Empty())
	return h
}

// Load fetches a new snapshot. Until the first success, failures are kept
// and reported by Err; after that a failed reload keeps the previous snapshot.
func (h *Holder) Load(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	cat, err := h.loader.Load(ctx)
	if err != nil {
		if h.loaded.Load() {
			if h.logg != nil {
				h.logg.Error(ctx, "catalog reload failed; keeping previous snapshot", err)
			}
			return err
		}
		h.setErr(err)
		if h.logg != nil {
			h.logg.Error(ctx, "catalog load failed", err)
		}
		return err
	}

	h.current.Store(cat)
	h.loaded.Store(true)
	h.setErr(nil)
	if h.logg != nil {
		ctx = h.logg.WithFields(ctx, map[string]any{
			"items":    cat.Len(),
			"rejected": cat.Rejected,
			"brands":   len(cat.Brands),
			"source":   cat.Source,
		})
		h.logg.Info(ctx, "catalog loaded")
	}
	return nil
}

// Snapshot returns the current catalog; never nil.
func (h *Holder) Snapshot() *Catalog {
	return h.current.Load()
}

// Loaded reports whether any load has succeeded.
func (h *Holder) Loaded() bool {
	return h.loaded.Load()
}

// Err returns the error of the initial load, if it failed and no load has
// succeeded since.
func (h *Holder) Err() error {
	h.errMu.RLock()
	defer h.errMu.RUnlock()
	return h.initErr
}

func (h *Holder) setErr(err error) {
	h.errMu.Lock()
	h.initErr = err
	h.errMu.Unlock()
}
