package favorites

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type snapshotter interface {
	Snapshot() *catalog.Catalog
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Slot     Slot
	BaseName string
	Catalog  snapshotter
	Logger   *logger.Logger
	Metrics  recorder
}

// Service resolves per-client stores for the HTTP surface.
type Service interface {
	Store(ctx context.Context, client string) (*Store, error)
	List(ctx context.Context, client string) ([]string, error)
	Toggle(ctx context.Context, client, code string) (bool, error)
	Contains(ctx context.Context, client, code string) (bool, error)
	Backend() string
}

type service struct {
	slot     Slot
	baseName string
	catalog  snapshotter
	logg     *logger.Logger
	metrics  recorder

	// toggleMu serializes read-modify-write cycles within this process.
	toggleMu sync.Mutex
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Slot == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites slot is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	base := strings.TrimSpace(params.BaseName)
	if base == "" {
		base = DefaultSlotName
	}
	return &service{
		slot:     params.Slot,
		baseName: base,
		catalog:  params.Catalog,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// SlotName maps a client id to its slot; the anonymous client uses base.
func SlotName(base, client string) string {
	if client == "" {
		return base
	}
	return base + ":" + client
}

// Store opens the client's store from its slot. Stores are not kept between
// calls so every request sees writes made by other processes.
func (s *service) Store(ctx context.Context, client string) (*Store, error) {
	client = strings.TrimSpace(client)
	if client != "" && !clientIDPattern.MatchString(client) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client id").
			WithDetails(map[string]any{"pattern": clientIDPattern.String()})
	}
	name := SlotName(s.baseName, client)

	var opts []Option
	if s.metrics != nil {
		opts = append(opts, WithMetrics(s.metrics))
	}
	return Open(ctx, s.slot, name, s.logg, opts...), nil
}

func (s *service) List(ctx context.Context, client string) ([]string, error) {
	store, err := s.Store(ctx, client)
	if err != nil {
		return nil, err
	}
	return store.Codes(), nil
}

// Toggle flips membership of a catalog code. Codes outside the current
// catalog leave the set untouched and report the existing membership.
func (s *service) Toggle(ctx context.Context, client, code string) (bool, error) {
	store, err := s.Store(ctx, client)
	if err != nil {
		return false, err
	}
	code = strings.TrimSpace(code)
	if !s.catalog.Snapshot().Contains(code) {
		return store.Contains(code), nil
	}
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()
	return store.Toggle(ctx, code), nil
}

func (s *service) Contains(ctx context.Context, client, code string) (bool, error) {
	store, err := s.Store(ctx, client)
	if err != nil {
		return false, err
	}
	return store.Contains(code), nil
}

func (s *service) Backend() string {
	return s.slot.Backend()
}
