package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.MaterialRate, error)
}

// Index holds an in-memory snapshot of the material-rate catalog, refreshed
// on an interval while at least one subscriber is attached. There is exactly
// one refresh loop per Index regardless of how many consumers share it; the
// loop stops when the last subscription closes.
type Index struct {
	repo     Repository
	logger   *zap.Logger
	interval time.Duration

	mu       sync.RWMutex
	snapshot []domain.MaterialRate
	refs     int
	stop     chan struct{}
}

func NewIndex(repo Repository, interval time.Duration, logger *zap.Logger) *Index {
	return &Index{
		repo:     repo,
		logger:   logger,
		interval: interval,
	}
}

// Subscription is one consumer's handle on the shared refresh loop. Close is
// idempotent.
type Subscription struct {
	idx  *Index
	once sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(s.idx.detach)
}

// Subscribe attaches a consumer. The first subscriber loads the snapshot
// synchronously so lookups are valid immediately, then starts the refresh
// loop.
func (idx *Index) Subscribe(ctx context.Context) (*Subscription, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.refs == 0 {
		rates, err := idx.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		idx.snapshot = rates
		idx.stop = make(chan struct{})
		go idx.refreshLoop(idx.stop)
	}
	idx.refs++

	return &Subscription{idx: idx}, nil
}

func (idx *Index) detach() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.refs--
	if idx.refs == 0 {
		close(idx.stop)
		idx.stop = nil
	}
}

func (idx *Index) refreshLoop(stop chan struct{}) {
	ticker := time.NewTicker(idx.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			idx.refresh()
		}
	}
}

func (idx *Index) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rates, err := idx.repo.FindAll(ctx)
	if err != nil {
		// Keep serving the previous snapshot; rates rarely change.
		idx.logger.Warn("catalog refresh failed", zap.Error(err))
		return
	}

	idx.mu.Lock()
	idx.snapshot = rates
	idx.mu.Unlock()
}

// Lookup returns the rates whose location matches the given one,
// case-insensitively.
func (idx *Index) Lookup(location string) []domain.MaterialRate {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []domain.MaterialRate
	for _, m := range idx.snapshot {
		if m.MatchesLocation(location) {
			out = append(out, m)
		}
	}
	return out
}

// FindByName resolves a material by name within a location.
func (idx *Index) FindByName(name, location string) (domain.MaterialRate, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, m := range idx.snapshot {
		if m.MatchesLocation(location) && strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return domain.MaterialRate{}, apperrors.NewNotFoundError(
		fmt.Sprintf("material %q not available at %s", name, location))
}
