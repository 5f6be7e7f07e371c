package predictions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/augurd/augur/internal/classifier"
	"github.com/augurd/augur/pkg/pagination"
)

// maxFanOut bounds concurrent classifier invocations within one request.
const maxFanOut = 4

type pipeline struct {
	store      Store
	registry   *classifier.Registry
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates the prediction pipeline implementing the System interface.
func New(
	store Store,
	registry *classifier.Registry,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &pipeline{
		store:      store,
		registry:   registry,
		logger:     logger.With("system", "predictions"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (p *pipeline) Handler() *Handler {
	return NewHandler(p, p.logger, p.pagination)
}

// Predict runs every classifier in the registry snapshot against the text.
// Any classifier error fails the whole request before a single byte is
// written: a stored record always reflects the complete model set. An empty
// registry is valid; the empty predictions mapping is still persisted.
func (p *pipeline) Predict(ctx context.Context, text, owner string) (*Record, error) {
	snapshot := p.registry.Snapshot()

	results := make(map[string]classifier.Result, len(snapshot))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit(len(snapshot)))

	for name, c := range snapshot {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			result, err := c.Predict(gctx, text)
			if err != nil {
				return fmt.Errorf("%w: model %s: %w", ErrClassifierFailed, name, err)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	record := &Record{
		Text:        text,
		Owner:       owner,
		Predictions: results,
		Timestamp:   p.now().UTC().Unix(),
	}

	id, err := p.store.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	record.ID = id

	p.logger.Info("prediction recorded",
		"id", id,
		"owner", owner,
		"models", len(results),
	)
	return record, nil
}

func (p *pipeline) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(p.pagination)
	return p.store.List(ctx, page, filters)
}

func (p *pipeline) Find(ctx context.Context, id string) (*Record, error) {
	return p.store.Find(ctx, id)
}

func fanOutLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxFanOut {
		return maxFanOut
	}
	return n
}
