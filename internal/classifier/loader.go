package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/augurd/augur/internal/config"
	"github.com/augurd/augur/pkg/storage"
)

// Load constructs the classifier registry from the configured model sources.
// Any failure is returned to the caller: a service must not start serving
// predictions with a partially loaded registry. An empty model list is valid
// and yields an empty registry.
func Load(
	ctx context.Context,
	models []config.Model,
	store storage.System,
	logger *slog.Logger,
) (*Registry, error) {
	logger = logger.With("system", "classifier")
	classifiers := make(map[string]Classifier, len(models))

	for _, m := range models {
		c, err := loadOne(ctx, m, store)
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", m.Name, err)
		}

		classifiers[m.Name] = c
		logger.Info("model loaded", "name", m.Name, "source", m.Source)
	}

	logger.Info("classifier registry ready", "models", len(classifiers))
	return NewRegistry(classifiers), nil
}

func loadOne(ctx context.Context, m config.Model, store storage.System) (Classifier, error) {
	switch m.Source {
	case config.ModelSourceFile:
		artifact, err := os.ReadFile(m.Path)
		if err != nil {
			return nil, fmt.Errorf("read artifact: %w", err)
		}
		return NewLinear(artifact)

	case config.ModelSourceBlob:
		if store == nil {
			return nil, fmt.Errorf("blob source requires storage configuration")
		}
		ok, err := store.Exists(ctx, m.Path)
		if err != nil {
			return nil, fmt.Errorf("stat artifact: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("artifact %s not found in container", m.Path)
		}
		artifact, err := store.Fetch(ctx, m.Path)
		if err != nil {
			return nil, fmt.Errorf("fetch artifact: %w", err)
		}
		return NewLinear(artifact)

	case config.ModelSourceRemote:
		return NewRemote(m.URL, m.TimeoutDuration()), nil

	default:
		return nil, fmt.Errorf("unknown source: %s", m.Source)
	}
}
