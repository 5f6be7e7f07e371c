package config

import (
	"fmt"
	"time"
)

const (
	// ModelSourceFile loads a linear-classifier artifact from the local filesystem.
	ModelSourceFile = "file"
	// ModelSourceBlob loads a linear-classifier artifact from blob storage.
	ModelSourceBlob = "blob"
	// ModelSourceRemote wraps an external HTTP inference endpoint.
	ModelSourceRemote = "remote"

	defaultRemoteTimeout = "30s"
)

// Model describes one classifier to load at startup. Path is a filesystem path
// for file sources and a blob key for blob sources; URL applies to remote
// sources only.
type Model struct {
	Name    string `toml:"name"`
	Source  string `toml:"source"`
	Path    string `toml:"path"`
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (m *Model) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(m.Timeout)
	return d
}

func finalizeModels(models []Model) error {
	seen := make(map[string]struct{}, len(models))

	for i := range models {
		m := &models[i]

		if m.Source == "" {
			m.Source = ModelSourceFile
		}
		if m.Timeout == "" {
			m.Timeout = defaultRemoteTimeout
		}

		if m.Name == "" {
			return fmt.Errorf("model %d: name required", i)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("duplicate model name: %s", m.Name)
		}
		seen[m.Name] = struct{}{}

		switch m.Source {
		case ModelSourceFile, ModelSourceBlob:
			if m.Path == "" {
				return fmt.Errorf("model %s: path required for %s source", m.Name, m.Source)
			}
		case ModelSourceRemote:
			if m.URL == "" {
				return fmt.Errorf("model %s: url required for remote source", m.Name)
			}
		default:
			return fmt.Errorf("model %s: unknown source: %s", m.Name, m.Source)
		}

		if _, err := time.ParseDuration(m.Timeout); err != nil {
			return fmt.Errorf("model %s: invalid timeout: %w", m.Name, err)
		}
	}

	return nil
}
