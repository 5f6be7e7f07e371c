package classifier

// Registry is an immutable mapping of model name to classifier, populated once
// at startup. Reloading models at runtime is not supported; requests read the
// registry without locking.
type Registry struct {
	classifiers map[string]Classifier
}

// NewRegistry creates a Registry from the given mapping. The map is copied so
// later mutation of the argument cannot affect the registry.
func NewRegistry(classifiers map[string]Classifier) *Registry {
	copied := make(map[string]Classifier, len(classifiers))
	for name, c := range classifiers {
		copied[name] = c
	}
	return &Registry{classifiers: copied}
}

// Snapshot returns a copy of the name-to-classifier mapping. Callers iterate
// the snapshot so a request observes a consistent model set.
func (r *Registry) Snapshot() map[string]Classifier {
	copied := make(map[string]Classifier, len(r.classifiers))
	for name, c := range r.classifiers {
		copied[name] = c
	}
	return copied
}

// Len returns the number of registered classifiers.
func (r *Registry) Len() int {
	return len(r.classifiers)
}
