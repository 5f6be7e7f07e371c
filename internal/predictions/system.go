package predictions

import (
	"context"

	"github.com/augurd/augur/pkg/pagination"
)

// System defines the public contract for prediction domain operations.
type System interface {
	Handler() *Handler

	// Predict runs every loaded classifier against the text, persists the
	// result under the owner, and returns the record with its generated id.
	Predict(ctx context.Context, text, owner string) (*Record, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id string) (*Record, error)
}

// Store is the persistence capability consumed by the pipeline. Insert is
// append-only and returns the generated identifier as a plain string;
// implementations must be safe for concurrent use.
type Store interface {
	Insert(ctx context.Context, record *Record) (string, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id string) (*Record, error)
}
