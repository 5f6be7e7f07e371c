package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/augurd/augur/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a token repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "tokens"),
	}
}

func (r *repo) LookupActive(ctx context.Context, token string) (string, error) {
	q := "SELECT owner FROM api_tokens WHERE token = $1 AND active = TRUE"

	owner, err := repository.QueryOne(ctx, r.db, q, []any{token}, scanOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lookup token: %w", err)
	}

	return owner, nil
}

func scanOwner(s repository.Scanner) (string, error) {
	var owner string
	err := s.Scan(&owner)
	return owner, err
}
