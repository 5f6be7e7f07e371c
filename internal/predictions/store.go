package predictions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/augurd/augur/pkg/pagination"
	"github.com/augurd/augur/pkg/repository"
)

type pgStore struct {
	db *sql.DB
}

// NewStore creates the Postgres-backed prediction log store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, record *Record) (string, error) {
	predictionsJSON, err := json.Marshal(record.Predictions)
	if err != nil {
		return "", fmt.Errorf("marshal predictions: %w", err)
	}

	q := `
		INSERT INTO predictions(text, owner, predictions, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	row := s.db.QueryRowContext(ctx, q, record.Text, record.Owner, predictionsJSON, record.Timestamp)
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("insert prediction: %w", err)
	}

	// The caller-facing identifier is a plain string; the uuid type stays
	// behind this boundary.
	return id.String(), nil
}

func (s *pgStore) Find(ctx context.Context, id string) (*Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	q := `
		SELECT id, text, owner, predictions, recorded_at
		FROM predictions
		WHERE id = $1`

	r, err := repository.QueryOne(ctx, s.db, q, []any{parsed}, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	return &r, nil
}

func (s *pgStore) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	where, args := buildFilterClause(filters)

	countQ := "SELECT COUNT(*) FROM predictions" + where
	var total int
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}

	pageQ := "SELECT id, text, owner, predictions, recorded_at FROM predictions" +
		where +
		" ORDER BY recorded_at DESC, id" +
		" LIMIT $" + strconv.Itoa(len(args)+1) +
		" OFFSET $" + strconv.Itoa(len(args)+2)
	pageArgs := append(args, page.PageSize, page.Offset())

	items, err := repository.QueryMany(ctx, s.db, pageQ, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func buildFilterClause(filters Filters) (string, []any) {
	var clauses []string
	var args []any

	if filters.Owner != nil {
		args = append(args, *filters.Owner)
		clauses = append(clauses, "owner = $"+strconv.Itoa(len(args)))
	}
	if filters.Model != nil {
		args = append(args, *filters.Model)
		clauses = append(clauses, "predictions ? $"+strconv.Itoa(len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
