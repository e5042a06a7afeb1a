package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/matching"
)

const (
	selectUserQuery = `SELECT id, document FROM users WHERE id = $1`
	selectJobsQuery = `SELECT id, document FROM jobs ORDER BY id`
)

// querier is the part of *pgxpool.Pool the source needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads JSONB documents from the users and jobs tables.
type PostgresSource struct {
	db     querier
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresSource connects to the database and verifies the connection.
func NewPostgresSource(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	source := newPostgresSource(pool, logger)
	source.pool = pool
	return source, nil
}

func newPostgresSource(db querier, logger *zap.Logger) *PostgresSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresSource{db: db, logger: logger}
}

func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresSource) User(ctx context.Context, id string) (*matching.User, error) {
	var (
		rowID string
		raw   []byte
	)
	err := s.db.QueryRow(ctx, selectUserQuery, id).Scan(&rowID, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	doc, err := rowDocument(rowID, raw)
	if err != nil {
		return nil, err
	}

	return findUser([]any{doc}, id, s.logger)
}

func (s *PostgresSource) Jobs(ctx context.Context) (*Jobs, error) {
	rows, err := s.db.Query(ctx, selectJobsQuery)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		var (
			rowID string
			raw   []byte
		)
		if err := rows.Scan(&rowID, &raw); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}

		doc, err := rowDocument(rowID, raw)
		if err != nil {
			s.logger.Warn("skipping job row", zap.String("id", rowID), zap.Error(err))
			continue
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return decodeJobs(items, s.logger), nil
}

// rowDocument parses the JSONB column. The row id wins over a missing id
// inside the document.
func rowDocument(rowID string, raw []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse document %s: %w", rowID, err)
		}
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	if _, ok := doc["id"]; !ok {
		doc["id"] = rowID
	}

	return doc, nil
}
