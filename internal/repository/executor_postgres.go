package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/schema"
	"go.uber.org/zap"
)

// pgUndefinedFunction is raised when exec_assistant_query is not installed.
const pgUndefinedFunction = "42883"

// QueryExecutorPostgres runs validated assistant queries. The primary path
// delegates to the exec_assistant_query SQL function, which substitutes the
// tenant parameter server-side. The structured fallback builds a constrained
// single-table query from a parsed intent; it never interpolates the tenant
// id into SQL text.
type QueryExecutorPostgres struct {
	db              *pgxpool.Pool
	defaultRowLimit int
	logger          *zap.Logger
}

func NewQueryExecutorPostgres(db *pgxpool.Pool, defaultRowLimit int, logger *zap.Logger) *QueryExecutorPostgres {
	return &QueryExecutorPostgres{
		db:              db,
		defaultRowLimit: defaultRowLimit,
		logger:          logger,
	}
}

// Execute submits the rewritten query text plus the tenant id to the generic
// execution entry point. An absent entry point is reported as
// entity.ErrExecFunctionUnavailable so the caller can degrade to the
// structured fallback; query errors are returned as-is.
func (r *QueryExecutorPostgres) Execute(ctx context.Context, query string, orgID string) ([]map[string]any, error) {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}

	rows, err := r.db.Query(ctx, "SELECT exec_assistant_query($1, $2) AS row", query, orgUUID)
	if err != nil {
		return nil, classifyExecError(err)
	}
	defer rows.Close()

	var results []map[string]any
	for rows.Next() {
		var record map[string]any
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyExecError(err)
	}

	return results, nil
}

func classifyExecError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedFunction {
		return entity.ErrExecFunctionUnavailable
	}
	return fmt.Errorf("execute assistant query: %w", err)
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ExecuteIntent runs the constrained fallback: one known table, the tenant
// filter, and the small recognized predicate set. Predicates the intent
// parser dropped are already absent here; the result may therefore be a
// superset of what the candidate query asked for.
func (r *QueryExecutorPostgres) ExecuteIntent(ctx context.Context, intent entity.QueryIntent, orgID string) ([]map[string]any, error) {
	if !isKnownTable(intent.Table) {
		return nil, entity.ErrUnknownIntentTable
	}

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(intent.Table)
	sb.WriteString(" WHERE ")
	sb.WriteString(schema.TenantColumn)
	sb.WriteString(" = $1")
	args := []any{orgUUID}

	if intent.Statut != nil {
		if !intent.Statut.IsValid() {
			return nil, fmt.Errorf("invalid statut value %q", *intent.Statut)
		}
		args = append(args, string(*intent.Statut))
		sb.WriteString(" AND statut = $")
		sb.WriteString(strconv.Itoa(len(args)))
	}
	if intent.UnassignedOnly {
		sb.WriteString(" AND assigned_to IS NULL")
	}
	if intent.OrderBy != "" && identRe.MatchString(intent.OrderBy) {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(intent.OrderBy)
		if intent.OrderDesc {
			sb.WriteString(" DESC")
		}
	}

	limit := intent.Limit
	if limit <= 0 || limit > r.defaultRowLimit {
		limit = r.defaultRowLimit
	}
	args = append(args, limit)
	sb.WriteString(" LIMIT $")
	sb.WriteString(strconv.Itoa(len(args)))

	ctxzap.Info(ctx, "executing structured fallback query",
		zap.String("table", intent.Table),
		zap.Int("limit", limit),
	)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("execute fallback query: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()

	var results []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		record := make(map[string]any, len(fields))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return results, nil
}

func isKnownTable(table string) bool {
	for _, known := range schema.KnownTables() {
		if table == known {
			return true
		}
	}
	return false
}
