package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/student-records-api/internal/database"
)

// importRepo performs the schema-driven inserts of the import pipeline.
// Callers must validate table and column names against the tabular
// allow-list before calling InsertRow; identifiers are still quoted here
// as a second line of defense.
type importRepo struct {
	db *database.DB
}

// NewImportRepo creates a new import repository
func NewImportRepo(db *database.DB) ImportRepository {
	return &importRepo{db: db}
}

// InsertRow inserts one row into the destination table, binding values
// positionally to the inferred columns. Each row commits independently;
// there is no surrounding transaction.
func (r *importRepo) InsertRow(ctx context.Context, table string, columns []string, values []interface{}) error {
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("column/value count mismatch: %d columns, %d values", len(columns), len(values))
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	_, err := r.db.ExecContext(ctx, query, values...)
	return err
}
