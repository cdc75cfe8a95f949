package service

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/repository"
	"github.com/student-records-api/internal/tabular"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repo     repository.ImportRepository
	registry *tabular.Registry
	log      zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repo repository.ImportRepository, registry *tabular.Registry, log zerolog.Logger) *importService {
	return &importService{
		repo:     repo,
		registry: registry,
		log:      log.With().Str("service", "import").Logger(),
	}
}

// Import parses the uploaded file at filePath and inserts its rows into
// the destination table, one parameterized insert per row. The column set
// is inferred from the first row; rows whose cell count differs from it
// are inserted as-is (missing cells become NULL, extra cells are dropped)
// and counted in the summary rather than corrected. The uploaded file is
// deleted on every exit path.
func (s *importService) Import(ctx context.Context, filePath, table string) (*ImportSummary, error) {
	defer func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("file", filePath).Msg("Failed to delete uploaded file")
		}
	}()

	startTime := time.Now()

	columns, rows, err := tabular.Parse(filePath)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	// Allow-list check happens before any SQL text exists.
	if err := s.registry.Validate(table, columns); err != nil {
		return nil, err
	}

	summary := &ImportSummary{Table: table}
	for i, row := range rows {
		// Respect cancellation on long imports.
		if i%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		if row.Mismatched {
			summary.MismatchedRows++
			s.log.Warn().
				Str("table", table).
				Int("row", i+1).
				Msg("Row key set differs from first row")
		}

		values := make([]interface{}, len(columns))
		for j, col := range columns {
			if v, ok := row.Values[col]; ok {
				values[j] = v
			}
		}

		if err := s.repo.InsertRow(ctx, table, columns, values); err != nil {
			s.log.Error().Err(err).Str("table", table).Int("row", i+1).Msg("Import aborted")
			return nil, &ImportError{Row: i + 1, Err: err}
		}
		summary.Inserted++
	}

	duration := time.Since(startTime)
	s.log.Info().
		Str("table", table).
		Int("inserted", summary.Inserted).
		Int("mismatched_rows", summary.MismatchedRows).
		Int64("duration_ms", duration.Milliseconds()).
		Float64("rows_per_sec", float64(summary.Inserted)/duration.Seconds()).
		Msg("Import completed")

	return summary, nil
}
