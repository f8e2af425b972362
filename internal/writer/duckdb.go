package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/series"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBWriter collects results in an in-memory DuckDB table and exports
// them to a single parquet file on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	logger     *logger.Logger
}

// NewDuckDBWriter creates a writer exporting to outputPath.
func NewDuckDBWriter(outputPath string, log *logger.Logger) ResultWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBWriter{
		outputPath: outputPath,
		logger:     log,
	}
}

// Initialize opens the database, creates the results table, begins a
// transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS indicator_results (
			id TEXT,
			run_id TEXT,
			job TEXT,
			symbol TEXT,
			indicator TEXT,
			series TEXT,
			time TIMESTAMP,
			value DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO indicator_results (id, run_id, job, symbol, indicator, series, time, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write implements ResultWriter. Undefined points are stored as NULL.
func (w *DuckDBWriter) Write(runID string, job string, candles []types.MarketData, result types.IndicatorResult) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeResultWriteFailed, "writer not initialized or statement is nil")
	}

	for _, s := range result.Series {
		if len(s.Values) != len(candles) {
			return errors.Newf(errors.ErrCodeInvalidLength, "series %q has %d values for %d candles", s.Name, len(s.Values), len(candles))
		}
	}

	for _, s := range result.Series {
		for i, value := range series.ToOptional(s.Values) {
			var v any
			if value.IsSome() {
				v = value.Unwrap()
			}

			_, err := w.stmt.Exec(
				uuid.New().String(),
				runID,
				job,
				candles[i].Symbol,
				string(result.Indicator),
				s.Name,
				candles[i].Time,
				v,
			)
			if err != nil {
				return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to insert result", err)
			}
		}
	}

	return nil
}

// Finalize commits the transaction and exports the results to parquet.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeResultWriteFailed, "writer not initialized or transaction is nil")
	}

	if err := w.stmt.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to close statement", err)
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	if dir := filepath.Dir(w.outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create output directory", err)
		}
	}

	path := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err := w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM indicator_results ORDER BY job, series, time) TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to export to Parquet", err)
	}

	w.logger.Info("Exported indicator results", zap.String("path", w.outputPath))

	return w.outputPath, nil
}

// Close cleans up the statement, any open transaction and the database.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close statement: %v", err))
		}

		w.stmt = nil
	}

	// Finalize was not called or failed
	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeResultWriteFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

// GetOutputPath implements ResultWriter.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
