package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/elapsed/internal/config"
	"github.com/lthummus/elapsed/internal/db"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

var _ db.DB = (*SQLite)(nil)

func NewSQLiteFromConfig() (*SQLite, error) {
	config.Lock.RLock()
	file := viper.GetString(config.KeyHistoryFile)
	config.Lock.RUnlock()

	if file == "" {
		return nil, errors.New("db: NewSQLiteFromConfig: db file not set")
	}

	return NewSQLite(file)
}

func NewSQLite(file string) (*SQLite, error) {
	absDBFile, err := filepath.Abs(file)
	if err != nil {
		log.Warn().Str("raw_db_file", file).Err(err).Msg("could not get db file absolute path")
	}

	log.Debug().Str("raw_db_file", file).Str("abs_db_file", absDBFile).Msg("starting database initialization")

	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return nil, fmt.Errorf("db: NewSQLite: could not create db directory: %w", err)
	}

	database, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("db: NewSQLite: could not open db: %w", err)
	}

	err = migrateDatabase(database)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("db: NewSQLite: could not migrate database: %w", err)
	}

	// reopen database now that migration is complete
	database, err = sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("db: NewSQLite: could not open db: %w", err)
	}

	log.Debug().Str("raw_db_file", file).Str("abs_db_file", absDBFile).Msg("finished database initialization")

	return &SQLite{
		db: database,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*db.Run, error) {
	var r db.Run
	var args string
	var startedAt int64
	var elapsed int64

	err := row.Scan(&r.ID, &r.Command, &args, &startedAt, &elapsed, &r.Formatted, &r.ExitCode, &r.Error)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(args), &r.Args); err != nil {
		log.Warn().Err(err).Str("run_id", r.ID).Msg("could not decode run args")
		return nil, err
	}

	r.StartedAt = time.Unix(0, startedAt)
	r.Elapsed = time.Duration(elapsed)

	return &r, nil
}

func (s *SQLite) SaveRun(ctx context.Context, run *db.Run) error {
	args := run.Args
	if args == nil {
		args = []string{}
	}
	encodedArgs, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("db: SaveRun: could not encode args: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (id, command, args, started_at, elapsed_ns, formatted, exit_code, error) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		run.ID, run.Command, string(encodedArgs), run.StartedAt.UnixNano(), int64(run.Elapsed), run.Formatted, run.ExitCode, run.Error)
	if err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("could not save run")
		return fmt.Errorf("db: SaveRun: could not insert run: %w", err)
	}

	return nil
}

func (s *SQLite) GetRun(ctx context.Context, id string) (*db.Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, command, args, started_at, elapsed_ns, formatted, exit_code, error FROM runs WHERE id = $1", id)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrRunNotFound
		}
		return nil, fmt.Errorf("db: GetRun: could not read run: %w", err)
	}

	return r, nil
}

func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]*db.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, command, args, started_at, elapsed_ns, formatted, exit_code, error FROM runs ORDER BY started_at DESC, rowid DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("db: ListRuns: could not query runs: %w", err)
	}
	defer rows.Close()

	var runs []*db.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("db: ListRuns: could not read run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: ListRuns: could not iterate runs: %w", err)
	}

	return runs, nil
}

func (s *SQLite) ClearRuns(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("db: ClearRuns: could not delete runs: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db: ClearRuns: could not count deleted runs: %w", err)
	}

	log.Info().Int64("deleted", deleted).Msg("cleared run history")

	return deleted, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
