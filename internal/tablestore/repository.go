// Package tablestore keeps the current points table in Postgres. The table
// is replaced wholesale on every write; no history is kept.
package tablestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nrrscope/nrrscope/pkg/overs"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// ErrEmpty is returned by Latest when no table has been saved.
var ErrEmpty = errors.New("no points table stored")

// Repository provides points table persistence backed by Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save replaces the stored table in one transaction and records version as
// the table's version.
func (r *Repository) Save(ctx context.Context, version string, table standings.Table) error {
	if _, err := uuid.Parse(version); err != nil {
		return fmt.Errorf("save table: version %q: %w", version, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points_table`); err != nil {
		return fmt.Errorf("clear points table: %w", err)
	}

	cols := splitColumns(table)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO points_table (
			position, team, matches, won, lost, points, nrr,
			runs_for, overs_for, runs_against, overs_against, version
		)
		SELECT u.*, $12::uuid FROM UNNEST(
			$1::int[], $2::text[], $3::int[], $4::int[], $5::int[], $6::int[], $7::double precision[],
			$8::int[], $9::double precision[], $10::int[], $11::double precision[]
		) AS u`,
		pq.Array(cols.positions), pq.Array(cols.teams), pq.Array(cols.matches),
		pq.Array(cols.won), pq.Array(cols.lost), pq.Array(cols.points), pq.Array(cols.nrr),
		pq.Array(cols.runsFor), pq.Array(cols.oversFor), pq.Array(cols.runsAgainst), pq.Array(cols.oversAgainst),
		version,
	)
	if err != nil {
		return fmt.Errorf("insert points table: %w", err)
	}

	return tx.Commit()
}

// Latest returns the stored table in position order, with its version and
// the time it was written.
func (r *Repository) Latest(ctx context.Context) (standings.Table, string, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, team, matches, won, lost, points, nrr,
		       runs_for, overs_for, runs_against, overs_against, version, updated_at
		FROM points_table
		ORDER BY position, team`)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("query points table: %w", err)
	}
	defer rows.Close()

	var (
		table     standings.Table
		version   string
		updatedAt time.Time
	)
	for rows.Next() {
		var (
			e                      standings.Entry
			oversFor, oversAgainst float64
		)
		if err := rows.Scan(&e.Position, &e.Team, &e.Matches, &e.Won, &e.Lost, &e.Points, &e.NRR,
			&e.RunsFor, &oversFor, &e.RunsAgainst, &oversAgainst, &version, &updatedAt); err != nil {
			return nil, "", time.Time{}, fmt.Errorf("scan points table: %w", err)
		}
		e.OversFor = overs.Value(oversFor)
		e.OversAgainst = overs.Value(oversAgainst)
		table = append(table, e)
	}
	if err := rows.Err(); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("iterate points table: %w", err)
	}
	if len(table) == 0 {
		return nil, "", time.Time{}, ErrEmpty
	}
	return table, version, updatedAt, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type columns struct {
	positions    []int64
	teams        []string
	matches      []int64
	won          []int64
	lost         []int64
	points       []int64
	nrr          []float64
	runsFor      []int64
	oversFor     []float64
	runsAgainst  []int64
	oversAgainst []float64
}

// splitColumns turns rows into per-column slices for UNNEST.
func splitColumns(t standings.Table) columns {
	n := len(t)
	c := columns{
		positions:    make([]int64, n),
		teams:        make([]string, n),
		matches:      make([]int64, n),
		won:          make([]int64, n),
		lost:         make([]int64, n),
		points:       make([]int64, n),
		nrr:          make([]float64, n),
		runsFor:      make([]int64, n),
		oversFor:     make([]float64, n),
		runsAgainst:  make([]int64, n),
		oversAgainst: make([]float64, n),
	}
	for i, e := range t {
		c.positions[i] = int64(e.Position)
		c.teams[i] = e.Team
		c.matches[i] = int64(e.Matches)
		c.won[i] = int64(e.Won)
		c.lost[i] = int64(e.Lost)
		c.points[i] = int64(e.Points)
		c.nrr[i] = e.NRR
		c.runsFor[i] = int64(e.RunsFor)
		c.oversFor[i] = e.OversFor.Decimal()
		c.runsAgainst[i] = int64(e.RunsAgainst)
		c.oversAgainst[i] = e.OversAgainst.Decimal()
	}
	return c
}
