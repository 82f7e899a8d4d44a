package dbconn

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConn adapts a pgx connection pool to the Conn surface the manager needs.
type PgxConn struct {
	pool *pgxpool.Pool
}

// NewPgxConn wraps the given pool. A nil pool is a configuration fault.
func NewPgxConn(pool *pgxpool.Pool) (*PgxConn, error) {
	if pool == nil {
		return nil, errors.New("dbconn: missing database pool")
	}
	return &PgxConn{pool: pool}, nil
}

// Probe performs a bounded read against the profiles table. pgx.ErrNoRows is
// passed through; the manager treats it as healthy.
func (c *PgxConn) Probe(ctx context.Context) error {
	var id string
	return c.pool.QueryRow(ctx, `SELECT profile_id FROM profiles LIMIT 1`).Scan(&id)
}

// RefreshSession forces the pool to re-establish a connection. The pool
// replaces broken connections on its own; Ping makes that happen now rather
// than on the next query.
func (c *PgxConn) RefreshSession(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
