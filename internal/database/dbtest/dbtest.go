// Package dbtest provides a database.PGX stand-in for service tests whose
// repositories are faked. It only tracks transactions.
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/tinlanh/church-admin/internal/database"
)

var ErrNoQueries = errors.New("dbtest: queries are not supported")

type PGX struct {
	mu         sync.Mutex
	began      int
	committed  int
	rolledBack int

	BeginErr error
	PingErr  error
}

func (p *PGX) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, ErrNoQueries
}

func (p *PGX) Get(context.Context, interface{}, database.Sqlizer) error {
	return ErrNoQueries
}

func (p *PGX) Select(context.Context, interface{}, database.Sqlizer) error {
	return ErrNoQueries
}

func (p *PGX) Ping(context.Context) error {
	return p.PingErr
}

func (p *PGX) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}

	p.mu.Lock()
	p.began++
	p.mu.Unlock()

	return &Tx{PGX: p}, nil
}

// Stats returns how many transactions were started, committed and rolled
// back.
func (p *PGX) Stats() (began, committed, rolledBack int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.began, p.committed, p.rolledBack
}

type Tx struct {
	*PGX
	done bool
}

func (t *Tx) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return nil, errors.New("dbtest: nested transactions are not supported")
}

func (t *Tx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	t.mu.Lock()
	t.committed++
	t.mu.Unlock()
	return nil
}

func (t *Tx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	t.mu.Lock()
	t.rolledBack++
	t.mu.Unlock()
	return nil
}
