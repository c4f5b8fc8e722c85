package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

// fakeTx records how the transaction ended. Methods other than Commit and
// Rollback are not used by WithTransaction.
type fakeTx struct {
	pgx.Tx
	committed   bool
	rolledBack  bool
	rollbackErr error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return f.rollbackErr
}

type fakeBeginner struct {
	tx   *fakeTx
	opts pgx.TxOptions
	err  error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.opts = opts
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

var errBusiness = errors.New("duplicate registration")

func TestWithTransaction(t *testing.T) {
	tests := []struct {
		name         string
		fnErr        error
		rollbackErr  error
		wantCommit   bool
		wantRollback bool
	}{
		{name: "commit on success", wantCommit: true},
		{name: "rollback on error", fnErr: errBusiness, wantRollback: true},
		{name: "rollback failure is joined", fnErr: errBusiness, rollbackErr: errors.New("conn closed"), wantRollback: true},
		{name: "already closed tx is not an extra error", fnErr: errBusiness, rollbackErr: pgx.ErrTxClosed, wantRollback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{rollbackErr: tt.rollbackErr}
			err := WithTransaction(context.Background(), &fakeBeginner{tx: tx}, func(pgx.Tx) error { return tt.fnErr })

			if tt.fnErr != nil && !errors.Is(err, tt.fnErr) {
				t.Errorf("error = %v, want it to wrap %v", err, tt.fnErr)
			}
			if tt.fnErr == nil && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if tt.rollbackErr != nil && !errors.Is(tt.rollbackErr, pgx.ErrTxClosed) && !errors.Is(err, tt.rollbackErr) {
				t.Errorf("error = %v, want it to include rollback error", err)
			}
			if tx.committed != tt.wantCommit || tx.rolledBack != tt.wantRollback {
				t.Errorf("committed=%v rolledBack=%v, want %v/%v", tx.committed, tx.rolledBack, tt.wantCommit, tt.wantRollback)
			}
		})
	}
}

func TestWithTransactionOptions_PassesOptions(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}

	if err := WithTransactionOptions(context.Background(), b, opts, func(pgx.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if b.opts.IsoLevel != pgx.Serializable {
		t.Errorf("IsoLevel = %v, want serializable", b.opts.IsoLevel)
	}
}

func TestWithTransaction_BeginError(t *testing.T) {
	called := false
	err := WithTransaction(context.Background(), &fakeBeginner{err: errors.New("pool exhausted")}, func(pgx.Tx) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected begin error")
	}
	if called {
		t.Error("fn ran without a transaction")
	}
}
