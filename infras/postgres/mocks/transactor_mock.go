package mocks

import (
	"context"
	"hotelier/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct{}

// WithTx implements postgres.Transactor by running fn without a real transaction.
func (t *transactorImpl) WithTx(ctx context.Context, fn postgres.TxFunc) error {
	return fn(ctx, nil)
}

// Savepoint implements postgres.Transactor by running fn directly.
func (t *transactorImpl) Savepoint(ctx context.Context, tx *sqlx.Tx, _ string, fn postgres.TxFunc) error {
	return fn(ctx, tx)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
