package services

import (
	"context"
	"fmt"

	"github.com/upb/casting-agency/repositories"
)

// WithTransaction executes fn within a database transaction.
// fn receives the transaction's context so repositories join it.
// Commits on success, rolls back on error or panic.
func WithTransaction(ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	_, err := WithTransactionResult(ctx, txMgr, func(ctx context.Context, tx repositories.Transaction) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}

// WithTransactionResult executes fn within a database transaction and returns its result.
func WithTransactionResult[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context, tx repositories.Transaction) (T, error)) (T, error) {
	var result T

	tx, err := txMgr.Begin(ctx)
	if err != nil {
		return result, WrapError(ErrorTypeInternal, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	result, err = fn(tx.Context(), tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return result, WrapError(ErrorTypeInternal, "transaction rollback failed",
				fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr))
		}
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, WrapError(ErrorTypeInternal, "failed to commit transaction", err)
	}

	return result, nil
}
