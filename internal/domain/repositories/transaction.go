package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// Structural tree mutations (cycle-check-then-write) must run inside ExecTx
// so the check and the commit form one atomic unit.
type TransactionManager interface {
	// ExecTx executes a function within a read-write transaction
	ExecTx(ctx context.Context, fn TxFn) error

	// ExecReadTx executes a function within a repeatable-read, read-only
	// transaction. Used where a multi-query read must see one consistent
	// snapshot (tree materialization).
	ExecReadTx(ctx context.Context, fn TxFn) error
}
