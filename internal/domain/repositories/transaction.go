package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a group of repository calls atomically.
// Deleting a project uses it to drop the project's entries and lists with it.
type TransactionManager interface {
	// ExecTx executes fn within a transaction; fn's error rolls everything back
	ExecTx(ctx context.Context, fn TxFn) error
}
