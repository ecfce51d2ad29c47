package memory

import "context"

// TxManager is a no-op transaction wrapper for the in-memory repos.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
