package repository

import "context"

// Transactor groups repository calls into one atomic unit. Implementations
// attach the transaction to the context so repositories participate
// transparently; if fn returns an error, every mutation made inside it is
// rolled back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
