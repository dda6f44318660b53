package persistence

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

// Counts holds row totals for the operator stats view.
type Counts struct {
	Users        int64
	Staff        int64
	Transactions int64
}

// AdminRepository exposes bulk operations consumed by the operator tool.
type AdminRepository interface {
	// AllUsers returns every user, descending by miles.
	AllUsers(ctx context.Context) ([]entity.User, error)

	// SearchUsersByNamePrefix returns users whose username starts with
	// the query, descending by miles.
	SearchUsersByNamePrefix(ctx context.Context, query string) ([]entity.User, error)

	// Counts returns row totals across the three tables.
	Counts(ctx context.Context) (*Counts, error)

	// WipeAll deletes all transactions, users and staff in one atomic
	// unit. Irreversible; confirmation gating belongs to the caller.
	WipeAll(ctx context.Context) error

	// Backup snapshots the persisted state into timestamped copies and
	// returns an identifier for the snapshot.
	Backup(ctx context.Context) (string, error)
}
