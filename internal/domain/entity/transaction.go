package entity

import (
	"fmt"
	"time"

	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
)

// TransactionKind identifies how a transaction changed the balance.
type TransactionKind string

// Transaction kinds
const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
	KindSet    TransactionKind = "set"
)

// Transaction is an immutable audit record of a single balance change.
// Credit and debit rows store the positive magnitude of the change; set
// rows store the signed difference between the new and the prior balance.
type Transaction struct {
	Seq           uint64          // Auto-incrementing sequence id
	UserID        string          // User whose balance changed
	Amount        int64           // Magnitude for credit/debit, signed delta for set
	Kind          TransactionKind // credit, debit or set
	Reason        string          // Optional free text, auto-generated for set
	ActorID       string          // Staff/admin who performed the change
	ActorUsername string          // Actor display name captured at write time
	Timestamp     time.Time       // When the change was committed
}

// NewTransaction builds an audit record for a balance change.
func NewTransaction(
	userID string,
	amount int64,
	kind TransactionKind,
	reason string,
	actorID string,
	actorUsername string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !isValidKind(kind) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidKind, kind)
	}

	return &Transaction{
		UserID:        userID,
		Amount:        amount,
		Kind:          kind,
		Reason:        reason,
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Timestamp:     timeProvider.Now(),
	}, nil
}

// TransactionWithUser pairs an audit record with the current username of
// the user it belongs to, for the global feed.
type TransactionWithUser struct {
	Transaction
	Username string
}

// SignedAmount returns the effective balance delta of the transaction.
func (t *Transaction) SignedAmount() int64 {
	if t.Kind == KindDebit {
		return -t.Amount
	}
	return t.Amount
}

// SetReason builds the auto-generated reason text for a set transaction.
func SetReason(oldMiles, newMiles int64) string {
	return fmt.Sprintf("Set from %d to %d", oldMiles, newMiles)
}

func isValidKind(kind TransactionKind) bool {
	return kind == KindCredit || kind == KindDebit || kind == KindSet
}
