package access

import "context"

// StaffChecker answers roster membership queries. Satisfied by the roster
// service.
type StaffChecker interface {
	IsStaff(ctx context.Context, userID string) (bool, error)
}

// Policy is the single authorization decision point. The dispatcher must
// consult it before invoking any mutating ledger operation; the store
// itself performs no authorization.
//
// Administrator status is determined by the calling platform and passed
// in per call, never stored here.
type Policy struct {
	staff StaffChecker
}

// NewPolicy creates a policy backed by the given roster.
func NewPolicy(staff StaffChecker) *Policy {
	return &Policy{staff: staff}
}

// CanViewOwnData reports whether the actor may view their own balance and
// history. Always allowed.
func (p *Policy) CanViewOwnData(actorID string) bool {
	return true
}

// CanViewOtherHistory reports whether the actor may view another user's
// transaction history.
func (p *Policy) CanViewOtherHistory(ctx context.Context, actorID string) (bool, error) {
	return p.staff.IsStaff(ctx, actorID)
}

// CanMutateBalances reports whether the actor may credit, debit or set
// balances, and view stats.
func (p *Policy) CanMutateBalances(ctx context.Context, actorID string) (bool, error) {
	return p.staff.IsStaff(ctx, actorID)
}

// CanManageStaff reports whether the actor may change the staff roster.
// Staff membership itself grants no staff-management rights.
func (p *Policy) CanManageStaff(actorID string, isAdministrator bool) bool {
	return isAdministrator
}
