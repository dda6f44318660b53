package dto

import "time"

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Miles    int64  `json:"miles"`
}

// MutateBalanceRequest is the body for credit and debit requests. Amount
// is a pointer so an explicit zero passes binding and is rejected by the
// ledger's own validation instead of as a malformed body.
type MutateBalanceRequest struct {
	Username      string `json:"username"`
	Amount        *int64 `json:"amount" binding:"required"`
	Reason        string `json:"reason"`
	ActorID       string `json:"actorId" binding:"required"`
	ActorUsername string `json:"actorUsername"`
}

// SetBalanceRequest is the body for an absolute balance override
type SetBalanceRequest struct {
	Username      string `json:"username"`
	Amount        *int64 `json:"amount" binding:"required"`
	ActorID       string `json:"actorId" binding:"required"`
	ActorUsername string `json:"actorUsername"`
}

// TransactionResponse represents one audit record of a single user
type TransactionResponse struct {
	Seq           uint64    `json:"seq"`
	UserID        string    `json:"userId"`
	Amount        int64     `json:"amount"`
	Kind          string    `json:"kind"`
	Reason        string    `json:"reason"`
	ActorID       string    `json:"actorId"`
	ActorUsername string    `json:"actorUsername"`
	Timestamp     time.Time `json:"timestamp"`
}

// TransactionFeedItem is a cross-user audit record joined with the
// subject's current username
type TransactionFeedItem struct {
	TransactionResponse
	Username string `json:"username"`
}

// LeaderboardEntryResponse represents one leaderboard row
type LeaderboardEntryResponse struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Miles    int64  `json:"miles"`
}

// StatsResponse represents the aggregate snapshot over all users
type StatsResponse struct {
	TotalUsers int64   `json:"totalUsers"`
	TotalMiles int64   `json:"totalMiles"`
	AvgMiles   float64 `json:"avgMiles"`
	MaxMiles   int64   `json:"maxMiles"`
}
