package entity

// LeaderboardEntry is one row of the miles leaderboard.
type LeaderboardEntry struct {
	UserID   string
	Username string
	Miles    int64
}

// Stats is an aggregate snapshot over all users at a point in time.
type Stats struct {
	TotalUsers int64
	TotalMiles int64
	AvgMiles   float64
	MaxMiles   int64
}
