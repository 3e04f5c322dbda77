package models

// LeaderboardEntry is the denormalized running point total per user, created
// lazily on the first point-earning action. The invariant maintained by the
// challenge tracker is that Points equals the sum of the point values of all
// challenges the user has joined; claims never subtract from it.
type LeaderboardEntry struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Points int  `json:"points"`
}

// TableName keeps the original singular table name.
func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}

// LeaderboardRow is the read model for the ranked leaderboard page.
type LeaderboardRow struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	Points         int    `json:"points"`
}
