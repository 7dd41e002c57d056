package models

// Follower is a directed follow edge. Self-follow is rejected before insert,
// the unique index only guards duplicates.
type Follower struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	FollowerID uint `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_followed"`
	FollowedID uint `json:"followed_id" gorm:"not null;index;uniqueIndex:idx_follower_followed"`
}
