package models

// PostLike marks that a user likes a post. One row per (post, user).
type PostLike struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	PostID uint `json:"post_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	UserID uint `json:"user_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
}
