package models

import "time"

// Post is a blog post owned by its author.
// Comments, likes and notification references follow the post's lifecycle.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:500;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments      []Comment      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes         []PostLike     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Notifications []Notification `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL"`
}

// MaxTitleLength matches the title column size
const MaxTitleLength = 500

type CreatePostRequest struct {
	Title   string `json:"title" validate:"max=500"`
	Content string `json:"content"`
}

// UpdatePostRequest uses pointers so an omitted field can be told apart from an empty one.
// Lengths are checked by the service, after the post is found and owned.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
