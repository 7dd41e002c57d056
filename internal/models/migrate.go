package models

import "gorm.io/gorm"

// All lists every table owned by the service, parents before children
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Comment{},
		&PostLike{},
		&CommentLike{},
		&Follower{},
		&Notification{},
	}
}

// AutoMigrate creates or updates the schema including unique indexes and FK rules
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
