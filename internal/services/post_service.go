package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService is the post half of the content store
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	title, err := requiredText(title, "Title")
	if err != nil {
		return nil, err
	}
	content, err = requiredText(content, "Content")
	if err != nil {
		return nil, err
	}

	post := &models.Post{Title: title, Content: content, AuthorID: authorID}
	if err := repositories.NewPostgresPostRepository(s.db).CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return repositories.NewPostgresPostRepository(s.db).GetAllPosts(ctx)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := repositories.NewPostgresPostRepository(s.db).GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

// Update applies the provided fields only. Any provided field that is blank
// rejects the whole update.
func (s *PostService) Update(ctx context.Context, id, userID uint, title, content *string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(post.AuthorID, userID); err != nil {
		return nil, err
	}

	newTitle, err := optionalText(title, "Title")
	if err != nil {
		return nil, err
	}
	if newTitle != nil && utf8.RuneCountInString(*newTitle) > models.MaxTitleLength {
		return nil, apperrors.Validation(fmt.Sprintf("Title must be at most %d characters", models.MaxTitleLength))
	}
	newContent, err := optionalText(content, "Content")
	if err != nil {
		return nil, err
	}
	if newTitle != nil {
		post.Title = *newTitle
	}
	if newContent != nil {
		post.Content = *newContent
	}
	post.UpdatedAt = time.Now()

	if err := repositories.NewPostgresPostRepository(s.db).UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the post and everything hanging off it in one transaction
func (s *PostService) Delete(ctx context.Context, id, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)

		post, err := posts.GetPostByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound("Post not found")
			}
			return err
		}
		if err := requireOwner(post.AuthorID, userID); err != nil {
			return err
		}
		if err := posts.DeletePost(ctx, id); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}
