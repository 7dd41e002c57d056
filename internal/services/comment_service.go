package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentService is the comment half of the content store
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) Create(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	content, err := requiredText(content, "Content")
	if err != nil {
		return nil, err
	}

	if _, err := repositories.NewPostgresPostRepository(s.db).GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}

	comment := &models.Comment{PostID: postID, Content: content, AuthorID: authorID}
	if err := repositories.NewPostgresCommentRepository(s.db).CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns the comments of postID; an unknown post has none
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return repositories.NewPostgresCommentRepository(s.db).GetCommentsByPostID(ctx, postID)
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := repositories.NewPostgresCommentRepository(s.db).GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

// Update replaces the content when one is provided. An omitted content
// leaves the comment unchanged.
func (s *CommentService) Update(ctx context.Context, id, userID uint, content *string) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.AuthorID, userID); err != nil {
		return nil, err
	}

	newContent, err := optionalText(content, "Content")
	if err != nil {
		return nil, err
	}
	if newContent != nil {
		comment.Content = *newContent
	}
	comment.UpdatedAt = time.Now()

	if err := repositories.NewPostgresCommentRepository(s.db).UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewPostgresCommentRepository(tx)

		comment, err := comments.GetCommentByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound("Comment not found")
			}
			return err
		}
		if err := requireOwner(comment.AuthorID, userID); err != nil {
			return err
		}
		if err := comments.DeleteComment(ctx, id); err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
}
