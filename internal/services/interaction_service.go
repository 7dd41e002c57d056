package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/repositories"
	"gorm.io/gorm"
)

// InteractionService toggles likes and follows. Each toggle runs in one
// transaction and relies on the unique indexes to settle concurrent requests.
type InteractionService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewInteractionService(db *gorm.DB, notifications *NotificationService) *InteractionService {
	return &InteractionService{db: db, notifications: notifications}
}

// insertOnce runs insert inside a savepoint. It reports false when the row
// already exists, which means a concurrent toggle inserted it first.
func insertOnce(tx *gorm.DB, insert func(sp *gorm.DB) error) (bool, error) {
	err := tx.Transaction(insert)
	if errors.Is(err, repositories.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *InteractionService) publish(ctx context.Context, n *models.Notification) {
	if n != nil {
		s.notifications.Publish(ctx, []*models.Notification{n})
	}
}

func lookupActor(ctx context.Context, tx *gorm.DB, userID uint) (*models.User, error) {
	user, err := repositories.NewPostgresUserRepository(tx).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// TogglePostLike likes the post if userID has not liked it yet and unlikes it
// otherwise. It returns the new state.
func (s *InteractionService) TogglePostLike(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	var created *models.Notification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := repositories.NewPostgresPostRepository(tx).GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound("Post not found")
			}
			return err
		}
		liker, err := lookupActor(ctx, tx, userID)
		if err != nil {
			return err
		}

		err = repositories.NewPostgresLikeRepository(tx).DeleteLike(ctx, postID, userID)
		if err == nil {
			liked = false
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("delete like: %w", err)
		}

		inserted, err := insertOnce(tx, func(sp *gorm.DB) error {
			return repositories.NewPostgresLikeRepository(sp).CreateLike(ctx, &models.PostLike{PostID: postID, UserID: userID})
		})
		if err != nil {
			return fmt.Errorf("create like: %w", err)
		}
		liked = true
		if !inserted || post.AuthorID == userID {
			return nil
		}

		created, err = s.notifications.Notify(ctx, tx, NotifyParams{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			Type:        models.NotificationTypeLikePost,
			Message:     liker.Username + " liked your post.",
			PostID:      &post.ID,
		})
		return err
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, created)
	return liked, nil
}

// ToggleCommentLike is TogglePostLike for comments
func (s *InteractionService) ToggleCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	var liked bool
	var created *models.Notification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := repositories.NewPostgresCommentRepository(tx).GetCommentByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound("Comment not found")
			}
			return err
		}
		liker, err := lookupActor(ctx, tx, userID)
		if err != nil {
			return err
		}

		err = repositories.NewPostgresCommentLikeRepository(tx).DeleteCommentLike(ctx, commentID, userID)
		if err == nil {
			liked = false
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("delete comment like: %w", err)
		}

		inserted, err := insertOnce(tx, func(sp *gorm.DB) error {
			return repositories.NewPostgresCommentLikeRepository(sp).CreateCommentLike(ctx, &models.CommentLike{CommentID: commentID, UserID: userID})
		})
		if err != nil {
			return fmt.Errorf("create comment like: %w", err)
		}
		liked = true
		if !inserted || comment.AuthorID == userID {
			return nil
		}

		created, err = s.notifications.Notify(ctx, tx, NotifyParams{
			RecipientID: comment.AuthorID,
			ActorID:     userID,
			Type:        models.NotificationTypeLikeComment,
			Message:     liker.Username + " liked your comment.",
			PostID:      &comment.PostID,
			CommentID:   &comment.ID,
		})
		return err
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, created)
	return liked, nil
}

// UnlikePost removes an existing like
func (s *InteractionService) UnlikePost(ctx context.Context, postID, userID uint) error {
	err := repositories.NewPostgresLikeRepository(s.db).DeleteLike(ctx, postID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("Like not found")
	}
	return err
}

func (s *InteractionService) UnlikeComment(ctx context.Context, commentID, userID uint) error {
	err := repositories.NewPostgresCommentLikeRepository(s.db).DeleteCommentLike(ctx, commentID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("Like not found")
	}
	return err
}

// LikeCount returns how many users like the post
func (s *InteractionService) LikeCount(ctx context.Context, postID uint) (int64, error) {
	if _, err := repositories.NewPostgresPostRepository(s.db).GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, apperrors.NotFound("Post not found")
		}
		return 0, err
	}
	return repositories.NewPostgresLikeRepository(s.db).GetLikesCountByPostID(ctx, postID)
}

// HasLiked reports whether userID currently likes the post
func (s *InteractionService) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return repositories.NewPostgresLikeRepository(s.db).HasUserLikedPost(ctx, postID, userID)
}

func lookupUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	user, err := repositories.NewPostgresUserRepository(tx).GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ToggleFollow makes followerID follow username, or stops following if it
// already does. It returns true when the follow now exists.
func (s *InteractionService) ToggleFollow(ctx context.Context, followerID uint, username string) (bool, error) {
	var following bool
	var created *models.Notification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		followed, err := lookupUsername(ctx, tx, username)
		if err != nil {
			return err
		}
		if followed.ID == followerID {
			return apperrors.Validation("You cannot follow yourself")
		}

		err = repositories.NewPostgresFollowRepository(tx).DeleteFollow(ctx, followerID, followed.ID)
		if err == nil {
			following = false
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("delete follow: %w", err)
		}

		inserted, err := insertOnce(tx, func(sp *gorm.DB) error {
			return repositories.NewPostgresFollowRepository(sp).CreateFollow(ctx, &models.Follower{FollowerID: followerID, FollowedID: followed.ID})
		})
		if err != nil {
			return fmt.Errorf("create follow: %w", err)
		}
		following = true
		if !inserted {
			return nil
		}

		// The follower is the recipient and the followed user the actor.
		created, err = s.notifications.Notify(ctx, tx, NotifyParams{
			RecipientID: followerID,
			ActorID:     followed.ID,
			Type:        models.NotificationTypeFollow,
			Message:     followed.Username + " started following you.",
		})
		return err
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, created)
	return following, nil
}

// Unfollow removes an existing follow
func (s *InteractionService) Unfollow(ctx context.Context, followerID uint, username string) error {
	followed, err := lookupUsername(ctx, s.db, username)
	if err != nil {
		return err
	}
	err = repositories.NewPostgresFollowRepository(s.db).DeleteFollow(ctx, followerID, followed.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("Not following")
	}
	return err
}

// Followers lists the users following username
func (s *InteractionService) Followers(ctx context.Context, username string) ([]models.PublicUser, error) {
	user, err := lookupUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	users, err := repositories.NewPostgresFollowRepository(s.db).GetFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toPublic(users), nil
}

// Following lists the users username follows
func (s *InteractionService) Following(ctx context.Context, username string) ([]models.PublicUser, error) {
	user, err := lookupUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	users, err := repositories.NewPostgresFollowRepository(s.db).GetFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toPublic(users), nil
}

func toPublic(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	return out
}
