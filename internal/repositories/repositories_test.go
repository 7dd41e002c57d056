package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostgresUserRepository(db)

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, alice))

	err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)

	byName, err := repo.GetUserByIdentifier(ctx, "alice")
	require.NoError(t, err)
	byEmail, err := repo.GetUserByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = repo.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	post := &models.Post{Title: "t", Content: "c", AuthorID: alice.ID}
	require.NoError(t, NewPostgresPostRepository(db).CreatePost(ctx, post))
	comment := &models.Comment{PostID: post.ID, Content: "c", AuthorID: alice.ID}
	require.NoError(t, NewPostgresCommentRepository(db).CreateComment(ctx, comment))

	likes := NewPostgresLikeRepository(db)
	require.NoError(t, likes.CreateLike(ctx, &models.PostLike{PostID: post.ID, UserID: alice.ID}))
	assert.ErrorIs(t, likes.CreateLike(ctx, &models.PostLike{PostID: post.ID, UserID: alice.ID}), ErrDuplicate)

	liked, err := likes.HasUserLikedPost(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, likes.DeleteLike(ctx, post.ID, alice.ID))
	assert.ErrorIs(t, likes.DeleteLike(ctx, post.ID, alice.ID), ErrNotFound)

	commentLikes := NewPostgresCommentLikeRepository(db)
	require.NoError(t, commentLikes.CreateCommentLike(ctx, &models.CommentLike{CommentID: comment.ID, UserID: alice.ID}))
	assert.ErrorIs(t, commentLikes.CreateCommentLike(ctx, &models.CommentLike{CommentID: comment.ID, UserID: alice.ID}), ErrDuplicate)

	require.NoError(t, NewPostgresCommentRepository(db).DeleteComment(ctx, comment.ID))
	var count int64
	require.NoError(t, db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
	assert.Zero(t, count, "comment likes go with the comment")
	assert.ErrorIs(t, commentLikes.DeleteCommentLike(ctx, comment.ID, alice.ID), ErrNotFound)
}

func TestFollowRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewPostgresFollowRepository(db)

	require.NoError(t, repo.CreateFollow(ctx, &models.Follower{FollowerID: alice.ID, FollowedID: bob.ID}))
	assert.ErrorIs(t, repo.CreateFollow(ctx, &models.Follower{FollowerID: alice.ID, FollowedID: bob.ID}), ErrDuplicate)

	following, err := repo.GetFollowing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, following, "follows are directed")

	followers, err := repo.GetFollowers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, repo.DeleteFollow(ctx, alice.ID, bob.ID), ErrNotFound)
}

func TestDeletePostMissing(t *testing.T) {
	db := testutil.NewDB(t)
	assert.ErrorIs(t, NewPostgresPostRepository(db).DeletePost(context.Background(), 9999), ErrNotFound)
}
