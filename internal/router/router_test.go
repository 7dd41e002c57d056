package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiClient struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewDB(t)
	e := echo.New()
	require.NoError(t, SetupRoutes(e, Deps{
		DB:     db,
		Tokens: auth.NewTokenManager("router-test-secret", time.Hour),
	}))
	return &apiClient{t: t, e: e, db: db}
}

func (a *apiClient) do(method, path string, body interface{}, token string) (int, map[string]interface{}) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

// signup registers username and returns a fresh access token
func (a *apiClient) signup(username string) string {
	a.t.Helper()
	code, _ := a.do(http.MethodPost, "/register", echo.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, "")
	require.Equal(a.t, http.StatusCreated, code)

	code, body := a.do(http.MethodPost, "/login", echo.Map{"username": username, "password": "secret123"}, "")
	require.Equal(a.t, http.StatusOK, code)
	token, ok := body["access_token"].(string)
	require.True(a.t, ok)
	return token
}

func (a *apiClient) createPost(token, title, content string) uint {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/posts", echo.Map{"title": title, "content": content}, token)
	require.Equal(a.t, http.StatusCreated, code)
	post := body["post"].(map[string]interface{})
	return uint(post["id"].(float64))
}

func TestPublicRoutes(t *testing.T) {
	api := newAPI(t)

	code, body := api.do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome to the Blog API", body["message"])

	code, body = api.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestRegisterLoginAndPost(t *testing.T) {
	api := newAPI(t)

	code, body := api.do(http.MethodPost, "/register", echo.Map{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully!", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")

	code, body = api.do(http.MethodPost, "/login", echo.Map{"email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful!", body["message"])
	token := body["access_token"].(string)

	postID := api.createPost(token, "Hello", "First post")

	code, body = api.do(http.MethodGet, "/posts", nil, "")
	require.Equal(t, http.StatusOK, code)
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 1)
	post := posts[0].(map[string]interface{})
	assert.EqualValues(t, postID, post["id"])
	assert.Equal(t, "Hello", post["title"])
	assert.Equal(t, "First post", post["content"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	api := newAPI(t)
	api.signup("alice")

	code, body := api.do(http.MethodPost, "/register", echo.Map{
		"username": "someone-else",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, echo.Map{"error": "Email already exists"}, echo.Map(body))

	code, body = api.do(http.MethodPost, "/register", echo.Map{"username": "bob"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields are required", body["error"])

	code, body = api.do(http.MethodPost, "/login", echo.Map{"username": "alice", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestPostOwnershipAndValidation(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	bob := api.signup("bob")
	postID := api.createPost(alice, "Title", "Content")
	path := fmt.Sprintf("/posts/%d", postID)

	code, body := api.do(http.MethodPut, path, echo.Map{"title": "Stolen"}, bob)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Not authorized", body["error"])

	code, body = api.do(http.MethodPut, path, echo.Map{"title": "  "}, alice)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Title cannot be empty", body["error"])

	code, body = api.do(http.MethodPut, path, echo.Map{"content": "Edited"}, alice)
	require.Equal(t, http.StatusOK, code)
	post := body["post"].(map[string]interface{})
	assert.Equal(t, "Title", post["title"])
	assert.Equal(t, "Edited", post["content"])

	code, _ = api.do(http.MethodPost, "/posts", echo.Map{"title": "x", "content": "y"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(http.MethodPut, "/posts/abc", echo.Map{"title": "x"}, alice)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid id", body["error"])

	longTitle := strings.Repeat("x", models.MaxTitleLength+1)
	code, body = api.do(http.MethodPut, "/posts/9999", echo.Map{"title": longTitle}, alice)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", body["error"])

	code, _ = api.do(http.MethodPut, path, echo.Map{"title": longTitle}, bob)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodPut, path, echo.Map{"title": longTitle}, alice)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Title must be at most 500 characters", body["error"])

	code, body = api.do(http.MethodDelete, "/posts/9999", nil, alice)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", body["error"])

	code, body = api.do(http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post deleted successfully", body["message"])
}

func TestCommentsFlow(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	bob := api.signup("bob")
	postID := api.createPost(alice, "Title", "Content")

	code, body := api.do(http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), echo.Map{"content": "Nice"}, bob)
	require.Equal(t, http.StatusCreated, code)
	commentID := uint(body["comment"].(map[string]interface{})["id"].(float64))

	code, body = api.do(http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["comments"], 1)

	code, body = api.do(http.MethodPut, fmt.Sprintf("/comments/%d", commentID), echo.Map{}, bob)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Nice", body["comment"].(map[string]interface{})["content"])

	code, body = api.do(http.MethodPut, fmt.Sprintf("/comments/%d", commentID), echo.Map{"content": " "}, bob)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Content cannot be empty", body["error"])

	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, alice)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, bob)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Comment deleted successfully", body["message"])
}

func TestLikeToggleAndNotifications(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	bob := api.signup("bob")
	postID := api.createPost(alice, "Title", "Content")
	likePath := fmt.Sprintf("/posts/%d/like", postID)

	code, body := api.do(http.MethodPost, likePath, nil, bob)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, "Post liked successfully!", body["message"])

	code, body = api.do(http.MethodGet, fmt.Sprintf("/posts/%d/likes/count", postID), nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["likes_count"])

	code, body = api.do(http.MethodGet, fmt.Sprintf("/posts/%d/likes/status", postID), nil, bob)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["has_liked"])

	code, body = api.do(http.MethodPost, likePath, nil, bob)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])

	code, body = api.do(http.MethodDelete, fmt.Sprintf("/posts/%d/unlike", postID), nil, bob)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Like not found", body["error"])

	code, body = api.do(http.MethodGet, "/notifications", nil, alice)
	require.Equal(t, http.StatusOK, code)
	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	n := notifications[0].(map[string]interface{})
	assert.Equal(t, "bob liked your post.", n["message"])
	assert.Equal(t, false, n["is_read"])
	readPath := fmt.Sprintf("/notifications/%d/read", uint(n["id"].(float64)))

	code, body = api.do(http.MethodPut, readPath, nil, bob)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Not authorized", body["error"])

	code, _ = api.do(http.MethodPut, readPath, nil, alice)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPut, readPath, nil, alice)
	assert.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, "/notifications/unread-count", nil, alice)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["unread_count"])

	code, body = api.do(http.MethodGet, "/notifications", nil, bob)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["notifications"])
}

func TestFollowToggle(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	api.signup("bob")

	code, body := api.do(http.MethodPost, "/follow/bob", nil, alice)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Now following", body["message"])

	code, body = api.do(http.MethodGet, "/users/bob/followers", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["followers"], 1)

	code, body = api.do(http.MethodGet, "/notifications", nil, alice)
	require.Equal(t, http.StatusOK, code)
	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	assert.Equal(t, "bob started following you.", notifications[0].(map[string]interface{})["message"])

	code, body = api.do(http.MethodPost, "/follow/bob", nil, alice)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Unfollowed", body["message"])

	var rows int64
	require.NoError(t, api.db.Model(&models.Follower{}).Count(&rows).Error)
	assert.Zero(t, rows)

	code, body = api.do(http.MethodDelete, "/unfollow/bob", nil, alice)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not following", body["error"])

	code, body = api.do(http.MethodPost, "/follow/alice", nil, alice)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You cannot follow yourself", body["error"])

	code, body = api.do(http.MethodPost, "/follow/nobody", nil, alice)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["error"])
}

func TestErrorEnvelope(t *testing.T) {
	api := newAPI(t)

	code, body := api.do(http.MethodGet, "/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, echo.Map{"error": "Missing Authorization header"}, echo.Map(body))

	code, body = api.do(http.MethodGet, "/notifications", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", body["error"])

	code, body = api.do(http.MethodGet, "/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not Found", body["error"])
}
