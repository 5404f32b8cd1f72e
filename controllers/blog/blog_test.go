package blogControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.BlogPost{}, &models.BlogComment{}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		user := c.GetHeader("X-Test-User")
		if user == "" {
			user = "user-1"
		}
		c.Set("user_id", user)
	})
	r.GET("/blog", GetPosts(db))
	r.GET("/blog/:slug", GetPostBySlug(db))
	r.POST("/blog/:slug/comments", CreateComment(db))
	r.POST("/admin/blog/posts", CreatePost(db))
	r.PUT("/admin/blog/posts/:slug", UpdatePost(db))
	r.PUT("/admin/blog/comments/:id/approve", ApproveComment(db))
	return db, r
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Email: "asha@example.com", Name: "Asha", Role: models.RoleUser,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		ID: "admin-1", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin,
	}).Error)
}

func doJSON(r *gin.Engine, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostDerivesSlug(t *testing.T) {
	db, r := setupTest(t)
	seedUsers(t, db)

	w := doJSON(r, http.MethodPost, "/admin/blog/posts", "admin-1", gin.H{
		"title": "Choosing Your First Air Pistol", "content": "Long form advice.", "published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post models.BlogPost
	require.NoError(t, db.First(&post).Error)
	require.Equal(t, "choosing-your-first-air-pistol", post.Slug)

	// a second post with the same title collides on the slug
	w = doJSON(r, http.MethodPost, "/admin/blog/posts", "admin-1", gin.H{
		"title": "Choosing Your First Air Pistol", "content": "Again.",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdatePostRetitleCollision(t *testing.T) {
	db, r := setupTest(t)
	seedUsers(t, db)
	require.NoError(t, db.Create(&models.BlogPost{Title: "First", Slug: "first"}).Error)
	require.NoError(t, db.Create(&models.BlogPost{Title: "Second", Slug: "second"}).Error)

	// retitling onto an existing slug conflicts instead of tripping the
	// unique index
	w := doJSON(r, http.MethodPut, "/admin/blog/posts/second", "admin-1", gin.H{"title": "First"})
	require.Equal(t, http.StatusConflict, w.Code)

	// keeping the same title is not a collision with itself
	w = doJSON(r, http.MethodPut, "/admin/blog/posts/second", "admin-1", gin.H{"title": "Second"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUnpublishedPostsHidden(t *testing.T) {
	db, r := setupTest(t)
	require.NoError(t, db.Create(&models.BlogPost{
		Title: "Draft", Slug: "draft", Published: false,
	}).Error)

	w := doJSON(r, http.MethodGet, "/blog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Empty(t, posts)

	w = doJSON(r, http.MethodGet, "/blog/draft", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentModeration(t *testing.T) {
	db, r := setupTest(t)
	seedUsers(t, db)
	require.NoError(t, db.Create(&models.BlogPost{
		Title: "Post", Slug: "post", Published: true,
	}).Error)

	// regular user comments wait for approval
	w := doJSON(r, http.MethodPost, "/blog/post/comments", "user-1", gin.H{"body": "Great article"})
	require.Equal(t, http.StatusCreated, w.Code)

	// admin comments are live immediately
	w = doJSON(r, http.MethodPost, "/blog/post/comments", "admin-1", gin.H{"body": "Thanks!"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/blog/post", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Len(t, post.Comments, 1)
	require.Equal(t, "Thanks!", post.Comments[0].Body)

	// approval makes the user comment visible
	var pending models.BlogComment
	require.NoError(t, db.Where("is_approved = ?", false).First(&pending).Error)
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/admin/blog/comments/%d/approve", pending.ID), "admin-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/blog/post", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Len(t, post.Comments, 2)
}

func TestCommentNestingOneLevel(t *testing.T) {
	db, r := setupTest(t)
	seedUsers(t, db)
	require.NoError(t, db.Create(&models.BlogPost{
		Title: "Post", Slug: "post", Published: true,
	}).Error)

	w := doJSON(r, http.MethodPost, "/blog/post/comments", "admin-1", gin.H{"body": "Top level"})
	require.Equal(t, http.StatusCreated, w.Code)
	var top models.BlogComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))

	w = doJSON(r, http.MethodPost, "/blog/post/comments", "admin-1", gin.H{"body": "Reply", "parent_id": top.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var reply models.BlogComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))

	// replying to a reply is rejected
	w = doJSON(r, http.MethodPost, "/blog/post/comments", "admin-1", gin.H{"body": "Too deep", "parent_id": reply.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
