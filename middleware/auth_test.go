package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tachuswebservices/manglasports-sub001/auth"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.GET("/protected", ValidateToken(testSecret), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", ValidateToken(testSecret), AdminOnly(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return db, r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateToken(t *testing.T) {
	_, r := setupRouter(t)

	w := doGet(r, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "/protected", "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// a token signed with another secret is rejected
	other, err := auth.IssueToken("user-1", "a@example.com", "other-secret")
	require.NoError(t, err)
	w = doGet(r, "/protected", other)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.IssueToken("user-1", "a@example.com", testSecret)
	require.NoError(t, err)
	w = doGet(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}

func TestAdminOnly(t *testing.T) {
	db, r := setupRouter(t)
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Email: "a@example.com", Role: models.RoleUser,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		ID: "admin-1", Email: "b@example.com", Role: models.RoleAdmin,
	}).Error)

	userToken, err := auth.IssueToken("user-1", "a@example.com", testSecret)
	require.NoError(t, err)
	adminToken, err := auth.IssueToken("admin-1", "b@example.com", testSecret)
	require.NoError(t, err)

	w := doGet(r, "/admin", userToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, "/admin", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	// deleted users cannot reach admin endpoints even with a live token
	require.NoError(t, db.Delete(&models.User{}, "id = ?", "admin-1").Error)
	w = doGet(r, "/admin", adminToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
