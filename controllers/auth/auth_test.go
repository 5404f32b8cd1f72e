package authControllers

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
	"github.com/tachuswebservices/manglasports-sub001/config"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingSender captures outgoing mail instead of dialing SMTP.
type recordingSender struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (s *recordingSender) Send(to, subject, htmlBody string) error {
	if s.fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{FrontendBaseURL: "http://localhost:5173"},
		JWT:    config.JWTConfig{Secret: "test-secret"},
	}
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := testConfig()
	mailer := &recordingSender{}

	r := gin.New()
	r.POST("/auth/signup", Signup(db, cfg, mailer))
	r.POST("/auth/verify-email", VerifyEmail(db))
	r.POST("/auth/login", Login(db, cfg))
	r.POST("/auth/forgot-password", ForgotPassword(db, cfg, mailer))
	r.POST("/auth/reset-password", ResetPassword(db))
	return db, r, mailer
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	db, r, mailer := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "asha@example.com", mailer.sent[0].To)

	// unverified login is refused with the hint the frontend keys on
	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, true, resp["needs_verification"])
	require.NotContains(t, resp, "token")

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	require.NotEmpty(t, user.EmailVerificationToken)

	w = doJSON(r, http.MethodPost, "/auth/verify-email", gin.H{"token": user.EmailVerificationToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	db, r, mailer := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Imposter", "email": "asha@example.com", "password": "other456",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)
	require.Len(t, mailer.sent, 1)
}

func TestSignupCompensatesWhenMailFails(t *testing.T) {
	db, r, mailer := setupTest(t)
	mailer.fail = true

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestLoginWrongPassword(t *testing.T) {
	_, r, _ := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email": "asha@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	db, r, _ := setupTest(t)

	doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})

	w := doJSON(r, http.MethodPost, "/auth/forgot-password", gin.H{"email": "asha@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	require.NotEmpty(t, user.ResetToken)

	w = doJSON(r, http.MethodPost, "/auth/reset-password", gin.H{
		"token": user.ResetToken, "password": "newpass789",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// verify first, then the new password works
	require.NoError(t, db.Model(&user).Update("is_email_verified", true).Error)
	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email": "asha@example.com", "password": "newpass789",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
