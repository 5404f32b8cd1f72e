package authControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tachuswebservices/manglasports-sub001/auth"
	"github.com/tachuswebservices/manglasports-sub001/config"
	"github.com/tachuswebservices/manglasports-sub001/email"
	"github.com/tachuswebservices/manglasports-sub001/metrics"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/signup
//
// Creates an unverified user and sends the verification mail. If the mail
// cannot be sent the user row is deleted again so the address stays free for
// a retry.
func Signup(db *gorm.DB, cfg *config.Config, mailer email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		emailAddr := strings.TrimSpace(strings.ToLower(input.Email))

		var existing models.User
		err := db.Where("email = ?", emailAddr).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		token, err := auth.RandomToken(32)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification token"})
			return
		}
		expiry := time.Now().Add(24 * time.Hour)

		user := models.User{
			ID:                     uuid.NewString(),
			Email:                  emailAddr,
			Password:               string(hash),
			Name:                   input.Name,
			Role:                   models.RoleUser,
			EmailVerificationToken: token,
			VerificationExpiresAt:  &expiry,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		verifyURL := fmt.Sprintf("%s/verify-email?token=%s", cfg.Server.FrontendBaseURL, token)
		if err := mailer.Send(emailAddr, "Verify your Mangla Sports account",
			email.VerificationBody(user.Name, verifyURL)); err != nil {
			// Compensate: the account is unusable without the mail.
			db.Delete(&models.User{}, "id = ?", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Signup successful, check your email to verify your account",
		})
	}
}

// POST /api/auth/verify-email
func VerifyEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			var body struct {
				Token string `json:"token"`
			}
			_ = c.ShouldBindJSON(&body)
			token = body.Token
		}
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		var user models.User
		if err := db.Where("email_verification_token = ?", token).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid verification token"})
			return
		}
		if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token has expired"})
			return
		}

		updates := map[string]interface{}{
			"is_email_verified":        true,
			"email_verification_token": "",
			"verification_expires_at":  nil,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Email verified, you can log in now"})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		emailAddr := strings.TrimSpace(strings.ToLower(input.Email))

		var user models.User
		if err := db.Where("email = ?", emailAddr).First(&user).Error; err != nil {
			metrics.AuthFailureTotal.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			metrics.AuthFailureTotal.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if !user.IsEmailVerified {
			metrics.AuthFailureTotal.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":              "Email not verified",
				"needs_verification": true,
			})
			return
		}

		token, err := auth.IssueToken(user.ID, user.Email, cfg.JWT.Secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		metrics.AuthSuccessTotal.Inc()
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"name":  user.Name,
				"role":  user.Role,
			},
		})
	}
}

// POST /api/auth/forgot-password
func ForgotPassword(db *gorm.DB, cfg *config.Config, mailer email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		emailAddr := strings.TrimSpace(strings.ToLower(input.Email))

		var user models.User
		if err := db.Where("email = ?", emailAddr).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account with that email"})
			return
		}

		token, err := auth.RandomToken(32)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
			return
		}
		expiry := time.Now().Add(1 * time.Hour)
		updates := map[string]interface{}{
			"reset_token":      token,
			"reset_expires_at": expiry,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reset token"})
			return
		}

		resetURL := fmt.Sprintf("%s/reset-password?token=%s", cfg.Server.FrontendBaseURL, token)
		if err := mailer.Send(emailAddr, "Reset your Mangla Sports password",
			email.PasswordResetBody(user.Name, resetURL)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
	}
}

// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("reset_token = ?", input.Token).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid reset token"})
			return
		}
		if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		updates := map[string]interface{}{
			"password":         string(hash),
			"reset_token":      "",
			"reset_expires_at": nil,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated, you can log in now"})
	}
}

// GET /api/auth/me
//
// The frontend re-validates its stored token on every app load through this
// round trip.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		})
	}
}
