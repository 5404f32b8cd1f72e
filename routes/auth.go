package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/tachuswebservices/manglasports-sub001/controllers/auth"
	"github.com/tachuswebservices/manglasports-sub001/middleware"
)

// SetupAuthRoutes registers the /api/auth endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(d.DB, d.Cfg, d.Mailer))
		authGroup.GET("/verify-email", authControllers.VerifyEmail(d.DB))
		authGroup.POST("/verify-email", authControllers.VerifyEmail(d.DB))
		authGroup.POST("/login", authControllers.Login(d.DB, d.Cfg))
		authGroup.POST("/forgot-password", authControllers.ForgotPassword(d.DB, d.Cfg, d.Mailer))
		authGroup.POST("/reset-password", authControllers.ResetPassword(d.DB))

		authGroup.GET("/me", middleware.ValidateToken(d.Cfg.JWT.Secret), authControllers.Me(d.DB))
	}
}
