package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/cloudinary"
	"github.com/tachuswebservices/manglasports-sub001/config"
	paymentControllers "github.com/tachuswebservices/manglasports-sub001/controllers/payment"
	"github.com/tachuswebservices/manglasports-sub001/email"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Logger   *slog.Logger
	Mailer   email.Sender
	Uploader *cloudinary.Client
	Payments *paymentControllers.Client
}

// SetupRoutes is the single entry point that wires up the public, user, and
// admin route groups under /api.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	// public routes (no middleware)
	SetupAuthRoutes(api, d)
	SetupPublicRoutes(api, d)

	// user routes (JWT protected)
	SetupUserRoutes(api, d)

	// admin routes (JWT + admin role)
	SetupAdminRoutes(api, d)
}
