package routes

import (
	"github.com/gin-gonic/gin"
	blogControllers "github.com/tachuswebservices/manglasports-sub001/controllers/blog"
	brandControllers "github.com/tachuswebservices/manglasports-sub001/controllers/brand"
	categoryControllers "github.com/tachuswebservices/manglasports-sub001/controllers/category"
	emailControllers "github.com/tachuswebservices/manglasports-sub001/controllers/email"
	eventControllers "github.com/tachuswebservices/manglasports-sub001/controllers/event"
	orderControllers "github.com/tachuswebservices/manglasports-sub001/controllers/order"
	productControllers "github.com/tachuswebservices/manglasports-sub001/controllers/product"
	uploadControllers "github.com/tachuswebservices/manglasports-sub001/controllers/upload"
	userControllers "github.com/tachuswebservices/manglasports-sub001/controllers/user"
	"github.com/tachuswebservices/manglasports-sub001/middleware"
)

// SetupAdminRoutes registers the /api/admin endpoints. Requires a valid JWT
// belonging to an admin user.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	admin := api.Group("/admin")
	admin.Use(middleware.ValidateToken(d.Cfg.JWT.Secret), middleware.AdminOnly(d.DB))
	{
		admin.GET("/users", userControllers.GetAllUsers(d.DB))
		admin.DELETE("/users/:id", userControllers.DeleteUser(d.DB))

		productAdmin := admin.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(d.DB))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(d.DB))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(d.DB))
		}

		categoryAdmin := admin.Group("/categories")
		{
			categoryAdmin.POST("", categoryControllers.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", categoryControllers.UpdateCategory(d.DB))
			categoryAdmin.DELETE("/:id", categoryControllers.DeleteCategory(d.DB))
		}

		brandAdmin := admin.Group("/brands")
		{
			brandAdmin.POST("", brandControllers.CreateBrand(d.DB))
			brandAdmin.PUT("/:id", brandControllers.UpdateBrand(d.DB))
			brandAdmin.DELETE("/:id", brandControllers.DeleteBrand(d.DB))
		}

		orderAdmin := admin.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(d.DB))
			orderAdmin.PUT("/:id/items/:item_id", orderControllers.UpdateOrderItemStatus(d.DB, d.Mailer, d.Logger))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
		admin.GET("/dashboard", orderControllers.GetDashboardStats(d.DB))

		blogAdmin := admin.Group("/blog")
		{
			blogAdmin.POST("/posts", blogControllers.CreatePost(d.DB))
			blogAdmin.PUT("/posts/:slug", blogControllers.UpdatePost(d.DB))
			blogAdmin.DELETE("/posts/:slug", blogControllers.DeletePost(d.DB))
			blogAdmin.GET("/comments/pending", blogControllers.GetPendingComments(d.DB))
			blogAdmin.PUT("/comments/:id/approve", blogControllers.ApproveComment(d.DB))
			blogAdmin.DELETE("/comments/:id", blogControllers.DeleteComment(d.DB))
		}

		eventAdmin := admin.Group("/events")
		{
			eventAdmin.POST("", eventControllers.CreateEvent(d.DB))
			eventAdmin.PUT("/:slug", eventControllers.UpdateEvent(d.DB))
			eventAdmin.DELETE("/:slug", eventControllers.DeleteEvent(d.DB))
		}

		admin.POST("/upload", uploadControllers.UploadImage(d.Uploader))
		admin.DELETE("/upload/*public_id", uploadControllers.DeleteImage(d.Uploader))

		admin.POST("/email/test", emailControllers.SendTestEmail(d.Mailer))
	}
}
