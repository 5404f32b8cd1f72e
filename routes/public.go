package routes

import (
	"github.com/gin-gonic/gin"
	blogControllers "github.com/tachuswebservices/manglasports-sub001/controllers/blog"
	brandControllers "github.com/tachuswebservices/manglasports-sub001/controllers/brand"
	categoryControllers "github.com/tachuswebservices/manglasports-sub001/controllers/category"
	eventControllers "github.com/tachuswebservices/manglasports-sub001/controllers/event"
	productControllers "github.com/tachuswebservices/manglasports-sub001/controllers/product"
	reviewControllers "github.com/tachuswebservices/manglasports-sub001/controllers/review"
)

// SetupPublicRoutes registers the storefront browse endpoints. No auth.
func SetupPublicRoutes(api *gin.RouterGroup, d Deps) {
	api.GET("/products", productControllers.GetProducts(d.DB))
	api.GET("/products/:id", productControllers.GetProductByID(d.DB))

	api.GET("/categories", categoryControllers.GetAllCategories(d.DB))
	api.GET("/brands", brandControllers.GetAllBrands(d.DB))

	api.GET("/reviews/product/:id", reviewControllers.GetProductReviews(d.DB))

	api.GET("/blog", blogControllers.GetPosts(d.DB))
	api.GET("/blog/:slug", blogControllers.GetPostBySlug(d.DB))

	api.GET("/events", eventControllers.GetEvents(d.DB))
	api.GET("/events/:slug", eventControllers.GetEventBySlug(d.DB))
}
