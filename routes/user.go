package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/tachuswebservices/manglasports-sub001/controllers/address"
	blogControllers "github.com/tachuswebservices/manglasports-sub001/controllers/blog"
	cartControllers "github.com/tachuswebservices/manglasports-sub001/controllers/cart"
	orderControllers "github.com/tachuswebservices/manglasports-sub001/controllers/order"
	paymentControllers "github.com/tachuswebservices/manglasports-sub001/controllers/payment"
	reviewControllers "github.com/tachuswebservices/manglasports-sub001/controllers/review"
	userControllers "github.com/tachuswebservices/manglasports-sub001/controllers/user"
	wishlistControllers "github.com/tachuswebservices/manglasports-sub001/controllers/wishlist"
	"github.com/tachuswebservices/manglasports-sub001/middleware"
)

// SetupUserRoutes registers the JWT-protected customer endpoints.
func SetupUserRoutes(api *gin.RouterGroup, d Deps) {
	user := api.Group("")
	user.Use(middleware.ValidateToken(d.Cfg.JWT.Secret))
	{
		user.GET("/users/me", userControllers.GetUser(d.DB))
		user.PUT("/users/me", userControllers.UpdateUser(d.DB))

		cartGroup := user.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(d.DB))
			cartGroup.POST("", cartControllers.AddToCart(d.DB))
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartQuantity(d.DB))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(d.DB))
			cartGroup.DELETE("", cartControllers.ClearCart(d.DB))
		}

		wishlistGroup := user.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(d.DB))
			wishlistGroup.POST("", wishlistControllers.AddToWishlist(d.DB))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.DeleteWishlistItem(d.DB))
		}

		addressGroup := user.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.GetAddresses(d.DB))
			addressGroup.POST("", addressControllers.CreateAddress(d.DB))
			addressGroup.PUT("/:id", addressControllers.UpdateAddress(d.DB))
			addressGroup.DELETE("/:id", addressControllers.DeleteAddress(d.DB))
		}

		orderGroup := user.Group("/orders")
		{
			orderGroup.POST("", orderControllers.PlaceOrderHandler(d.DB, d.Mailer, d.Logger))
			orderGroup.GET("", orderControllers.GetUserOrders(d.DB))
			orderGroup.GET("/:id", orderControllers.GetOrderByID(d.DB))
		}

		user.POST("/reviews/product/:id", reviewControllers.CreateReview(d.DB))
		user.PUT("/reviews/product/:id", reviewControllers.UpdateReview(d.DB))
		user.DELETE("/reviews/:id", reviewControllers.DeleteReview(d.DB))

		user.POST("/blog/:slug/comments", blogControllers.CreateComment(d.DB))

		paymentGroup := user.Group("/payment")
		{
			paymentGroup.POST("/order", paymentControllers.CreatePaymentOrder(d.Payments))
			paymentGroup.POST("/verify", paymentControllers.VerifyPayment(d.DB, d.Cfg.Razorpay.KeySecret))
		}
	}
}
