package routes

import (
	"net/http"

	"farm2home/auth"
	"farm2home/cart"
	"farm2home/middleware"
	"farm2home/notify"
	"farm2home/orders"
	"farm2home/produce"
	"farm2home/profile"
	"farm2home/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/producepic/*filepath", http.Dir("static/producepic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", ratelim.RateLimit(middleware.Authenticate(auth.LogoutUser)))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", ratelim.RateLimit(middleware.Authenticate(profile.GetProfile)))
	router.PUT("/api/profile", ratelim.RateLimit(middleware.Authenticate(profile.EditProfile)))
	router.PUT("/api/profile/avatar", ratelim.RateLimit(middleware.Authenticate(profile.UploadAvatar)))
	router.GET("/api/user/:id", ratelim.RateLimit(profile.GetUserProfile))
}

func AddProduceRoutes(router *httprouter.Router) {
	router.GET("/api/produce", ratelim.RateLimit(middleware.OptionalAuth(produce.GetProduceCatalog)))
	router.GET("/api/myproduce", ratelim.RateLimit(middleware.Authenticate(produce.GetMyProduce)))
	router.GET("/api/produce/:produceid", ratelim.RateLimit(produce.GetProduce))
	router.POST("/api/produce", ratelim.RateLimit(middleware.Authenticate(produce.CreateProduce)))
	router.PUT("/api/produce/:produceid", ratelim.RateLimit(middleware.Authenticate(produce.UpdateProduce)))
	router.DELETE("/api/produce/:produceid", ratelim.RateLimit(middleware.Authenticate(produce.DeleteProduce)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.GetCart)))
	router.POST("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/:cartid", ratelim.RateLimit(middleware.Authenticate(cart.UpdateQuantity)))
	router.DELETE("/api/cart/:cartid", ratelim.RateLimit(middleware.Authenticate(cart.RemoveFromCart)))
	router.DELETE("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.ClearCartHandler)))
	router.POST("/api/checkout", ratelim.RateLimit(middleware.Authenticate(cart.PlaceOrder)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.GetMyOrders)))
	router.GET("/api/farmorders", ratelim.RateLimit(middleware.Authenticate(orders.GetIncomingOrders)))
	router.PUT("/api/orders/:orderid/status", ratelim.RateLimit(middleware.Authenticate(orders.UpdateOrderStatus)))
	router.GET("/api/orders/:orderid/receipt", ratelim.RateLimit(middleware.Authenticate(orders.PrintReceipt)))
	router.GET("/api/receipts/verify", ratelim.RateLimit(middleware.Authenticate(orders.VerifyReceipt)))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/orders", middleware.Authenticate(notify.WebSocketHandler(hub)))
}
