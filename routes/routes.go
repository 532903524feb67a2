package routes

import (
	"log"

	"carers-store/config"
	"carers-store/controllers"
	"carers-store/middleware"
	"carers-store/models"
	"carers-store/payments"
	"carers-store/repositories"
	"carers-store/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	cfg := config.AppConfig

	// Cart persistence rides on Redis; without it carts live in process
	// memory and die with it.
	var kv repositories.KV
	if models.RedisClient != nil {
		kv = repositories.NewRedisKV(models.RedisClient, cfg.CartTTL)
	} else {
		log.Println("Redis unavailable, falling back to in-memory cart store")
		kv = repositories.NewMemoryKV()
	}
	cartStore := repositories.NewCartStore(kv)

	discountRepo := repositories.NewDiscountRepository()
	orderRepo := repositories.NewOrderRepository()

	pricing := services.PricingConfig{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
	}

	productService := services.NewProductService()
	authService := services.NewAuthService()
	cartService := services.NewCartService(cartStore, discountRepo, pricing)

	provider := payments.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey)
	checkoutService := services.NewCheckoutService(provider, services.CheckoutConfig{
		Currency:      cfg.Currency,
		SuccessURL:    cfg.CheckoutSuccessURL,
		CancelURL:     cfg.CheckoutCancelURL,
		DynamicPrices: cfg.DynamicPrices,
	})

	emailService, err := models.NewEmailService()
	if err != nil {
		log.Printf("Email service disabled: %v", err)
		emailService = nil
	}

	authCtrl := controllers.NewAuthController(authService)
	productCtrl := controllers.NewProductController(productService)
	cartCtrl := controllers.NewCartController(cartService, productService)
	checkoutCtrl := controllers.NewCheckoutController(cartService, productService, checkoutService)
	webhookCtrl := controllers.NewWebhookController(cartService, orderRepo, emailService)
	discountCtrl := controllers.NewDiscountController(discountRepo)
	orderCtrl := controllers.NewOrderController(orderRepo)
	blogCtrl := controllers.NewBlogController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/discounts", discountCtrl.GetActiveRules)

	router.GET("/posts", blogCtrl.GetPublishedPosts)
	router.GET("/posts/:slug", blogCtrl.GetPostBySlug)

	router.POST("/webhooks/payment", webhookCtrl.HandlePaymentWebhook)

	// Cart and checkout work for guests and logged-in users alike.
	shop := router.Group("/")
	shop.Use(middleware.OptionalAuthMiddleware())
	{
		shop.GET("/cart", cartCtrl.GetCart)
		shop.DELETE("/cart", cartCtrl.ClearCart)
		shop.POST("/cart/items", cartCtrl.AddItem)
		shop.PATCH("/cart/items/:productId", cartCtrl.UpdateQuantity)
		shop.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)
		shop.POST("/cart/items/:productId/increase", cartCtrl.IncreaseQuantity)
		shop.POST("/cart/items/:productId/decrease", cartCtrl.DecreaseQuantity)

		shop.POST("/checkout/session", checkoutCtrl.CreateSession)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/profile/photo", authCtrl.UpdateProfilePhoto)
		auth.GET("/orders", orderCtrl.GetMyOrders)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.POST("/discounts", discountCtrl.CreateRule)
		admin.DELETE("/discounts/:id", discountCtrl.DeactivateRule)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.POST("/posts", blogCtrl.CreatePost)
		admin.PUT("/posts/:id", blogCtrl.UpdatePost)
		admin.DELETE("/posts/:id", blogCtrl.DeletePost)
	}

	router.Static("/uploads", "./uploads")
}
