package router

import (
	"fmt"
	"strings"

	"github.com/atelier-next/internal/cache"
	"github.com/atelier-next/internal/config"
	adminhandlers "github.com/atelier-next/internal/http/handlers/admin"
	publichandlers "github.com/atelier-next/internal/http/handlers/public"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "at"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	shopLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:shop_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	publicWriteRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:public_write", redisPrefix),
		WindowSeconds: cfg.Security.PublicRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PublicRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.PublicRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 公开接口
		public := api.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/content/:section", publicHandler.GetSiteContentSection)
			public.GET("/pages", publicHandler.ListPublishedPages)
			public.GET("/pages/:key", publicHandler.GetPublishedPage)
			public.GET("/seo/:page", publicHandler.GetSeoSetting)
			public.POST("/coupons/validate", publicHandler.ValidateCoupon)
			public.POST("/orders", RateLimitMiddleware(redisClient, publicWriteRule, KeyByIP), publicHandler.CreateOrder)
			public.GET("/orders/:order_number", publicHandler.LookupOrder)
			public.POST("/contact", RateLimitMiddleware(redisClient, publicWriteRule, KeyByIP), publicHandler.SubmitContact)
			public.POST("/newsletter/subscribe", RateLimitMiddleware(redisClient, publicWriteRule, KeyByIPAndJSONField("email")), publicHandler.SubscribeNewsletter)
			public.POST("/newsletter/unsubscribe", publicHandler.UnsubscribeNewsletter)
			public.POST("/analytics/track", RateLimitMiddleware(redisClient, publicWriteRule, KeyByIP), publicHandler.TrackEvent)
		}

		// 商城用户认证接口
		shop := api.Group("/shop")
		{
			shop.POST("/register", publicHandler.ShopRegister)
			shop.POST("/login", RateLimitMiddleware(redisClient, shopLoginRule, KeyByIPAndJSONField("email")), publicHandler.ShopLogin)
			shop.POST("/logout", publicHandler.ShopLogout)

			// 需商城会话的接口
			me := shop.Group("")
			me.Use(ShopAuthMiddleware(c.ShopAuthService))
			{
				me.GET("/profile", publicHandler.ShopProfile)
				me.PUT("/profile", publicHandler.ShopUpdateProfile)
				me.PUT("/password", publicHandler.ShopChangePassword)
				me.GET("/orders", publicHandler.ListMyOrders)
			}
		}

		// 管理员接口
		admin := api.Group("/admin")
		{
			admin.GET("/captcha", adminHandler.GetCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Group("")
			authorized.Use(AdminAuthMiddleware(c.AuthService))
			{
				authorized.POST("/logout", adminHandler.Logout)
				authorized.GET("/me", adminHandler.Me)
				authorized.PUT("/password", adminHandler.ChangePassword)
				authorized.POST("/email/test", adminHandler.SendTestEmail)

				// 仪表盘
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/sales", adminHandler.GetSalesReport)
				authorized.GET("/dashboard/stock", adminHandler.GetStockReport)
				authorized.GET("/dashboard/recent-orders", adminHandler.GetRecentOrders)

				// 商品管理
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/categories", adminHandler.ListProductCategories)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.POST("/products/:id/attributes", adminHandler.AddProductAttribute)
				authorized.PUT("/products/:id/attributes/:attribute_id", adminHandler.UpdateProductAttribute)
				authorized.DELETE("/products/:id/attributes/:attribute_id", adminHandler.DeleteProductAttribute)
				authorized.POST("/products/:id/images", adminHandler.AddProductImage)
				authorized.DELETE("/products/:id/images/:image_id", adminHandler.DeleteProductImage)

				// 库存管理
				authorized.POST("/inventory/adjust", adminHandler.AdjustInventory)
				authorized.GET("/inventory/history", adminHandler.ListInventoryHistory)
				authorized.GET("/inventory/low-stock", adminHandler.ListLowStock)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.PATCH("/orders/:id/payment-status", adminHandler.UpdateOrderPaymentStatus)

				// 优惠券管理
				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				// 站点内容管理
				authorized.GET("/content", adminHandler.ListSiteContent)
				authorized.GET("/content/:section", adminHandler.GetSiteContentSection)
				authorized.PUT("/content", adminHandler.UpsertSiteContent)
				authorized.DELETE("/content/:section/:key", adminHandler.DeleteSiteContent)

				// 页面管理
				authorized.GET("/pages", adminHandler.ListSitePages)
				authorized.GET("/pages/:key", adminHandler.GetSitePage)
				authorized.PUT("/pages", adminHandler.UpsertSitePage)
				authorized.DELETE("/pages/:key", adminHandler.DeleteSitePage)

				// SEO 管理
				authorized.GET("/seo", adminHandler.ListSeoSettings)
				authorized.GET("/seo/:page", adminHandler.GetSeoSetting)
				authorized.PUT("/seo", adminHandler.UpsertSeoSetting)
				authorized.DELETE("/seo/:page", adminHandler.DeleteSeoSetting)

				// 埋点分析
				authorized.GET("/analytics/events", adminHandler.ListAnalyticsEvents)
				authorized.GET("/analytics/summary", adminHandler.GetAnalyticsSummary)

				// 智能助手
				authorized.POST("/assist/chat", adminHandler.AssistChat)
				authorized.POST("/assist/seo", adminHandler.AssistSeoSuggestions)
				authorized.POST("/assist/marketing", adminHandler.AssistMarketingInsights)
				authorized.POST("/assist/content", adminHandler.AssistContentImprovement)
				authorized.POST("/assist/email", adminHandler.AssistEmailResponse)
				authorized.GET("/assist/history", adminHandler.AssistHistory)

				// 联系消息管理
				authorized.GET("/contacts", adminHandler.ListContacts)
				authorized.GET("/contacts/:id", adminHandler.GetContact)
				authorized.PATCH("/contacts/:id/status", adminHandler.UpdateContactStatus)
				authorized.DELETE("/contacts/:id", adminHandler.DeleteContact)

				// 订阅管理
				authorized.GET("/newsletter/subscribers", adminHandler.ListNewsletterSubscribers)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
