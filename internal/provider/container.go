package provider

import (
	"time"

	"github.com/atelier-next/internal/ai"
	"github.com/atelier-next/internal/cache"
	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	AdminSessionRepo     repository.AdminSessionRepository
	ShopUserRepo         repository.ShopUserRepository
	ShopSessionRepo      repository.ShopSessionRepository
	ProductRepo          repository.ProductRepository
	ProductAttributeRepo repository.ProductAttributeRepository
	ProductImageRepo     repository.ProductImageRepository
	OrderRepo            repository.OrderRepository
	CouponRepo           repository.CouponRepository
	InventoryRepo        repository.InventoryHistoryRepository
	SiteContentRepo      repository.SiteContentRepository
	SitePageRepo         repository.SitePageRepository
	SeoRepo              repository.SeoRepository
	AnalyticsRepo        repository.AnalyticsRepository
	AIConversationRepo   repository.AIConversationRepository
	ContactRepo          repository.ContactRepository
	NewsletterRepo       repository.NewsletterRepository
	DashboardRepo        repository.DashboardRepository

	// Services
	AuthService       *service.AuthService
	ShopAuthService   *service.ShopAuthService
	CatalogService    *service.CatalogService
	OrderService      *service.OrderService
	CouponService     *service.CouponService
	InventoryService  *service.InventoryService
	ContentService    *service.ContentService
	PageService       *service.PageService
	SeoService        *service.SeoService
	AnalyticsService  *service.AnalyticsService
	DashboardService  *service.DashboardService
	AssistService     *service.AssistService
	ContactService    *service.ContactService
	NewsletterService *service.NewsletterService
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.AdminSessionRepo = repository.NewAdminSessionRepository(db)
	c.ShopUserRepo = repository.NewShopUserRepository(db)
	c.ShopSessionRepo = repository.NewShopSessionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductAttributeRepo = repository.NewProductAttributeRepository(db)
	c.ProductImageRepo = repository.NewProductImageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.InventoryRepo = repository.NewInventoryHistoryRepository(db)
	c.SiteContentRepo = repository.NewSiteContentRepository(db)
	c.SitePageRepo = repository.NewSitePageRepository(db)
	c.SeoRepo = repository.NewSeoRepository(db)
	c.AnalyticsRepo = repository.NewAnalyticsRepository(db)
	c.AIConversationRepo = repository.NewAIConversationRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.AdminSessionRepo)
	c.ShopAuthService = service.NewShopAuthService(c.Config, c.ShopUserRepo, c.ShopSessionRepo)
	c.InventoryService = service.NewInventoryService(c.ProductRepo, c.InventoryRepo, constants.DefaultLowStockThreshold)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.ProductAttributeRepo, c.ProductImageRepo, c.InventoryRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CouponService, c.InventoryService, c.QueueClient)
	c.ContentService = service.NewContentService(c.SiteContentRepo)
	c.PageService = service.NewPageService(c.SitePageRepo)
	c.SeoService = service.NewSeoService(c.SeoRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.AnalyticsRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.ProductRepo, constants.DefaultLowStockThreshold)
	c.ContactService = service.NewContactService(c.ContactRepo, c.QueueClient)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo, c.QueueClient)

	assistClient := ai.NewHTTPClient(ai.Options{
		BaseURL:    c.Config.Assist.BaseURL,
		APIKey:     c.Config.Assist.APIKey,
		Model:      c.Config.Assist.Model,
		MaxTokens:  c.Config.Assist.MaxTokens,
		Timeout:    time.Duration(c.Config.Assist.TimeoutMS) * time.Millisecond,
		MaxRetries: c.Config.Assist.MaxRetries,
	})
	c.AssistService = service.NewAssistService(assistClient, c.AIConversationRepo)
}
