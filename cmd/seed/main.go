package main

import (
	"time"

	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"fa": "گردنبند دست‌ساز نقره",
				"en": "Handmade Silver Necklace",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"fa": "گردنبند نقره با طراحی مینیمال، ساخته شده با دست",
				"en": "Minimal silver necklace, handcrafted piece by piece",
			}),
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(89.50)),
			Category:      "jewelry",
			ImageURL:      "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=800",
			StockQuantity: 25,
			IsAvailable:   true,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"fa": "کیف چرمی دست‌دوز",
				"en": "Hand-stitched Leather Bag",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"fa": "کیف چرم طبیعی با دوخت دستی و آستر پارچه‌ای",
				"en": "Natural leather bag with hand stitching and fabric lining",
			}),
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(149.00)),
			Category:      "bags",
			ImageURL:      "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=800",
			StockQuantity: 12,
			IsAvailable:   true,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"fa": "ظرف سفالی لعاب‌دار",
				"en": "Glazed Ceramic Bowl",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"fa": "کاسه سفالی با لعاب فیروزه‌ای، مناسب سرو و دکور",
				"en": "Ceramic bowl with turquoise glaze, for serving or decor",
			}),
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(42.00)),
			Category:      "ceramics",
			ImageURL:      "https://images.unsplash.com/photo-1610701596007-11502861dcfa?w=800",
			StockQuantity: 40,
			IsAvailable:   true,
		},
	}

	for i := range products {
		product := &products[i]
		name := product.DisplayName()
		var count int64
		models.DB.Model(&models.Product{}).Where("name_json = ?", product.NameJSON).Count(&count)
		if count > 0 {
			stdLog.Printf("Product already exists: %s", name)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", name, err)
			continue
		}
		history := models.InventoryHistory{
			ProductID:        product.ID,
			QuantityChange:   product.StockQuantity,
			PreviousQuantity: 0,
			NewQuantity:      product.StockQuantity,
			ChangeType:       constants.StockChangeInitial,
			Notes:            "seed data",
		}
		if err := models.DB.Create(&history).Error; err != nil {
			stdLog.Printf("Failed to record initial stock for %s: %v", name, err)
		}
		stdLog.Printf("Created product: %s", name)
	}

	// 添加优惠券
	validUntil := time.Now().AddDate(0, 3, 0)
	maxDiscount := models.NewMoneyFromDecimal(decimal.NewFromInt(30))
	usageLimit := 100
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  constants.DiscountTypePercentage,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinPurchase:   models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			MaxDiscount:   &maxDiscount,
			UsageLimit:    &usageLimit,
			ValidUntil:    &validUntil,
			IsActive:      true,
		},
		{
			Code:          "FREESHIP",
			DiscountType:  constants.DiscountTypeFixed,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
			MinPurchase:   models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
			IsActive:      true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			continue
		}
		stdLog.Printf("Created coupon: %s", coupon.Code)
	}

	// 添加站点内容
	contents := []models.SiteContent{
		{Section: "hero", ContentKey: "title", ContentValue: "Atelier", ContentType: constants.ContentTypeText},
		{Section: "hero", ContentKey: "subtitle", ContentValue: "Handcrafted goods, made to last", ContentType: constants.ContentTypeText},
		{Section: "footer", ContentKey: "about", ContentValue: "A small studio making things by hand.", ContentType: constants.ContentTypeText},
		{Section: "footer", ContentKey: "instagram", ContentValue: "https://instagram.com/atelier", ContentType: constants.ContentTypeText},
	}
	for _, content := range contents {
		var existing models.SiteContent
		if err := models.DB.Where("section = ? AND content_key = ?", content.Section, content.ContentKey).First(&existing).Error; err == nil {
			stdLog.Printf("Content already exists: %s/%s", content.Section, content.ContentKey)
			continue
		}
		if err := models.DB.Create(&content).Error; err != nil {
			stdLog.Printf("Failed to create content %s/%s: %v", content.Section, content.ContentKey, err)
			continue
		}
		stdLog.Printf("Created content: %s/%s", content.Section, content.ContentKey)
	}

	// 添加页面
	pages := []models.SitePage{
		{
			PageKey: "about",
			TitleJSON: models.JSON(map[string]interface{}{
				"fa": "درباره ما",
				"en": "About Us",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"fa": "ما یک کارگاه کوچک هستیم که همه چیز را با دست می‌سازیم.",
				"en": "We are a small studio making everything by hand.",
			}),
			IsPublished: true,
		},
		{
			PageKey: "shipping",
			TitleJSON: models.JSON(map[string]interface{}{
				"fa": "ارسال و بازگشت",
				"en": "Shipping & Returns",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"fa": "سفارش‌ها ظرف ۳ تا ۵ روز کاری ارسال می‌شوند.",
				"en": "Orders ship within 3-5 business days.",
			}),
			IsPublished: true,
		},
	}
	for _, page := range pages {
		var existing models.SitePage
		if err := models.DB.Where("page_key = ?", page.PageKey).First(&existing).Error; err == nil {
			stdLog.Printf("Page already exists: %s", page.PageKey)
			continue
		}
		if err := models.DB.Create(&page).Error; err != nil {
			stdLog.Printf("Failed to create page %s: %v", page.PageKey, err)
			continue
		}
		stdLog.Printf("Created page: %s", page.PageKey)
	}

	// 添加 SEO 配置
	seoSettings := []models.SeoSetting{
		{
			Page:        "home",
			Title:       "Atelier - Handcrafted Goods",
			Description: "Handmade jewelry, leather goods and ceramics from a small studio.",
			Keywords:    models.StringArray{"handmade", "jewelry", "leather", "ceramics"},
		},
		{
			Page:        "about",
			Title:       "About - Atelier",
			Description: "The story behind our studio and how we make things.",
			Keywords:    models.StringArray{"about", "studio", "handmade"},
		},
	}
	for _, seo := range seoSettings {
		var existing models.SeoSetting
		if err := models.DB.Where("page = ?", seo.Page).First(&existing).Error; err == nil {
			stdLog.Printf("SEO setting already exists: %s", seo.Page)
			continue
		}
		if err := models.DB.Create(&seo).Error; err != nil {
			stdLog.Printf("Failed to create seo setting %s: %v", seo.Page, err)
			continue
		}
		stdLog.Printf("Created seo setting: %s", seo.Page)
	}

	stdLog.Printf("Seed completed")
}
