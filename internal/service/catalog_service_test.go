package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductImage{},
		&models.InventoryHistory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCatalogService(
		repository.NewProductRepository(db),
		repository.NewProductAttributeRepository(db),
		repository.NewProductImageRepository(db),
		repository.NewInventoryHistoryRepository(db),
	)
	return svc, db
}

func TestCatalogCreateWritesInitialStockHistory(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)

	product, err := svc.Create(ProductCreateInput{
		Name: models.JSON(map[string]interface{}{
			"fa": "کاسه سفالی",
			"en": "Ceramic Bowl",
		}),
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(42)),
		Category:      "ceramics",
		StockQuantity: 15,
		Attributes: []ProductAttributeInput{
			{Name: "glaze", Value: "turquoise"},
		},
		Images: []ProductImageInput{
			{URL: "https://example.com/bowl.jpg", IsPrimary: true},
		},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if len(product.Attributes) != 1 || len(product.Images) != 1 {
		t.Fatalf("expected attributes and images persisted, got %+v", product)
	}

	var history models.InventoryHistory
	if err := db.Where("product_id = ?", product.ID).First(&history).Error; err != nil {
		t.Fatalf("expected initial inventory row: %v", err)
	}
	if history.ChangeType != constants.StockChangeInitial || history.NewQuantity != 15 || history.PreviousQuantity != 0 {
		t.Fatalf("unexpected initial history row: %+v", history)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)

	if _, err := svc.Create(ProductCreateInput{
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for missing name, got %v", err)
	}
	if _, err := svc.Create(ProductCreateInput{
		Name:  models.JSON(map[string]interface{}{"en": "Bad"}),
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(-1)),
	}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for negative price, got %v", err)
	}
	if _, err := svc.Create(ProductCreateInput{
		Name:          models.JSON(map[string]interface{}{"en": "Bad"}),
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		StockQuantity: -5,
	}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for negative stock, got %v", err)
	}
}

func TestCatalogGetByIDOnlyAvailable(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)

	hidden := false
	product, err := svc.Create(ProductCreateInput{
		Name:        models.JSON(map[string]interface{}{"en": "Hidden"}),
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsAvailable: &hidden,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// 显式 false 必须落库为 false
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.IsAvailable {
		t.Fatalf("expected stored is_available=false")
	}

	if _, err := svc.GetByID(product.ID, false); err != nil {
		t.Fatalf("admin view should see unavailable product: %v", err)
	}
	if _, err := svc.GetByID(product.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for storefront view, got %v", err)
	}
	if _, err := svc.GetByID(9999, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestCatalogUpdateAndDelete(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)

	product, err := svc.Create(ProductCreateInput{
		Name:     models.JSON(map[string]interface{}{"en": "Bowl"}),
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Category: "ceramics",
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	newPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(12))
	newCategory := " tableware "
	updated, err := svc.Update(product.ID, ProductUpdateInput{
		Price:    &newPrice,
		Category: &newCategory,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(12)) || updated.Category != "tableware" {
		t.Fatalf("unexpected updated product: price=%s category=%s", updated.Price.String(), updated.Category)
	}

	// 删除是下架：行保留，管理端仍可按 id 取到
	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.GetByID(product.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for storefront after delete, got %v", err)
	}
	deleted, err := svc.GetByID(product.ID, false)
	if err != nil {
		t.Fatalf("admin view should still see deleted product: %v", err)
	}
	if deleted.IsAvailable {
		t.Fatalf("expected product unavailable after delete")
	}
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected product row retained, got %d", count)
	}
	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("repeated delete should succeed, got %v", err)
	}
}

func TestCatalogAttributeOwnershipChecks(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)

	first, err := svc.Create(ProductCreateInput{
		Name:  models.JSON(map[string]interface{}{"en": "First"}),
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	second, err := svc.Create(ProductCreateInput{
		Name:  models.JSON(map[string]interface{}{"en": "Second"}),
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := svc.AddAttribute(9999, ProductAttributeInput{Name: "size"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing product, got %v", err)
	}
	if _, err := svc.AddAttribute(first.ID, ProductAttributeInput{Name: " "}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank attribute name, got %v", err)
	}

	attribute, err := svc.AddAttribute(first.ID, ProductAttributeInput{Name: "size", Value: "large"})
	if err != nil {
		t.Fatalf("add attribute failed: %v", err)
	}

	// 属性必须从属于路径中的商品
	if _, err := svc.UpdateAttribute(second.ID, attribute.ID, ProductAttributeInput{Name: "size"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong owner, got %v", err)
	}
	if err := svc.DeleteAttribute(second.ID, attribute.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong owner, got %v", err)
	}
	if err := svc.DeleteAttribute(first.ID, attribute.ID); err != nil {
		t.Fatalf("delete attribute failed: %v", err)
	}
}

func TestCatalogAddImageClearsPreviousPrimary(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)

	product, err := svc.Create(ProductCreateInput{
		Name:  models.JSON(map[string]interface{}{"en": "Bowl"}),
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	first, err := svc.AddImage(product.ID, ProductImageInput{URL: "https://example.com/a.jpg", IsPrimary: true})
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	second, err := svc.AddImage(product.ID, ProductImageInput{URL: "https://example.com/b.jpg", IsPrimary: true})
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	if !second.IsPrimary {
		t.Fatalf("expected new image primary")
	}

	var reloaded models.ProductImage
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload image failed: %v", err)
	}
	if reloaded.IsPrimary {
		t.Fatalf("expected previous primary cleared")
	}

	if _, err := svc.AddImage(product.ID, ProductImageInput{URL: "  "}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for empty url, got %v", err)
	}
}
