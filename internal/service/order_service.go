package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNumberMaxAttempts = 3

// OrderItemInput 订单明细入参
// 单价不由客户端提供，下单时按商品当前价格计算
type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderCreateInput 订单创建入参
// ExpectedTotal 可选，客户端展示金额与服务端计算不一致时拒单
type OrderCreateInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   string
	Notes           string
	CouponCode      string
	Items           []OrderItemInput
	ExpectedTotal   *models.Money
}

// OrderService 订单服务
// 下单、优惠核销、库存扣减与销售流水在同一事务内完成
type OrderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	couponService    *CouponService
	inventoryService *InventoryService
	queueClient      *queue.Client
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponService *CouponService,
	inventoryService *InventoryService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		couponService:    couponService,
		inventoryService: inventoryService,
		queueClient:      queueClient,
	}
}

// Create 创建订单
// 金额一律按服务端商品价格计算，客户端价格仅用于一致性校验
func (s *OrderService) Create(input OrderCreateInput) (*models.Order, error) {
	name := strings.TrimSpace(input.CustomerName)
	email := normalizeEmail(input.CustomerEmail)
	if name == "" || email == "" {
		return nil, ErrInvalidParams
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidParams
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// 合并重复商品行并校验数量
	quantities := make(map[uint]int, len(input.Items))
	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidParams
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(ids))
	for _, id := range ids {
		product, ok := productByID[id]
		if !ok || !product.IsAvailable {
			return nil, ErrProductUnavailable
		}
		quantity := quantities[id]
		if product.StockQuantity < quantity {
			return nil, ErrInsufficientStock
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   id,
			ProductName: product.DisplayName(),
			Quantity:    quantity,
			Price:       product.Price,
		})
	}
	subtotalMoney := models.NewMoneyFromDecimal(subtotal)

	// 优惠券试算（校验在事务外，核销在事务内）
	discount := models.MoneyZero()
	var couponID uint
	couponCode := strings.ToUpper(strings.TrimSpace(input.CouponCode))
	if couponCode != "" {
		quote, err := s.couponService.Validate(couponCode, subtotalMoney)
		if err != nil {
			return nil, err
		}
		discount = quote.DiscountAmount
		couponID = quote.Coupon.ID
	}
	total := models.NewMoneyFromDecimal(subtotal.Sub(discount.Decimal))

	if input.ExpectedTotal != nil && !input.ExpectedTotal.Equal(total.Decimal) {
		logger.Warnw("order_price_mismatch_rejected",
			"customer_email", email,
			"expected_total", input.ExpectedTotal.String(),
			"server_total", total.String(),
		)
		return nil, ErrPriceMismatch
	}

	order := &models.Order{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		TotalAmount:     total,
		DiscountAmount:  discount,
		CouponCode:      couponCode,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		PaymentStatus:   constants.PaymentStatusUnpaid,
		Status:          constants.OrderStatusPending,
		Notes:           strings.TrimSpace(input.Notes),
		Items:           orderItems,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if couponID != 0 {
			if err := s.couponService.RedeemTx(tx, couponID); err != nil {
				return err
			}
		}

		if err := s.createWithUniqueNumber(tx, order); err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := s.inventoryService.RecordSaleTx(tx, item.ProductID, item.Quantity, order.OrderNumber); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_number", order.OrderNumber,
		"customer_email", email,
		"total_amount", order.TotalAmount.String(),
		"item_count", len(order.Items),
	)

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{OrderID: order.ID}); err != nil {
			logger.Warnw("order_confirmation_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	return s.orderRepo.GetByID(order.ID)
}

// createWithUniqueNumber 生成订单号并创建，冲突时重试
func (s *OrderService) createWithUniqueNumber(tx *gorm.DB, order *models.Order) error {
	repo := s.orderRepo.WithTx(tx)
	var lastErr error
	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber()
		lastErr = repo.Create(order)
		if lastErr == nil {
			return nil
		}
		if !isUniqueViolation(lastErr) {
			return lastErr
		}
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}
	}
	return lastErr
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByOrderNumber 根据订单号获取订单
func (s *OrderService) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListByCustomerEmail 按客户邮箱查询订单
func (s *OrderService) ListByCustomerEmail(email string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByCustomerEmail(normalizeEmail(email), page, pageSize)
}

// UpdateStatus 更新订单状态
// 取消订单时回滚优惠核销并回补库存
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	valid := false
	for _, st := range constants.OrderStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidParams
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status == status {
		return order, nil
	}
	// 取消是终态
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.WithTx(tx).UpdateStatus(id, status); err != nil {
			return err
		}
		if status != constants.OrderStatusCancelled {
			return nil
		}
		for _, item := range order.Items {
			if err := s.inventoryService.RecordReturnTx(tx, item.ProductID, item.Quantity, order.OrderNumber); err != nil {
				return err
			}
		}
		if order.CouponCode != "" {
			coupon, err := s.couponService.couponRepo.GetByCode(order.CouponCode)
			if err != nil {
				return err
			}
			if coupon != nil {
				if err := s.couponService.ReleaseTx(tx, coupon.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_updated",
		"order_number", order.OrderNumber,
		"from_status", order.Status,
		"to_status", status,
	)
	return s.orderRepo.GetByID(id)
}

// UpdatePaymentStatus 更新支付状态
func (s *OrderService) UpdatePaymentStatus(id uint, paymentStatus string) (*models.Order, error) {
	if paymentStatus != constants.PaymentStatusUnpaid && paymentStatus != constants.PaymentStatusPaid {
		return nil, ErrInvalidParams
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if _, err := s.orderRepo.UpdatePaymentStatus(id, paymentStatus); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(id)
}

// generateOrderNumber 生成订单号 ORD-<时间戳>-<4 位随机数>
func generateOrderNumber() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("ORD-%s-%s", now, randDigits(4))
}

func randDigits(count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

// isUniqueViolation 判断是否唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
