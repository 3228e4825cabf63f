package constants

// 订单状态
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses 合法订单状态集合
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// 支付状态（仅记录，不对接网关）
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// 优惠券折扣类型
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// 库存变更类型
const (
	StockChangePurchase   = "purchase"
	StockChangeSale       = "sale"
	StockChangeReturn     = "return"
	StockChangeAdjustment = "adjustment"
	StockChangeInitial    = "initial"
)

// StockChangeTypes 合法库存变更类型集合
var StockChangeTypes = []string{
	StockChangePurchase,
	StockChangeSale,
	StockChangeReturn,
	StockChangeAdjustment,
	StockChangeInitial,
}

// 联系表单状态
const (
	ContactStatusUnread  = "unread"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactStatuses 合法联系表单状态集合
var ContactStatuses = []string{
	ContactStatusUnread,
	ContactStatusRead,
	ContactStatusReplied,
}

// 内容类型
const (
	ContentTypeText  = "text"
	ContentTypeHTML  = "html"
	ContentTypeImage = "image"
	ContentTypeJSON  = "json"
)

// 库存预警默认阈值
const DefaultLowStockThreshold = 10

// 队列任务类型
const (
	QueueDefault = "default"

	TaskContactNotifyEmail     = "email:contact_notify"
	TaskOrderConfirmationEmail = "email:order_confirmation"
	TaskNewsletterWelcomeEmail = "email:newsletter_welcome"
)

// 验证码场景
const (
	CaptchaSceneAdminLogin = "admin_login"
)
