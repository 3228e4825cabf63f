package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Search        string
	OnlyAvailable bool
	WithDetails   bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	PaymentStatus string
	OrderNumber   string
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// CouponListFilter 查询优惠券列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// InventoryHistoryFilter 查询库存流水列表的过滤条件
type InventoryHistoryFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	ChangeType  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AnalyticsEventFilter 查询埋点事件列表的过滤条件
type AnalyticsEventFilter struct {
	Page        int
	PageSize    int
	EventType   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ContactListFilter 查询联系表单列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// NewsletterListFilter 查询订阅列表的过滤条件
type NewsletterListFilter struct {
	Page       int
	PageSize   int
	OnlyActive bool
}

// ShopUserListFilter 查询商城用户列表的过滤条件
type ShopUserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	IsActive *bool
}

// AIConversationFilter 查询 AI 对话历史的过滤条件
type AIConversationFilter struct {
	AdminID uint
	Limit   int
}
