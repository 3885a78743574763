package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNumber string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// EnquiryListFilter 查询询盘列表的过滤条件
type EnquiryListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Search   string
}

// SupplierListFilter 查询供应商列表的过滤条件
type SupplierListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}
