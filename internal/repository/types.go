package repository

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	Status   string
	TableID  string
}

// RecipeListFilter 查询食谱列表的过滤条件
type RecipeListFilter struct {
	Page     int
	PageSize int
	Search   string
}
