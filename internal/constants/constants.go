package constants

// 订单状态
const (
	OrderStatusPending   = "pending"   // 待处理
	OrderStatusPreparing = "preparing" // 制作中
	OrderStatusCompleted = "completed" // 已完成
	OrderStatusCancelled = "cancelled" // 已取消
)

// 菜品分类
const (
	MenuCategoryFood     = "food"
	MenuCategoryBeverage = "beverage"
)

// 员工角色（JWT user_role 声明）
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// 原料计量单位
const (
	UnitGram       = "g"
	UnitMilliliter = "mL"
	UnitEach       = "ea"
)

// 打印机类型
const (
	PrinterKitchen = "kitchen"
	PrinterCounter = "counter"
	PrinterBoth    = "both"
)

// 实时变更事件
const (
	RealtimeTableOrders = "orders"
	RealtimeEventInsert = "INSERT"
	RealtimeEventUpdate = "UPDATE"
	RealtimeEventDelete = "DELETE"
	RealtimeEventAll    = "*"
)

// 购物车持久化方式
const (
	CartPersistenceMemory   = "memory"
	CartPersistenceRedis    = "redis"
	CartPersistenceDatabase = "database"
)

// 实时推送驱动
const (
	RealtimeDriverMemory   = "memory"
	RealtimeDriverRedis    = "redis"
	RealtimeDriverPostgres = "postgres"
)

// 图片存储驱动
const (
	StorageDriverBaseURL    = "base_url"
	StorageDriverCloudinary = "cloudinary"
)

// 持久化 key 前缀
const (
	CartStorageKey         = "restaurant-cart-storage"
	OrderContextStorageKey = "restaurant-order-context"
)

// 队列
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderPrint         = "order:print"
	TaskOrderCreatedNotify = "order:created_notify"
)

// UnknownMenuItemName 订单项关联菜品缺失时的展示名
const UnknownMenuItemName = "Unknown"
