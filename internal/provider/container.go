package provider

import (
	"context"
	"time"

	"github.com/dujiao-next/tableorder/internal/authz"
	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/notify"
	"github.com/dujiao-next/tableorder/internal/queue"
	"github.com/dujiao-next/tableorder/internal/realtime"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/service"
	"github.com/dujiao-next/tableorder/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Broker      realtime.Broker

	// Repositories
	TableRepo         repository.TableRepository
	MenuRepo          repository.MenuRepository
	OrderRepo         repository.OrderRepository
	ProfileRepo       repository.ProfileRepository
	SupplierRepo      repository.SupplierRepository
	IngredientRepo    repository.IngredientRepository
	CostingRecipeRepo repository.CostingRecipeRepository
	RecipeRepo        repository.RecipeRepository
	CartSnapshotRepo  repository.CartSnapshotRepository

	// 会话状态
	CartStore    cart.Persistence
	CartLocker   cart.SessionLocker
	ContextStore *cart.ContextStore
	SubmitGuard  cart.SubmitGuard

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	CaptchaService       *service.CaptchaService
	UserAdminService     *service.UserAdminService
	TableService         *service.TableService
	MenuService          *service.MenuService
	CartService          *service.CartService
	SubmissionService    *service.SubmissionService
	OrderService         *service.OrderService
	PrintService         *service.PrintService
	KitchenNotifyService *service.KitchenNotifyService
	CostingService       *service.CostingService
	RecipeService        *service.RecipeService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	// 初始化实时推送
	broker, err := realtime.NewBroker(context.Background(), cfg.Realtime, cfg.Database)
	if err != nil {
		logger.Warnw("provider_init_realtime_failed", "driver", cfg.Realtime.Driver, "error", err, "fallback", "memory")
		broker = realtime.NewMemoryBroker()
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Broker:      broker,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化会话状态
	c.initSessionState()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.TableRepo = repository.NewTableRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.CostingRecipeRepo = repository.NewCostingRecipeRepository(db)
	c.RecipeRepo = repository.NewRecipeRepository(db)
	c.CartSnapshotRepo = repository.NewCartSnapshotRepository(db)
}

func (c *Container) initSessionState() {
	c.CartStore = cart.NewPersistence(c.Config.Cart.Persistence, c.CartSnapshotRepo)
	c.ContextStore = cart.NewContextStore(c.CartStore)
	ttl := time.Duration(c.Config.Cart.SubmitLockTTL) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	c.SubmitGuard = cart.NewSubmitGuard(ttl)
	c.CartLocker = cart.NewSessionLocker(ttl)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	resolver, err := storage.NewResolver(c.Config.Storage)
	if err != nil {
		logger.Warnw("provider_init_storage_resolver_failed", "driver", c.Config.Storage.Driver, "error", err)
		resolver = storage.NewBaseURLResolver(c.Config.Storage.PublicBaseURL, c.Config.Storage.Bucket)
	}

	c.AuthService = service.NewAuthService(c.Config, c.ProfileRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAdminService = service.NewUserAdminService(c.ProfileRepo, c.AuthService, c.AuthzService)
	c.TableService = service.NewTableService(c.TableRepo, c.ContextStore)
	c.MenuService = service.NewMenuService(c.MenuRepo, resolver)
	c.CartService = service.NewCartService(c.CartStore, c.CartLocker, c.MenuService)
	c.SubmissionService = service.NewSubmissionService(c.CartService, c.ContextStore, c.SubmitGuard, c.OrderRepo, c.Broker, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.Broker)
	c.PrintService = service.NewPrintService(c.OrderRepo, c.QueueClient)
	c.KitchenNotifyService = service.NewKitchenNotifyService(c.OrderRepo, notify.New(c.Config.Telegram))
	c.CostingService = service.NewCostingService(c.SupplierRepo, c.IngredientRepo, c.CostingRecipeRepo)
	c.RecipeService = service.NewRecipeService(c.RecipeRepo)
}

// Close 释放容器持有的连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Broker != nil {
		if err := c.Broker.Close(); err != nil {
			logger.Warnw("provider_close_realtime_failed", "error", err)
		}
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
