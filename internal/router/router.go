package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dujiao-next/tableorder/internal/authz"
	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	adminhandlers "github.com/dujiao-next/tableorder/internal/http/handlers/admin"
	publichandlers "github.com/dujiao-next/tableorder/internal/http/handlers/public"
	staffhandlers "github.com/dujiao-next/tableorder/internal/http/handlers/staff"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/provider"

	"github.com/gin-gonic/gin"
)

const (
	orderSubmitWindowSeconds = 60
	orderSubmitMaxRequests   = 10
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按顾客/员工/管理员分组）
	publicHandler := publichandlers.New(c)
	staffHandler := staffhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "to"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	orderSubmitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order_submit", redisPrefix),
		WindowSeconds: orderSubmitWindowSeconds,
		MaxRequests:   orderSubmitMaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 顾客扫码点餐接口（无需登录，按会话隔离）
		public := apiV1.Group("/public")
		public.Use(CartSessionMiddleware(cfg.Cart.SessionHeader))
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/tables/:id", publicHandler.ResolveTable)
			public.GET("/menu", publicHandler.GetMenu)
			public.GET("/session", publicHandler.GetSession)
			public.GET("/cart", publicHandler.GetCart)
			public.DELETE("/cart", publicHandler.ClearCart)
			public.POST("/cart/items", publicHandler.AddCartItem)
			public.PATCH("/cart/items/:menu_item_id", publicHandler.UpdateCartItem)
			public.DELETE("/cart/items/:menu_item_id", publicHandler.RemoveCartItem)
			public.POST("/orders", RateLimitMiddleware(redisClient, orderSubmitRule, KeyByCartSession), publicHandler.SubmitOrder)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 员工登录
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), staffHandler.Login)
			auth.GET("/me", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), staffHandler.GetCurrentProfile)
		}

		// 员工接口（staff 与 admin 均可访问）
		staff := apiV1.Group("/staff")
		staff.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), RoleGateMiddleware(c.AuthzService))
		{
			staff.GET("/orders", staffHandler.ListOrders)
			staff.GET("/orders/ws", staffHandler.StreamOrders)
			staff.GET("/orders/:id", staffHandler.GetOrder)
			staff.PATCH("/orders/:id/status", staffHandler.UpdateOrderStatus)
			staff.POST("/print", staffHandler.PrintOrder)

			staff.GET("/recipes", staffHandler.ListRecipes)
			staff.GET("/recipes/:id", staffHandler.GetRecipe)
			staff.POST("/recipes", staffHandler.CreateRecipe)
			staff.PUT("/recipes/:id", staffHandler.UpdateRecipe)
			staff.DELETE("/recipes/:id", staffHandler.DeleteRecipe)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), RoleGateMiddleware(c.AuthzService))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/tables", adminHandler.ListTables)

			// 成本核算
			admin.GET("/costing/suppliers", adminHandler.ListSuppliers)
			admin.POST("/costing/suppliers", adminHandler.CreateSupplier)
			admin.GET("/costing/ingredients", adminHandler.ListIngredients)
			admin.POST("/costing/ingredients", adminHandler.CreateIngredient)
			admin.PUT("/costing/ingredients/:id", adminHandler.UpdateIngredient)
			admin.DELETE("/costing/ingredients/:id", adminHandler.DeleteIngredient)
			admin.GET("/costing/recipes", adminHandler.ListCostingRecipes)
			admin.GET("/costing/recipes/:id", adminHandler.GetCostingRecipe)
			admin.POST("/costing/recipes", adminHandler.CreateCostingRecipe)
			admin.PUT("/costing/recipes/:id", adminHandler.UpdateCostingRecipe)
			admin.DELETE("/costing/recipes/:id", adminHandler.DeleteCostingRecipe)

			// 权限目录
			admin.GET("/authz/routes", func(ctx *gin.Context) {
				response.Success(ctx, buildRoutePermissionCatalog(r, c.AuthzService))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if cache.Enabled() {
			redisStatus = "ok"
			if err := cache.Ping(c.Request.Context()); err != nil {
				redisStatus = "unavailable"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisStatus})
	})

	return r
}

type routePermissionCatalogItem struct {
	Module     string   `json:"module"`
	Method     string   `json:"method"`
	Object     string   `json:"object"`
	Permission string   `json:"permission"`
	Roles      []string `json:"roles"`
}

// buildRoutePermissionCatalog 列出受角色保护的路由及可访问的角色
func buildRoutePermissionCatalog(engine *gin.Engine, authzService *authz.Service) []routePermissionCatalogItem {
	if engine == nil {
		return []routePermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]routePermissionCatalogItem, 0, len(routes))
	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/staff/") && !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, routePermissionCatalogItem{
			Module:     deriveRouteModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
			Roles:      allowedRoles(authzService, item.Path, method),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func allowedRoles(authzService *authz.Service, path, method string) []string {
	roles := []string{}
	if authzService == nil {
		return roles
	}
	for _, role := range []string{constants.RoleAdmin, constants.RoleStaff} {
		allowed, err := authzService.EnforceRole(role, path, method)
		if err == nil && allowed {
			roles = append(roles, role)
		}
	}
	return roles
}

func deriveRouteModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	return segments[1]
}
