package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/storage"
)

const (
	menuCacheKey = "menu:available"
	menuCacheTTL = time.Minute
)

// MenuService 菜单读取服务
type MenuService struct {
	menuRepo repository.MenuRepository
	resolver storage.Resolver
}

// NewMenuService 创建菜单服务
func NewMenuService(menuRepo repository.MenuRepository, resolver storage.Resolver) *MenuService {
	return &MenuService{menuRepo: menuRepo, resolver: resolver}
}

// ListAvailable 获取可点菜品（图片地址已解析为绝对地址）
func (s *MenuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	var cached []models.MenuItem
	hit, err := cache.GetJSON(ctx, menuCacheKey, &cached)
	if err != nil {
		logger.Warnw("menu_cache_get_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	items, err := s.menuRepo.ListAvailable()
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ImageURL = storage.ResolveImage(s.resolver, items[i].ImageURL)
	}
	if err := cache.SetJSON(ctx, menuCacheKey, items, menuCacheTTL); err != nil {
		logger.Warnw("menu_cache_set_failed", "error", err)
	}
	return items, nil
}

// GetAvailable 获取单个可点菜品，用于加入购物车时的价格快照
func (s *MenuService) GetAvailable(menuItemID string) (*models.MenuItem, error) {
	menuItemID = strings.TrimSpace(menuItemID)
	if menuItemID == "" {
		return nil, ErrMenuItemNotFound
	}
	item, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Available {
		return nil, ErrMenuItemNotFound
	}
	item.ImageURL = storage.ResolveImage(s.resolver, item.ImageURL)
	return item, nil
}

// Partition 按 food/beverage 拆分菜品，保持原有顺序
func Partition(items []models.MenuItem) (food []models.MenuItem, beverage []models.MenuItem) {
	food = make([]models.MenuItem, 0, len(items))
	beverage = make([]models.MenuItem, 0)
	for _, item := range items {
		switch item.Category {
		case constants.MenuCategoryBeverage:
			beverage = append(beverage, item)
		case constants.MenuCategoryFood:
			food = append(food, item)
		}
	}
	return food, beverage
}
