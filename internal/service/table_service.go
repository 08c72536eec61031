package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"
)

const tableCacheTTL = 10 * time.Minute

// TableService 餐桌解析服务
type TableService struct {
	tableRepo repository.TableRepository
	contexts  *cart.ContextStore
}

// NewTableService 创建餐桌服务
func NewTableService(tableRepo repository.TableRepository, contexts *cart.ContextStore) *TableService {
	return &TableService{tableRepo: tableRepo, contexts: contexts}
}

func tableCacheKey(id string) string {
	return fmt.Sprintf("table:%s", id)
}

// Lookup 查询餐桌（优先读缓存）
func (s *TableService) Lookup(ctx context.Context, tableID string) (*models.DiningTable, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil, ErrTableIDRequired
	}
	var cached models.DiningTable
	hit, err := cache.GetJSON(ctx, tableCacheKey(tableID), &cached)
	if err != nil {
		logger.Warnw("table_cache_get_failed", "table_id", tableID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}
	if err := cache.SetJSON(ctx, tableCacheKey(tableID), table, tableCacheTTL); err != nil {
		logger.Warnw("table_cache_set_failed", "table_id", tableID, "error", err)
	}
	return table, nil
}

// Resolve 将二维码中的餐桌 ID 解析为桌号并写入会话上下文；同一 ID 只解析一次
func (s *TableService) Resolve(ctx context.Context, sessionID, tableID string) (cart.OrderContext, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return cart.OrderContext{}, ErrTableIDRequired
	}
	oc, err := s.contexts.Load(ctx, sessionID)
	if err != nil {
		return cart.OrderContext{}, err
	}
	if oc.TableID == tableID && oc.TableNumber != "" {
		return oc, nil
	}

	table, err := s.Lookup(ctx, tableID)
	if err != nil {
		return cart.OrderContext{}, err
	}
	oc.SetTableInfo(table.ID, table.TableNumber)
	if err := s.contexts.Save(ctx, sessionID, oc); err != nil {
		return cart.OrderContext{}, err
	}
	return oc, nil
}

// Context 读取会话上下文
func (s *TableService) Context(ctx context.Context, sessionID string) (cart.OrderContext, error) {
	return s.contexts.Load(ctx, sessionID)
}

// List 列出全部餐桌
func (s *TableService) List() ([]models.DiningTable, error) {
	return s.tableRepo.List()
}
