package service

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
)

const tableQRSize = 512

// ErrNoTables 没有可生成二维码的餐桌
var ErrNoTables = errors.New("no tables found")

// TableQRCode 单张餐桌二维码生成结果
type TableQRCode struct {
	TableID     string
	TableNumber string
	URL         string
	Path        string
	Err         error
}

// TableQRService 餐桌二维码生成
type TableQRService struct {
	tableRepo repository.TableRepository
	baseURL   string
}

// NewTableQRService 创建二维码服务
func NewTableQRService(tableRepo repository.TableRepository, baseURL string) *TableQRService {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &TableQRService{tableRepo: tableRepo, baseURL: baseURL}
}

// OrderURL 扫码点餐地址 {base}/order?table={id}
func (s *TableQRService) OrderURL(tableID string) string {
	return fmt.Sprintf("%s/order?table=%s", s.baseURL, url.QueryEscape(tableID))
}

// GenerateAll 为每张餐桌生成 table-{桌号}.png；单张失败不影响其它餐桌
func (s *TableQRService) GenerateAll(dir string) ([]TableQRCode, error) {
	tables, err := s.tableRepo.List()
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	results := make([]TableQRCode, 0, len(tables))
	for _, table := range tables {
		result := TableQRCode{
			TableID:     table.ID,
			TableNumber: table.TableNumber,
			URL:         s.OrderURL(table.ID),
			Path:        filepath.Join(dir, fmt.Sprintf("table-%s.png", table.TableNumber)),
		}
		result.Err = qrcode.WriteFile(result.URL, qrcode.Medium, tableQRSize, result.Path)
		if result.Err != nil {
			logger.Warnw("table_qr_generate_failed", "table_id", table.ID, "url", result.URL, "error", result.Err)
		}
		results = append(results, result)
	}
	return results, nil
}
