package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dujiao-next/tableorder/internal/app"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/service"
)

// 二维码是静态图片，站点域名变化后需要重新生成
func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "./public/qr-codes", "二维码输出目录")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := app.InitDatabase(cfg); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	svc := service.NewTableQRService(repository.NewTableRepository(models.DB), cfg.App.BaseURL)
	results, err := svc.GenerateAll(outDir)
	if err != nil {
		stdLog.Fatalf("生成二维码失败: %v", err)
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("Table %s  FAILED  %s  (%v)\n", result.TableNumber, result.URL, result.Err)
			continue
		}
		fmt.Printf("Table %s  %s  -> %s\n", result.TableNumber, result.URL, result.Path)
	}
	fmt.Printf("\n%d/%d QR codes written to %s\n", len(results)-failed, len(results), outDir)
	if failed > 0 {
		os.Exit(1)
	}
}
