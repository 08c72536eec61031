package main

import (
	"flag"
	"fmt"

	"github.com/dujiao-next/tableorder/internal/app"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/notify"
	"github.com/dujiao-next/tableorder/internal/repository"
)

func main() {
	var limit int
	flag.IntVar(&limit, "limit", 5, "展示最近的订单数量")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := app.InitDatabase(cfg); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	orderRepo := repository.NewOrderRepository(models.DB)
	total, err := orderRepo.Count()
	if err != nil {
		stdLog.Fatalf("统计订单失败: %v", err)
	}
	fmt.Printf("Total orders: %d\n\n", total)

	orders, err := orderRepo.ListRecent(limit)
	if err != nil {
		stdLog.Fatalf("查询订单失败: %v", err)
	}
	if len(orders) == 0 {
		fmt.Println("No orders found")
		return
	}
	for i := range orders {
		fmt.Printf("%d. %s [%s]\n%s\n\n", i+1, orders[i].ID, orders[i].Status, notify.FormatTicket("", &orders[i]))
	}
}
