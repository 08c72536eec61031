package realtime

import (
	"context"
	"strings"

	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
)

// NewBroker 按配置创建 broker；postgres 驱动在 realtime.dsn 为空时复用 database.dsn
func NewBroker(ctx context.Context, cfg config.RealtimeConfig, db config.DatabaseConfig) (Broker, error) {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = "orders_changes"
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case constants.RealtimeDriverRedis:
		return NewRedisBroker(channel)
	case constants.RealtimeDriverPostgres:
		dsn := strings.TrimSpace(cfg.DSN)
		if dsn == "" && strings.HasPrefix(strings.ToLower(db.Driver), "postgres") {
			dsn = strings.TrimSpace(db.DSN)
		}
		if dsn == "" {
			return nil, errPostgresDSNMissing
		}
		return NewPostgresBroker(ctx, dsn, channel)
	case "", constants.RealtimeDriverMemory:
		return NewMemoryBroker(), nil
	default:
		logger.Warnw("realtime_driver_unknown_fallback_memory", "driver", cfg.Driver)
		return NewMemoryBroker(), nil
	}
}
