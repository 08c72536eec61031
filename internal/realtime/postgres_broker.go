package realtime

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dujiao-next/tableorder/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresReconnectDelay = 2 * time.Second

var channelNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// PostgresBroker 基于 LISTEN/NOTIFY 的跨实例 broker
type PostgresBroker struct {
	pool    *pgxpool.Pool
	channel string
	hub     *hub
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPostgresBroker 创建 Postgres broker 并开始监听
func NewPostgresBroker(ctx context.Context, dsn, channel string) (*PostgresBroker, error) {
	if !channelNamePattern.MatchString(channel) {
		return nil, fmt.Errorf("invalid realtime channel name: %q", channel)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	listenCtx, cancel := context.WithCancel(context.Background())
	b := &PostgresBroker{
		pool:    pool,
		channel: channel,
		hub:     newHub(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go b.listenLoop(listenCtx)
	return b, nil
}

func (b *PostgresBroker) listenLoop(ctx context.Context) {
	defer close(b.done)
	for {
		err := b.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		logger.Warnw("realtime_postgres_listen_interrupted", "channel", b.channel, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(postgresReconnectDelay):
		}
	}
}

func (b *PostgresBroker) listen(ctx context.Context) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{b.channel}.Sanitize()); err != nil {
		return err
	}
	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		event, err := decodeEvent(notification.Payload)
		if err != nil {
			logger.Warnw("realtime_postgres_decode_failed", "channel", b.channel, "error", err)
			continue
		}
		b.hub.dispatch(event)
	}
}

// Publish 发布事件（pg_notify）
func (b *PostgresBroker) Publish(ctx context.Context, event Event) error {
	payload, err := encodeEvent(normalizeEvent(event))
	if err != nil {
		return err
	}
	_, err = b.pool.Exec(ctx, "SELECT pg_notify($1, $2)", b.channel, payload)
	return err
}

// Subscribe 订阅事件
func (b *PostgresBroker) Subscribe(table, eventType string) *Subscription {
	return b.hub.subscribe(table, eventType)
}

// Close 关闭监听与连接池
func (b *PostgresBroker) Close() error {
	b.cancel()
	<-b.done
	b.hub.close()
	b.pool.Close()
	return nil
}

var errPostgresDSNMissing = errors.New("realtime postgres dsn is empty")
