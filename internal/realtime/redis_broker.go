package realtime

import (
	"context"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBroker 基于 Redis 发布订阅的跨实例 broker
type RedisBroker struct {
	client  *redis.Client
	channel string
	hub     *hub
	pubsub  *redis.PubSub
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRedisBroker 创建 Redis broker 并开始监听
func NewRedisBroker(channel string) (*RedisBroker, error) {
	client := cache.Client()
	if client == nil {
		return nil, cache.ErrDisabled
	}
	fullChannel := cache.Key(channel)
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := client.Subscribe(ctx, fullChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, err
	}
	b := &RedisBroker{
		client:  client,
		channel: fullChannel,
		hub:     newHub(),
		pubsub:  pubsub,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go b.listen(ctx)
	return b, nil
}

func (b *RedisBroker) listen(ctx context.Context) {
	defer close(b.done)
	messages := b.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			event, err := decodeEvent(msg.Payload)
			if err != nil {
				logger.Warnw("realtime_redis_decode_failed", "channel", b.channel, "error", err)
				continue
			}
			b.hub.dispatch(event)
		}
	}
}

// Publish 发布事件
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := encodeEvent(normalizeEvent(event))
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

// Subscribe 订阅事件
func (b *RedisBroker) Subscribe(table, eventType string) *Subscription {
	return b.hub.subscribe(table, eventType)
}

// Close 关闭监听
func (b *RedisBroker) Close() error {
	b.cancel()
	err := b.pubsub.Close()
	<-b.done
	b.hub.close()
	return err
}
